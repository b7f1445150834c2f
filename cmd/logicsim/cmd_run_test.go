package main

import (
	"path/filepath"
	"strings"
	"testing"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chipio"
	"github.com/db47h/logicsim/tablib"
)

func writeTestLibrary(t *testing.T) string {
	t.Helper()
	s := sim.NewNodeStore()
	r := s.AllocRegion(3)
	s.Set(r.Map(2), sim.Node{Source: sim.TableLookup(tablib.IDAnd, 0, r.Min)})
	save := sim.BuildChip(s, r, "AND",
		[]sim.NamedAddr{{Name: "a", Addr: r.Map(0)}, {Name: "b", Addr: r.Map(1)}},
		[]sim.NamedAddr{{Name: "out", Addr: r.Map(2)}},
		nil)
	path := filepath.Join(t.TempDir(), "lib.yaml")
	if err := chipio.Save(path, &chipio.Library{Chips: []sim.ChipSave{save}}); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_run(t *testing.T) {
	path := writeTestLibrary(t)
	var out strings.Builder
	if err := run(&out, path, "AND", []string{"a=1", "b=1"}, 0); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "right\tout\toutput\t1") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "left\ta\tinput\t1") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func Test_run_errors(t *testing.T) {
	path := writeTestLibrary(t)
	td := []struct {
		name string
		fn   func() error
	}{
		{"missing file", func() error {
			return run(&strings.Builder{}, path+".nope", "", nil, 0)
		}},
		{"unknown chip", func() error {
			return run(&strings.Builder{}, path, "XOR", nil, 0)
		}},
		{"unknown pin", func() error {
			return run(&strings.Builder{}, path, "AND", []string{"q=1"}, 0)
		}},
		{"set output pin", func() error {
			return run(&strings.Builder{}, path, "AND", []string{"out=1"}, 0)
		}},
		{"bad value", func() error {
			return run(&strings.Builder{}, path, "AND", []string{"a=2"}, 0)
		}},
		{"bad assignment", func() error {
			return run(&strings.Builder{}, path, "AND", []string{"a"}, 0)
		}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if d.fn() == nil {
				t.Error("expected an error")
			}
		})
	}
}
