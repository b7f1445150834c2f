package chipio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chipio"
	"github.com/db47h/logicsim/tablib"
)

func andChip(t *testing.T) sim.ChipSave {
	t.Helper()
	s := sim.NewNodeStore()
	r := s.AllocRegion(3)
	s.Set(r.Map(2), sim.Node{Source: sim.TableLookup(tablib.IDAnd, 0, r.Min)})
	return sim.BuildChip(s, r, "AND",
		[]sim.NamedAddr{{Name: "a", Addr: r.Map(0)}, {Name: "b", Addr: r.Map(1)}},
		[]sim.NamedAddr{{Name: "out", Addr: r.Map(2)}},
		nil)
}

func Test_library_roundTrip(t *testing.T) {
	lib := &chipio.Library{Chips: []sim.ChipSave{andChip(t)}}

	b, err := chipio.Encode(lib)
	require.NoError(t, err)

	got, err := chipio.Decode(b)
	require.NoError(t, err)
	require.Len(t, got.Chips, 1)
	assert.Equal(t, lib.Chips[0], got.Chips[0])

	c, ok := got.Chip("AND")
	assert.True(t, ok)
	assert.Equal(t, uint32(3), c.RegionSize)
	_, ok = got.Chip("NOPE")
	assert.False(t, ok)
}

func Test_library_file(t *testing.T) {
	lib := &chipio.Library{Chips: []sim.ChipSave{andChip(t)}}
	path := filepath.Join(t.TempDir(), "lib.yaml")

	require.NoError(t, chipio.Save(path, lib))
	got, err := chipio.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lib, got)
}

func Test_decode_rejectsBadInput(t *testing.T) {
	td := []struct {
		name string
		doc  string
	}{
		{"not yaml", ":\n-"},
		{"bad source kind", `
chips:
  - name: x
    region_size: 1
    left:
      - name: a
        addr: 0
        source: {kind: wat}
`},
		{"node outside region", `
chips:
  - name: x
    region_size: 1
    left:
      - name: a
        addr: 4
        source: {kind: none}
`},
		{"source outside region", `
chips:
  - name: x
    region_size: 2
    internal:
      - addr: 0
        source: {kind: copy, addr: 7}
`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := chipio.Decode([]byte(d.doc))
			assert.Error(t, err)
		})
	}
}

// A decoded chip must place and simulate like the one it was built
// from.
func Test_library_placeAfterDecode(t *testing.T) {
	b, err := chipio.Encode(&chipio.Library{Chips: []sim.ChipSave{andChip(t)}})
	require.NoError(t, err)
	lib, err := chipio.Decode(b)
	require.NoError(t, err)

	c, ok := lib.Chip("AND")
	require.True(t, ok)

	s := sim.NewNodeStore()
	pl := c.Place(s)
	a, _ := pl.Pin("a")
	bPin, _ := pl.Pin("b")
	out, _ := pl.Pin("out")
	s.SetState(a.Addr, 1)
	s.SetState(bPin.Addr, 1)
	s.Update(tablib.Registry())
	assert.Equal(t, uint8(1), s.Get(out.Addr).State)
}
