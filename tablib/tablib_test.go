package tablib_test

import (
	"testing"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
	"github.com/db47h/logicsim/tablib"
)

func bit(m uint64, i uint8) uint64 { return m >> i & 1 }

func Test_tables(t *testing.T) {
	reg := tablib.Registry()
	td := []struct {
		name string
		id   uint8
		fn   func(m uint64) uint64
	}{
		{"NOT", tablib.IDNot, func(m uint64) uint64 { return ^m & 1 }},
		{"AND", tablib.IDAnd, func(m uint64) uint64 { return bit(m, 0) & bit(m, 1) }},
		{"OR", tablib.IDOr, func(m uint64) uint64 { return bit(m, 0) | bit(m, 1) }},
		{"NAND", tablib.IDNand, func(m uint64) uint64 { return ^(bit(m, 0) & bit(m, 1)) & 1 }},
		{"NOR", tablib.IDNor, func(m uint64) uint64 { return ^(bit(m, 0) | bit(m, 1)) & 1 }},
		{"XOR", tablib.IDXor, func(m uint64) uint64 { return bit(m, 0) ^ bit(m, 1) }},
		{"XNOR", tablib.IDXnor, func(m uint64) uint64 { return ^(bit(m, 0) ^ bit(m, 1)) & 1 }},
		{"MUX", tablib.IDMux, func(m uint64) uint64 {
			if bit(m, 2) != 0 {
				return bit(m, 1)
			}
			return bit(m, 0)
		}},
		{"DMUX", tablib.IDDMux, func(m uint64) uint64 {
			return bit(m, 0)&^bit(m, 1) | (bit(m, 0)&bit(m, 1))<<1
		}},
		{"HALFADDER", tablib.IDHalfAdder, func(m uint64) uint64 {
			a, b := bit(m, 0), bit(m, 1)
			return (a+b)&1 | (a+b)>>1<<1
		}},
		{"FULLADDER", tablib.IDFullAdder, func(m uint64) uint64 {
			n := bit(m, 0) + bit(m, 1) + bit(m, 2)
			return n&1 | n>>1<<1
		}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if got := reg[d.id].Name; got != d.name {
				t.Fatalf("registry id %d holds %q, want %q", d.id, got, d.name)
			}
			simtest.CompareTable(t, reg, d.id, d.fn)
		})
	}
}

// An XOR built out of four NAND devices must behave like the XOR table.
// This exercises copy wiring between devices and multi-tick settling.
func Test_composedXor(t *testing.T) {
	reg := tablib.Registry()
	s := sim.NewNodeStore()

	a := s.AllocNode()
	b := s.AllocNode()

	wire := func(dst, src sim.NodeAddr) {
		s.Set(dst, sim.Node{Source: sim.CopyOf(src)})
	}

	nand := func() (in []sim.NodeAddr, out sim.NodeAddr) {
		in, outs := tablib.Device(s, reg, tablib.IDNand)
		return in, outs[0]
	}

	in1, nandAB := nand()
	in2, w0 := nand()
	in3, w1 := nand()
	in4, out := nand()

	wire(in1[0], a)
	wire(in1[1], b)
	wire(in2[0], a)
	wire(in2[1], nandAB)
	wire(in3[0], b)
	wire(in3[1], nandAB)
	wire(in4[0], w0)
	wire(in4[1], w1)

	for m := 0; m < 4; m++ {
		s.SetState(a, uint8(m&1))
		s.SetState(b, uint8(m>>1&1))
		if _, err := simtest.Settle(s, reg, simtest.DefaultSettleLimit); err != nil {
			t.Fatal(err)
		}
		want := uint8(m&1) ^ uint8(m>>1&1)
		if got := s.Get(out).State; got != want {
			t.Errorf("XOR(%d, %d) = %d, want %d", m&1, m>>1&1, got, want)
		}
	}
}

func Test_device_layout(t *testing.T) {
	reg := tablib.Registry()
	s := sim.NewNodeStore()
	in, out := tablib.Device(s, reg, tablib.IDDMux)
	if len(in) != 2 || len(out) != 2 {
		t.Fatalf("DMUX device: %d inputs, %d outputs", len(in), len(out))
	}
	for i, addr := range in {
		if src := s.Get(addr).Source; src.Kind != sim.SourceNone {
			t.Errorf("input %d has source %+v, want none", i, src)
		}
	}
	for k, addr := range out {
		want := sim.TableLookup(tablib.IDDMux, uint8(k), in[0])
		if src := s.Get(addr).Source; src != want {
			t.Errorf("output %d has source %+v, want %+v", k, src, want)
		}
	}
}
