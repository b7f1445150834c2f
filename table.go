package logicsim

import (
	"github.com/pkg/errors"
)

// MaxTableInputs bounds NumInputs so that a table's row array stays at
// most 65536 entries.
const MaxTableInputs = 16

// A TruthTable is a precomputed input-bitmask to output-bitmask lookup
// implementing arbitrary combinational logic. Rows has 2^NumInputs
// entries; bit k of Rows[mask] is output k for that input combination.
//
// Tables are immutable once built. They are owned by the caller, kept
// in an external registry, and passed by slice to every Update call;
// the simulator core never stores or mutates them.
//
type TruthTable struct {
	Name       string
	NumInputs  uint8
	NumOutputs uint8
	Rows       []uint64
}

// NewTruthTable builds a table by evaluating fn for every input
// combination. fn receives the input bitmask and returns the output
// bitmask; bits above NumOutputs are discarded. Bounds violations are
// registration-time programming errors and panic.
//
func NewTruthTable(name string, inputs, outputs uint8, fn func(mask uint64) uint64) TruthTable {
	if inputs > MaxTableInputs {
		panic(errors.Errorf("table %s: %d inputs exceeds the maximum of %d", name, inputs, MaxTableInputs))
	}
	if outputs == 0 || outputs > 64 {
		panic(errors.Errorf("table %s: invalid output count %d", name, outputs))
	}
	outMask := uint64(1)<<outputs - 1
	if outputs == 64 {
		outMask = ^uint64(0)
	}
	rows := make([]uint64, 1<<inputs)
	for m := range rows {
		rows[m] = fn(uint64(m)) & outMask
	}
	return TruthTable{Name: name, NumInputs: inputs, NumOutputs: outputs, Rows: rows}
}

// Row returns the output bitmask for the given input bitmask. A mask
// out of range means the caller packed more inputs than the table has,
// which is a programming error.
//
func (t *TruthTable) Row(mask uint64) uint64 {
	if mask >= uint64(len(t.Rows)) {
		panic(errors.Errorf("table %s: input mask %#x out of range for %d inputs", t.Name, mask, t.NumInputs))
	}
	return t.Rows[mask]
}

// Output returns output bit bit of the row selected by mask, as 0 or 1.
//
func (t *TruthTable) Output(mask uint64, bit uint8) uint8 {
	return uint8(t.Row(mask) >> bit & 1)
}
