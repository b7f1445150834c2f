// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A NodeAddr is an index into a NodeStore.
//
type NodeAddr uint32

// Ground is the reserved address of the constant-low node. It is
// allocated by NewNodeStore before anything else and always reads as
// {state 0, no source}; nothing should ever assign it a source.
//
const Ground NodeAddr = 0

// A SourceKind discriminates the variants of a Source.
//
type SourceKind uint8

// Source variants.
const (
	SourceNone  SourceKind = iota // node is a primary input, externally settable
	SourceCopy                    // node mirrors another node's previous state
	SourceTable                   // node is one output bit of a truth table lookup
)

func (k SourceKind) String() string {
	switch k {
	case SourceNone:
		return "none"
	case SourceCopy:
		return "copy"
	case SourceTable:
		return "table"
	}
	return "SourceKind(" + strconv.Itoa(int(k)) + ")"
}

// A Source describes what drives a node's next state. It is a tagged
// value: Kind selects the variant and decides which of the remaining
// fields are meaningful. Use NoSource, CopyOf or TableLookup rather
// than building one by hand.
//
type Source struct {
	Kind SourceKind
	// Addr is the mirrored node for SourceCopy, or the address of the
	// first input node for SourceTable.
	Addr NodeAddr
	// Table is the truth table's index in the registry passed to
	// Update. SourceTable only.
	Table uint8
	// Bit is the output bit extracted from the selected table row.
	// SourceTable only.
	Bit uint8
}

// NoSource returns the Source of an undriven node. Undriven nodes keep
// whatever state was last written to them, which is how switches and
// buttons work.
//
func NoSource() Source {
	return Source{Kind: SourceNone}
}

// CopyOf returns a Source mirroring the state of addr.
//
func CopyOf(addr NodeAddr) Source {
	return Source{Kind: SourceCopy, Addr: addr}
}

// TableLookup returns a Source computing bit bit of the truth table
// table, with the table's inputs read from consecutive nodes starting
// at base (node base+i supplies input bit i).
//
func TableLookup(table, bit uint8, base NodeAddr) Source {
	return Source{Kind: SourceTable, Addr: base, Table: table, Bit: bit}
}

// A Node is one bit of circuit state plus its driver. State is stored
// as a full byte (only bit 0 is meaningful today) and Source has fan-in
// one: a node has at most one driver, multi-driver joins must be
// modeled upstream as a table with several inputs.
//
type Node struct {
	State  uint8
	Source Source
}

// Packed node word layout. The store keeps nodes as single 64-bit
// words: state in the top byte, the source tag below it, and the
// source payload in the low 48 bits.
const (
	stateShift = 56
	tagShift   = 48
	tableShift = 40
	bitShift   = 32

	addrMask = 1<<32 - 1
	byteMask = 1<<8 - 1
)

// pack encodes n into its 64-bit storage word. It is total: every Node
// built through the exported constructors round-trips through unpack.
func (n Node) pack() uint64 {
	w := uint64(n.State)<<stateShift | uint64(n.Source.Kind)<<tagShift
	switch n.Source.Kind {
	case SourceNone:
	case SourceCopy:
		w |= uint64(n.Source.Addr)
	case SourceTable:
		w |= uint64(n.Source.Table)<<tableShift |
			uint64(n.Source.Bit)<<bitShift |
			uint64(n.Source.Addr)
	default:
		panic(errors.Errorf("pack: invalid source kind %d", n.Source.Kind))
	}
	return w
}

// unpack decodes a storage word. An unknown tag means the store is
// corrupted or a construction path bypassed the codec; there is no
// recovered state to fall back to, so it panics.
func unpack(w uint64) Node {
	n := Node{State: uint8(w >> stateShift)}
	switch kind := SourceKind(w >> tagShift & byteMask); kind {
	case SourceNone:
		n.Source = NoSource()
	case SourceCopy:
		n.Source = CopyOf(NodeAddr(w & addrMask))
	case SourceTable:
		n.Source = TableLookup(
			uint8(w>>tableShift&byteMask),
			uint8(w>>bitShift&byteMask),
			NodeAddr(w&addrMask))
	default:
		panic(errors.Errorf("unpack: corrupted source tag %d in word %#016x", kind, w))
	}
	return n
}
