// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tablib provides a library of pre-built truth tables for the
// usual combinational primitives, plus the canonical registry that
// assigns them stable ids.
//
package tablib

import (
	sim "github.com/db47h/logicsim"
)

// Table ids in the standard registry. These are the ids to embed in
// TableLookup sources when simulating with Registry().
const (
	IDNot uint8 = iota
	IDAnd
	IDOr
	IDNand
	IDNor
	IDXor
	IDXnor
	IDMux
	IDDMux
	IDHalfAdder
	IDFullAdder
)

func bit(m uint64, i uint8) uint64 { return m >> i & 1 }

// Standard tables. Input bit 0 is the node at the source's base
// address, input bit 1 the next node, and so on.
var (
	// Not: in -> out = !in
	Not = sim.NewTruthTable("NOT", 1, 1, func(m uint64) uint64 { return ^m & 1 })

	// And: a, b -> out = a && b
	And = sim.NewTruthTable("AND", 2, 1, func(m uint64) uint64 { return bit(m, 0) & bit(m, 1) })

	// Or: a, b -> out = a || b
	Or = sim.NewTruthTable("OR", 2, 1, func(m uint64) uint64 { return bit(m, 0) | bit(m, 1) })

	// Nand: a, b -> out = !(a && b)
	Nand = sim.NewTruthTable("NAND", 2, 1, func(m uint64) uint64 { return ^(bit(m, 0) & bit(m, 1)) & 1 })

	// Nor: a, b -> out = !(a || b)
	Nor = sim.NewTruthTable("NOR", 2, 1, func(m uint64) uint64 { return ^(bit(m, 0) | bit(m, 1)) & 1 })

	// Xor: a, b -> out = a != b
	Xor = sim.NewTruthTable("XOR", 2, 1, func(m uint64) uint64 { return bit(m, 0) ^ bit(m, 1) })

	// Xnor: a, b -> out = a == b
	Xnor = sim.NewTruthTable("XNOR", 2, 1, func(m uint64) uint64 { return ^(bit(m, 0) ^ bit(m, 1)) & 1 })

	// Mux: a, b, sel -> out = sel ? b : a
	Mux = sim.NewTruthTable("MUX", 3, 1, func(m uint64) uint64 {
		if bit(m, 2) != 0 {
			return bit(m, 1)
		}
		return bit(m, 0)
	})

	// DMux: in, sel -> a = in && !sel, b = in && sel
	DMux = sim.NewTruthTable("DMUX", 2, 2, func(m uint64) uint64 {
		in, sel := bit(m, 0), bit(m, 1)
		return in&^sel | (in&sel)<<1
	})

	// HalfAdder: a, b -> sum, carry
	HalfAdder = sim.NewTruthTable("HALFADDER", 2, 2, func(m uint64) uint64 {
		a, b := bit(m, 0), bit(m, 1)
		return (a ^ b) | (a&b)<<1
	})

	// FullAdder: a, b, c -> sum, carry
	FullAdder = sim.NewTruthTable("FULLADDER", 3, 2, func(m uint64) uint64 {
		a, b, c := bit(m, 0), bit(m, 1), bit(m, 2)
		return (a ^ b ^ c) | (a&b | a&c | b&c)<<1
	})
)

// Registry returns the standard tables ordered by their ids. The result
// is freshly allocated; tables themselves are shared and immutable.
//
func Registry() []sim.TruthTable {
	return []sim.TruthTable{
		IDNot:       Not,
		IDAnd:       And,
		IDOr:        Or,
		IDNand:      Nand,
		IDNor:       Nor,
		IDXor:       Xor,
		IDXnor:      Xnor,
		IDMux:       Mux,
		IDDMux:      DMux,
		IDHalfAdder: HalfAdder,
		IDFullAdder: FullAdder,
	}
}

// Device allocates the nodes for one instance of table id from reg: a
// fresh region holding the table's inputs followed by its outputs, with
// each output node wired to the corresponding table output bit. The
// inputs are left undriven for the caller to drive or rewire.
//
func Device(s *sim.NodeStore, reg []sim.TruthTable, id uint8) (in, out []sim.NodeAddr) {
	t := &reg[id]
	r := s.AllocRegion(uint32(t.NumInputs) + uint32(t.NumOutputs))
	in = make([]sim.NodeAddr, t.NumInputs)
	for i := range in {
		in[i] = r.Map(sim.NodeAddr(i))
	}
	out = make([]sim.NodeAddr, t.NumOutputs)
	for i := range out {
		addr := r.Map(sim.NodeAddr(int(t.NumInputs) + i))
		s.Set(addr, sim.Node{Source: sim.TableLookup(id, uint8(i), r.Min)})
		out[i] = addr
	}
	return in, out
}
