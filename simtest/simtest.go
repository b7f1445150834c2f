// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing logic
// networks.
//
package simtest

import (
	"testing"

	"github.com/pkg/errors"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/tablib"
)

// DefaultSettleLimit bounds Settle in CompareTable. Signals cross one
// hop per update, so this allows fairly deep dependency chains.
const DefaultSettleLimit = 64

// Settle calls Update until one call leaves every node's state
// unchanged, and returns how many calls changed something. Since a
// value moves one hop per update, this is the length of the longest
// still-propagating dependency chain. Networks with combinational
// feedback may oscillate forever; Settle gives up with an error after
// max changing calls instead of looping.
//
func Settle(s *sim.NodeStore, tables []sim.TruthTable, max int) (int, error) {
	for i := 0; i <= max; i++ {
		before := states(s)
		s.Update(tables)
		if equal(before, states(s)) {
			return i, nil
		}
	}
	return 0, errors.Errorf("network still changing after %d updates", max)
}

// CompareTable drives every input combination of a device built from
// reg[id] and checks each settled output bit against the reference
// function fn.
//
func CompareTable(t *testing.T, reg []sim.TruthTable, id uint8, fn func(mask uint64) uint64) {
	t.Helper()

	s := sim.NewNodeStore()
	in, out := tablib.Device(s, reg, id)
	for m := 0; m < 1<<uint(len(in)); m++ {
		for i, a := range in {
			s.SetState(a, uint8(m>>uint(i)&1))
		}
		if _, err := Settle(s, reg, DefaultSettleLimit); err != nil {
			t.Fatalf("%s(%b): %v", reg[id].Name, m, err)
		}
		want := fn(uint64(m))
		for k, a := range out {
			if got, exp := s.Get(a).State, uint8(want>>uint(k)&1); got != exp {
				t.Errorf("%s(%0*b) output %d = %d, want %d",
					reg[id].Name, len(in), m, k, got, exp)
			}
		}
	}
}

func states(s *sim.NodeStore) []uint8 {
	st := make([]uint8, s.Len())
	for i := range st {
		st[i] = s.Get(sim.NodeAddr(i)).State
	}
	return st
}

func equal(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
