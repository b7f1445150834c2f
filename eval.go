// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// Update advances the whole store by one generation. Every node's next
// state is computed from the pre-update snapshot only, then the new
// snapshot replaces the old one wholesale. A changed value therefore
// propagates exactly one hop per call (see the package documentation);
// Update does no topological ordering, no fixed-point iteration and no
// cycle detection.
//
// tables is the caller-owned registry indexed by Source.Table. A source
// referencing a table outside the registry, like a corrupted source
// tag, is a construction bug and panics.
//
func (s *NodeStore) Update(tables []TruthTable) {
	prev := s.words
	next := make([]uint64, len(prev))
	for i, w := range prev {
		n := unpack(w)
		switch n.Source.Kind {
		case SourceNone:
			// primary inputs keep their externally set state
			next[i] = w
		case SourceCopy:
			// tolerant read: an unallocated address mirrors as 0
			var st uint64
			if int64(n.Source.Addr) < int64(len(prev)) {
				st = prev[n.Source.Addr] & (byteMask << stateShift)
			}
			next[i] = w&^(byteMask<<stateShift) | st
		case SourceTable:
			if int(n.Source.Table) >= len(tables) {
				panic(errors.Errorf("node %d: table id %d out of range (registry size %d)",
					i, n.Source.Table, len(tables)))
			}
			t := &tables[n.Source.Table]
			var mask uint64
			for b := uint8(0); b < t.NumInputs; b++ {
				mask |= s.stateBit(n.Source.Addr+NodeAddr(b)) << b
			}
			n.State = t.Output(mask, n.Source.Bit)
			next[i] = n.pack()
		}
	}
	s.words = next
}
