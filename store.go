// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// A NodeStore owns all simulation state of one network: a flat array of
// packed nodes plus the bump allocation cursor (the array's length).
// Regions never shrink, overlap or get freed; the store only grows.
//
// A store is exclusively owned by one logical scene and must not be
// mutated concurrently. The three mutation sources (device placement,
// external writes to undriven nodes, Update) are expected to be
// serialized by the embedder.
//
type NodeStore struct {
	words []uint64
}

// NewNodeStore returns an empty store with the ground node allocated at
// address 0.
//
func NewNodeStore() *NodeStore {
	s := &NodeStore{}
	s.AllocNode()
	return s
}

// Len returns the number of allocated nodes, the ground node included.
//
func (s *NodeStore) Len() int {
	return len(s.words)
}

// Get returns the node at addr. Reads are tolerant: any address beyond
// the allocation high-water mark reads as the inert zero node rather
// than failing, because UI and evaluation code routinely probe
// addresses while a circuit is still being wired up.
//
func (s *NodeStore) Get(addr NodeAddr) Node {
	if int64(addr) >= int64(len(s.words)) {
		return Node{}
	}
	return unpack(s.words[addr])
}

// Set writes the node at addr in place. Unlike Get, writes are strict:
// writing past the high-water mark is a contract violation (writes only
// happen right after allocating the address) and panics.
//
func (s *NodeStore) Set(addr NodeAddr, n Node) {
	if int64(addr) >= int64(len(s.words)) {
		panic(errors.Errorf("write to unallocated node %d (store size %d)", addr, len(s.words)))
	}
	s.words[addr] = n.pack()
}

// SetState overwrites the state of the node at addr, keeping its
// source. This is the external-mutation path for undriven nodes (a user
// toggling a switch). Same strictness as Set.
//
func (s *NodeStore) SetState(addr NodeAddr, state uint8) {
	if int64(addr) >= int64(len(s.words)) {
		panic(errors.Errorf("write to unallocated node %d (store size %d)", addr, len(s.words)))
	}
	s.words[addr] = s.words[addr]&^(byteMask<<stateShift) | uint64(state)<<stateShift
}

// AllocNode allocates a single node and returns its address.
//
func (s *NodeStore) AllocNode() NodeAddr {
	return s.AllocRegion(1).Min
}

// AllocRegion bumps the allocation cursor by size and returns the newly
// owned region. New nodes are zero: state 0, no source.
//
func (s *NodeStore) AllocRegion(size uint32) NodeRegion {
	min := NodeAddr(len(s.words))
	s.words = append(s.words, make([]uint64, size)...)
	return NodeRegion{Min: min, Max: min + NodeAddr(size)}
}

// stateBit returns bit 0 of the node state at addr, tolerant like Get.
func (s *NodeStore) stateBit(addr NodeAddr) uint64 {
	if int64(addr) >= int64(len(s.words)) {
		return 0
	}
	return s.words[addr] >> stateShift & 1
}
