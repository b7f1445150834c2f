/*
Package logicsim implements a flat, node-based digital logic network
simulator.

A network is a single NodeStore: a growable array of boolean nodes, each
optionally driven by a Source describing where its next state comes from
(nothing, a copy of another node, or a truth table lookup over a run of
consecutive input nodes). Truth tables live in a caller-owned registry
and are passed to every Update call; the simulator never owns them.

Nodes are allocated in contiguous regions by a monotonic bump allocator.
A NodeRegion translates region-local addresses into absolute ones with a
single additive offset, which is what lets a chip's wiring, expressed
once relative to address zero, be re-homed anywhere in the store. Chips
are snapshotted into a ChipSave and re-instantiated with Place.

Update advances the whole store by exactly one generation: every node's
next state is computed from the pre-update snapshot only. A changed
value therefore propagates exactly one hop per call; a chain of N
dependent nodes needs N calls for a change at the head to reach the
tail, and combinational feedback loops oscillate across calls rather
than settling within one. This is a deliberate synchronous design, not a
missing optimization; callers should invoke Update in a loop until the
network stops changing.
*/
package logicsim
