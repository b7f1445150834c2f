package logicsim

import (
	"github.com/pkg/errors"
)

// A NodeRegion is a contiguous half-open range [Min, Max) of node
// addresses owned by one allocation: a primitive device or a chip
// instance. Map is affine, order preserving and injective within the
// region, so a sub-network's whole wiring can be re-homed by a single
// additive offset.
//
type NodeRegion struct {
	Min, Max NodeAddr
}

// Size returns the number of addresses in the region.
//
func (r NodeRegion) Size() uint32 {
	return uint32(r.Max - r.Min)
}

// Contains reports whether addr falls inside the region.
//
func (r NodeRegion) Contains(addr NodeAddr) bool {
	return r.Min <= addr && addr < r.Max
}

// Map translates a region-local address (numbered from 0) into an
// absolute store address.
//
func (r NodeRegion) Map(local NodeAddr) NodeAddr {
	return r.Min + local
}

// MapSource returns src with any embedded address passed through Map.
// SourceNone passes through unchanged.
//
func (r NodeRegion) MapSource(src Source) Source {
	switch src.Kind {
	case SourceCopy, SourceTable:
		src.Addr = r.Map(src.Addr)
	}
	return src
}

// MapNode returns n with its source passed through MapSource.
//
func (r NodeRegion) MapNode(n Node) Node {
	n.Source = r.MapSource(n.Source)
	return n
}

// unmap is the inverse of Map. Chips are self-contained: a source
// reaching outside its own region cannot be saved, so an address not in
// the region panics.
func (r NodeRegion) unmap(addr NodeAddr) NodeAddr {
	if !r.Contains(addr) {
		panic(errors.Errorf("address %d not in region [%d, %d)", addr, r.Min, r.Max))
	}
	return addr - r.Min
}

// unmapSource localizes any embedded address, inverse of MapSource.
func (r NodeRegion) unmapSource(src Source) Source {
	switch src.Kind {
	case SourceCopy, SourceTable:
		src.Addr = r.unmap(src.Addr)
	}
	return src
}

// unmapNode localizes n's source, inverse of MapNode.
func (r NodeRegion) unmapNode(n Node) Node {
	n.Source = r.unmapSource(n.Source)
	return n
}
