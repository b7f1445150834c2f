package logicsim

import (
	"github.com/pkg/errors"
)

// A PinDir tells which way an interface pin faces. Direction is derived
// from the pin's saved source: an undriven node is an input the outside
// world writes to, anything else is an output the chip drives.
//
type PinDir uint8

// Pin directions.
const (
	Input PinDir = iota
	Output
)

func (d PinDir) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// A NamedAddr names an absolute node address. It is how callers declare
// a chip's interface when building a save.
//
type NamedAddr struct {
	Name string
	Addr NodeAddr
}

// A SavedNode is one node of a chip save: its region-local address and
// its recorded value, with any embedded source address localized to the
// region as well.
//
type SavedNode struct {
	Addr NodeAddr
	Node Node
}

// An InterfacePin is a SavedNode with the name it is exposed under.
//
type InterfacePin struct {
	Name string
	SavedNode
}

// Dir returns the pin's direction, derived from its saved source.
//
func (p InterfacePin) Dir() PinDir {
	if p.Node.Source.Kind == SourceNone {
		return Input
	}
	return Output
}

// A ChipSave is the reusable snapshot of one region's sub-network: the
// region's size, the named interface pins on the chip's two sides, and
// the internal nodes, all with region-local addresses. It is immutable
// once built and is the unit the surrounding persistence layer stores
// and loads. Place re-instantiates it any number of times.
//
type ChipSave struct {
	Name       string
	RegionSize uint32
	Left       []InterfacePin
	Right      []InterfacePin
	Internal   []SavedNode
}

// BuildChip snapshots the sub-network in region r of store s into a
// ChipSave. left and right declare the interface pins by absolute
// address; internal lists the remaining nodes worth saving. Every
// address must have been allocated inside r: anything else is a
// programming error and panics.
//
func BuildChip(s *NodeStore, r NodeRegion, name string, left, right []NamedAddr, internal []NodeAddr) ChipSave {
	save := ChipSave{
		Name:       name,
		RegionSize: r.Size(),
		Left:       saveInterface(s, r, left),
		Right:      saveInterface(s, r, right),
	}
	for _, addr := range internal {
		save.Internal = append(save.Internal, saveNode(s, r, addr))
	}
	return save
}

func saveInterface(s *NodeStore, r NodeRegion, pins []NamedAddr) []InterfacePin {
	if len(pins) == 0 {
		return nil
	}
	saved := make([]InterfacePin, len(pins))
	for i, p := range pins {
		saved[i] = InterfacePin{Name: p.Name, SavedNode: saveNode(s, r, p.Addr)}
	}
	return saved
}

func saveNode(s *NodeStore, r NodeRegion, addr NodeAddr) SavedNode {
	return SavedNode{
		Addr: r.unmap(addr),
		Node: r.unmapNode(s.Get(addr)),
	}
}

// A PlacedPin is one interface pin of a placed chip: its name, its new
// absolute address, and its direction.
//
type PlacedPin struct {
	Name string
	Addr NodeAddr
	Dir  PinDir
}

// A Placement is the result of placing a chip: the freshly allocated
// region plus the interface pins re-addressed into it.
//
type Placement struct {
	Region NodeRegion
	Left   []PlacedPin
	Right  []PlacedPin
}

// Pin returns the placed pin with the given name, searching left pins
// then right pins.
//
func (p *Placement) Pin(name string) (PlacedPin, bool) {
	for _, pin := range p.Left {
		if pin.Name == name {
			return pin, true
		}
	}
	for _, pin := range p.Right {
		if pin.Name == name {
			return pin, true
		}
	}
	return PlacedPin{}, false
}

// Place instantiates the save into s: it allocates a fresh region of
// the saved size, transplants every saved node through the region's
// address map, and returns the region together with the interface pins'
// new absolute addresses. A saved local address outside the saved
// region size means the save is corrupted (size and node lists
// disagree) and panics.
//
func (c *ChipSave) Place(s *NodeStore) Placement {
	r := s.AllocRegion(c.RegionSize)
	pl := Placement{
		Region: r,
		Left:   placeInterface(s, r, c, c.Left),
		Right:  placeInterface(s, r, c, c.Right),
	}
	for _, sn := range c.Internal {
		placeNode(s, r, c, sn)
	}
	return pl
}

func placeInterface(s *NodeStore, r NodeRegion, c *ChipSave, pins []InterfacePin) []PlacedPin {
	if len(pins) == 0 {
		return nil
	}
	placed := make([]PlacedPin, len(pins))
	for i, p := range pins {
		placed[i] = PlacedPin{
			Name: p.Name,
			Addr: placeNode(s, r, c, p.SavedNode),
			Dir:  p.Dir(),
		}
	}
	return placed
}

func placeNode(s *NodeStore, r NodeRegion, c *ChipSave, sn SavedNode) NodeAddr {
	if uint32(sn.Addr) >= c.RegionSize {
		panic(errors.Errorf("chip %s: saved node %d outside saved region size %d",
			c.Name, sn.Addr, c.RegionSize))
	}
	if k := sn.Node.Source.Kind; k != SourceNone && uint32(sn.Node.Source.Addr) >= c.RegionSize {
		panic(errors.Errorf("chip %s: saved node %d has %s source %d outside saved region size %d",
			c.Name, sn.Addr, k, sn.Node.Source.Addr, c.RegionSize))
	}
	addr := r.Map(sn.Addr)
	s.Set(addr, r.MapNode(sn.Node))
	return addr
}
