// Package chipio persists chip saves. A Library is the on-disk unit:
// an ordered list of named chips, encoded as YAML with every source
// spelled out field by field (the packed node words never leave the
// core).
//
// Unlike the core, chipio deals with user data: malformed input returns
// an error, it never panics.
package chipio

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	sim "github.com/db47h/logicsim"
)

// A Library is an ordered collection of chip saves, loadable by name.
//
type Library struct {
	Chips []sim.ChipSave
}

// Chip returns the chip with the given name.
//
func (l *Library) Chip(name string) (sim.ChipSave, bool) {
	for _, c := range l.Chips {
		if c.Name == name {
			return c, true
		}
	}
	return sim.ChipSave{}, false
}

// YAML mirror types. Addresses are region-local, like in ChipSave.

type libraryYAML struct {
	Chips []chipYAML `yaml:"chips"`
}

type chipYAML struct {
	Name       string     `yaml:"name"`
	RegionSize uint32     `yaml:"region_size"`
	Left       []pinYAML  `yaml:"left,omitempty"`
	Right      []pinYAML  `yaml:"right,omitempty"`
	Internal   []nodeYAML `yaml:"internal,omitempty"`
}

type pinYAML struct {
	Name     string `yaml:"name"`
	nodeYAML `yaml:",inline"`
}

type nodeYAML struct {
	Addr   uint32     `yaml:"addr"`
	State  uint8      `yaml:"state"`
	Source sourceYAML `yaml:"source"`
}

type sourceYAML struct {
	Kind  string `yaml:"kind"`
	Addr  uint32 `yaml:"addr,omitempty"`
	Table uint8  `yaml:"table,omitempty"`
	Bit   uint8  `yaml:"bit,omitempty"`
}

// Encode serializes a library to YAML.
//
func Encode(l *Library) ([]byte, error) {
	doc := libraryYAML{Chips: make([]chipYAML, len(l.Chips))}
	for i := range l.Chips {
		doc.Chips[i] = encodeChip(&l.Chips[i])
	}
	b, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode chip library")
	}
	return b, nil
}

// Decode deserializes a library from YAML.
//
func Decode(data []byte) (*Library, error) {
	var doc libraryYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode chip library")
	}
	l := &Library{Chips: make([]sim.ChipSave, len(doc.Chips))}
	for i := range doc.Chips {
		c, err := decodeChip(&doc.Chips[i])
		if err != nil {
			return nil, errors.Wrapf(err, "chip %q", doc.Chips[i].Name)
		}
		l.Chips[i] = c
	}
	return l, nil
}

// Save writes the library to path.
//
func Save(path string, l *Library) error {
	b, err := Encode(l)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, b, 0o644), "save chip library")
}

// Load reads a library from path.
//
func Load(path string) (*Library, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load chip library")
	}
	return Decode(b)
}

func encodeChip(c *sim.ChipSave) chipYAML {
	y := chipYAML{
		Name:       c.Name,
		RegionSize: c.RegionSize,
		Left:       encodePins(c.Left),
		Right:      encodePins(c.Right),
	}
	for _, n := range c.Internal {
		y.Internal = append(y.Internal, encodeNode(n))
	}
	return y
}

func encodePins(pins []sim.InterfacePin) []pinYAML {
	if len(pins) == 0 {
		return nil
	}
	ys := make([]pinYAML, len(pins))
	for i, p := range pins {
		ys[i] = pinYAML{Name: p.Name, nodeYAML: encodeNode(p.SavedNode)}
	}
	return ys
}

func encodeNode(n sim.SavedNode) nodeYAML {
	y := nodeYAML{
		Addr:  uint32(n.Addr),
		State: n.Node.State,
	}
	switch src := n.Node.Source; src.Kind {
	case sim.SourceNone:
		y.Source = sourceYAML{Kind: "none"}
	case sim.SourceCopy:
		y.Source = sourceYAML{Kind: "copy", Addr: uint32(src.Addr)}
	case sim.SourceTable:
		y.Source = sourceYAML{Kind: "table", Addr: uint32(src.Addr), Table: src.Table, Bit: src.Bit}
	}
	return y
}

func decodeChip(y *chipYAML) (sim.ChipSave, error) {
	c := sim.ChipSave{
		Name:       y.Name,
		RegionSize: y.RegionSize,
	}
	var err error
	if c.Left, err = decodePins(y.Left, y.RegionSize); err != nil {
		return c, err
	}
	if c.Right, err = decodePins(y.Right, y.RegionSize); err != nil {
		return c, err
	}
	for _, n := range y.Internal {
		sn, err := decodeNode(&n, y.RegionSize)
		if err != nil {
			return c, err
		}
		c.Internal = append(c.Internal, sn)
	}
	return c, nil
}

func decodePins(ys []pinYAML, size uint32) ([]sim.InterfacePin, error) {
	if len(ys) == 0 {
		return nil, nil
	}
	pins := make([]sim.InterfacePin, len(ys))
	for i, y := range ys {
		n, err := decodeNode(&y.nodeYAML, size)
		if err != nil {
			return nil, errors.Wrapf(err, "pin %q", y.Name)
		}
		pins[i] = sim.InterfacePin{Name: y.Name, SavedNode: n}
	}
	return pins, nil
}

func decodeNode(y *nodeYAML, size uint32) (sim.SavedNode, error) {
	n := sim.SavedNode{
		Addr: sim.NodeAddr(y.Addr),
		Node: sim.Node{State: y.State},
	}
	if y.Addr >= size {
		return n, errors.Errorf("node address %d outside region size %d", y.Addr, size)
	}
	switch y.Source.Kind {
	case "none", "":
		n.Node.Source = sim.NoSource()
	case "copy":
		n.Node.Source = sim.CopyOf(sim.NodeAddr(y.Source.Addr))
	case "table":
		n.Node.Source = sim.TableLookup(y.Source.Table, y.Source.Bit, sim.NodeAddr(y.Source.Addr))
	default:
		return n, errors.Errorf("unknown source kind %q", y.Source.Kind)
	}
	if k := n.Node.Source.Kind; k != sim.SourceNone && y.Source.Addr >= size {
		return n, errors.Errorf("%s source address %d outside region size %d", k, y.Source.Addr, size)
	}
	return n, nil
}
