package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chipio"
	"github.com/db47h/logicsim/tablib"
)

// settleLimit bounds the free-running mode; networks still changing
// after that many updates are reported as oscillating.
const settleLimit = 1024

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run [flags] library.yaml",
		Short: "Place a chip from a library and simulate it",
		Long: `run loads a chip library, places one chip into a fresh node store,
applies the given input assignments, advances the simulation and prints
the state of every interface pin.

With --ticks 0 (the default) the simulation runs until the network
settles; remember that a value crosses exactly one copy or table hop
per tick.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chip, _ := cmd.Flags().GetString("chip")
			sets, _ := cmd.Flags().GetStringArray("set")
			ticks, _ := cmd.Flags().GetInt("ticks")
			return run(cmd.OutOrStdout(), args[0], chip, sets, ticks)
		},
	}
	c.Flags().String("chip", "", "chip to place (default: first in the library)")
	c.Flags().StringArray("set", nil, "input assignment name=0|1 (repeatable)")
	c.Flags().Int("ticks", 0, "number of update ticks to run (0: run until settled)")
	return c
}

func run(w io.Writer, path, chipName string, sets []string, ticks int) error {
	lib, err := chipio.Load(path)
	if err != nil {
		return err
	}
	if len(lib.Chips) == 0 {
		return errors.Errorf("%s: empty chip library", path)
	}
	save := lib.Chips[0]
	if chipName != "" {
		var ok bool
		if save, ok = lib.Chip(chipName); !ok {
			return errors.Errorf("%s: no chip named %q", path, chipName)
		}
	}

	reg := tablib.Registry()
	s := sim.NewNodeStore()
	pl := save.Place(s)
	log.WithFields(log.Fields{
		"chip":   save.Name,
		"region": fmt.Sprintf("[%d, %d)", pl.Region.Min, pl.Region.Max),
	}).Debug("placed chip")

	for _, assign := range sets {
		if err = apply(s, &pl, assign); err != nil {
			return err
		}
	}

	if ticks > 0 {
		for i := 0; i < ticks; i++ {
			s.Update(reg)
		}
		log.WithField("ticks", ticks).Debug("simulation done")
	} else {
		n, err := settle(s, reg)
		if err != nil {
			return err
		}
		log.WithField("ticks", n).Debug("network settled")
	}

	printPins(w, "left", pl.Left, s)
	printPins(w, "right", pl.Right, s)
	return nil
}

func apply(s *sim.NodeStore, pl *sim.Placement, assign string) error {
	name, val, ok := strings.Cut(assign, "=")
	if !ok {
		return errors.Errorf("invalid assignment %q, want name=0|1", assign)
	}
	pin, ok := pl.Pin(name)
	if !ok {
		return errors.Errorf("no pin named %q", name)
	}
	if pin.Dir != sim.Input {
		return errors.Errorf("pin %q is an output, cannot set it", name)
	}
	switch val {
	case "0":
		s.SetState(pin.Addr, 0)
	case "1":
		s.SetState(pin.Addr, 1)
	default:
		return errors.Errorf("invalid value %q for pin %q, want 0 or 1", val, name)
	}
	return nil
}

func settle(s *sim.NodeStore, reg []sim.TruthTable) (int, error) {
	for i := 0; i <= settleLimit; i++ {
		before := states(s)
		s.Update(reg)
		if equal(before, states(s)) {
			return i, nil
		}
	}
	return 0, errors.Errorf("network still oscillating after %d ticks", settleLimit)
}

func states(s *sim.NodeStore) []uint8 {
	st := make([]uint8, s.Len())
	for i := range st {
		st[i] = s.Get(sim.NodeAddr(i)).State
	}
	return st
}

func equal(a, b []uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return len(a) == len(b)
}

func printPins(w io.Writer, side string, pins []sim.PlacedPin, s *sim.NodeStore) {
	for _, p := range pins {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", side, p.Name, p.Dir, s.Get(p.Addr).State)
	}
}
