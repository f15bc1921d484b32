package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/btn0s/prototype-playground/source"
)

// Devices lists the connected gamepads once.
type Devices struct {
	Backend `embed:""`
}

// Run is called by Kong when the devices command is executed.
func (c *Devices) Run(logger *slog.Logger) error {
	src := c.open(logger)
	defer func() { _ = src.Close() }()
	return listDevices(os.Stdout, src)
}

func listDevices(w io.Writer, src source.Source) error {
	snaps := src.Snapshots()
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, "No gamepads connected")
		return err
	}
	for _, s := range snaps {
		if s == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d buttons\t%d axes\n",
			s.Index, s.ID, s.Name, len(s.Buttons), len(s.Axes)); err != nil {
			return err
		}
	}
	return nil
}
