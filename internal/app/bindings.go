package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// WriteBindings prints table in a human-readable form.
func WriteBindings(w io.Writer, table *keymap.Table, hold clock.Millis) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "KEY\tTAP\tHOLD\n")
	for _, b := range table.Bindings() {
		secondary := "-"
		if b.IsDualRole() {
			secondary = b.Secondary.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Trigger, b.PrimaryCode(), secondary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d bindings, %d dual-role, hold window %s\n",
		table.Len(), table.DualRoleCount(), hold)
	return err
}
