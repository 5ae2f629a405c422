//
// render.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Adapted from the teacher's circuit/render.go, replacing its SVG/dot
// graph dump (not needed here) with a tabulate-based gate listing used
// by the exported debug tooling.

package circuit

import (
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"
)

// Dump renders the circuit's gate list as a table to w, for debugging
// and test failure output.
func (c *Circuit) Dump(w io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Gate").SetAlign(tabulate.ML)
	tab.Header("Type").SetAlign(tabulate.ML)
	tab.Header("LHS").SetAlign(tabulate.MR)
	tab.Header("RHS").SetAlign(tabulate.MR)
	tab.Header("Output").SetAlign(tabulate.MR)

	for i, g := range c.Gates {
		row := tab.Row()
		row.Column(strconv.Itoa(i))
		row.Column(g.Type.String())
		row.Column(strconv.Itoa(g.LHS))
		if g.Type != Not {
			row.Column(strconv.Itoa(g.RHS))
		} else {
			row.Column("-")
		}
		row.Column(strconv.Itoa(g.Output))
	}

	tab.Print(w)
}
