//
// timing.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Adapted from the teacher's circuit/timing.go profiling report,
// trimmed to this module's simpler p2p.IOStats (Sent/Recvd, no
// separate flush counter).

package circuit

import (
	"fmt"
	"os"
	"time"

	"github.com/markkurossi/tabulate"
	"github.com/sfevote/yaovote/p2p"
)

// Timing records timing samples for one protocol run (handshake,
// garble, transfer, OT, eval) and renders a profiling report.
type Timing struct {
	Start   time.Time
	Samples []Sample
}

// Sample is one labeled timing interval.
type Sample struct {
	Label string
	Start time.Time
	End   time.Time
}

// NewTiming starts a new Timing clock.
func NewTiming() *Timing {
	return &Timing{Start: time.Now()}
}

// Mark records a sample from the end of the previous sample (or the
// start of the run, for the first) through now.
func (t *Timing) Mark(label string) {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	t.Samples = append(t.Samples, Sample{Label: label, Start: start, End: time.Now()})
}

// Print renders the recorded samples as a table to standard output.
func (t *Timing) Print(stats *p2p.IOStats) {
	if len(t.Samples) == 0 {
		return
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := t.Samples[len(t.Samples)-1].End.Sub(t.Start)
	for _, s := range t.Samples {
		row := tab.Row()
		row.Column(s.Label)
		d := s.End.Sub(s.Start)
		row.Column(d.String())
		row.Column(fmt.Sprintf("%.2f%%", float64(d)/float64(total)*100))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	if stats != nil {
		row = tab.Row()
		row.Column("Xfer").SetFormat(tabulate.FmtItalic)
		row.Column(fmt.Sprintf("%d bytes", stats.Sum())).SetFormat(tabulate.FmtItalic)
		row.Column("")
	}

	tab.Print(os.Stdout)
}
