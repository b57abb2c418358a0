// Package ui prints colored status lines for the non-interactive commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/LanS10t/geminiMiner/internal/ansi"
	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/elevator"
	"github.com/LanS10t/geminiMiner/internal/progress"
)

type Printer struct {
	w io.Writer
}

// New returns a Printer writing to stderr, leaving stdout for verdicts and
// JSON.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

func NewWithWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.w, ansi.Bold+ansi.Yellow+"  ╔═══════════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(p.w, ansi.Bold+ansi.Yellow+"  ║"+ansi.Reset+ansi.Bold+"   MINER  "+ansi.Dim+"dwarven assay office"+ansi.Reset+ansi.Bold+ansi.Yellow+"    ║"+ansi.Reset)
	fmt.Fprintln(p.w, ansi.Bold+ansi.Yellow+"  ╚═══════════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(p.w)
}

func (p *Printer) Appraising(items int, delegated bool) {
	how := "by rule of thumb"
	if delegated {
		how = "by the appraiser"
	}
	fmt.Fprintf(p.w, ansi.Cyan+"⚒ appraising"+ansi.Reset+" %d item(s) "+ansi.Dim+"%s..."+ansi.Reset+"\n", items, how)
}

// Verdict prints the appraisal text with a marker for the branch that
// produced it.
func (p *Printer) Verdict(a appraisal.Appraisal, elapsed time.Duration) {
	var tag, color string
	switch a.Path {
	case appraisal.PathDelegated:
		tag, color = "appraiser", ansi.Magenta
	case appraisal.PathFallback:
		tag, color = "fallback: "+string(a.Failure), ansi.Yellow
	case appraisal.PathOnlyDirt:
		tag, color = "only dirt", ansi.Dim
	default:
		tag, color = "offline", ansi.Cyan
	}
	fmt.Fprintf(p.w, color+ansi.Bold+"» "+ansi.Reset+"%s "+ansi.Dim+"(%s, %.1fs)"+ansi.Reset+"\n", a.Text, tag, elapsed.Seconds())
}

func (p *Printer) Floors(floors []elevator.Floor) {
	for _, f := range floors {
		if f.Unlocked {
			fmt.Fprintf(p.w, "  "+ansi.Green+"▼ %-7s"+ansi.Reset+" ready\n", f.Label)
		} else {
			fmt.Fprintf(p.w, "  "+ansi.Dim+"▼ %-7s locked"+ansi.Reset+"\n", f.Label)
		}
	}
	fmt.Fprintln(p.w, ansi.Dim+elevator.Footer+ansi.Reset)
}

func (p *Printer) Unlocks(unlocks []progress.Unlock) {
	if len(unlocks) == 0 {
		fmt.Fprintln(p.w, ansi.Dim+"  (no depths unlocked yet)"+ansi.Reset)
		return
	}
	for _, u := range unlocks {
		fmt.Fprintf(p.w, "  "+ansi.Green+"%-7s"+ansi.Reset+ansi.Dim+" since %s"+ansi.Reset+"\n", elevator.Label(u.Depth), u.UnlockedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (p *Printer) Traveled(depth int) {
	fmt.Fprintln(p.w, ansi.Paint("✓ arrived at "+elevator.Label(depth), ansi.Green, ansi.Bold))
}

func (p *Printer) Unlocked(depth int) {
	fmt.Fprintln(p.w, ansi.Paint("✓ unlocked "+elevator.Label(depth), ansi.Green))
}

func (p *Printer) ShowStatus(backend, model string, available bool) {
	fmt.Fprintln(p.w, ansi.Dim+"config:"+ansi.Reset)
	fmt.Fprintf(p.w, "  backend:     %s\n", backend)
	if model != "" {
		fmt.Fprintf(p.w, "  model:       %s\n", model)
	} else {
		fmt.Fprintf(p.w, "  model:       (default)\n")
	}
	if available {
		fmt.Fprintln(p.w, "  delegated:   "+ansi.Green+"available"+ansi.Reset)
	} else {
		fmt.Fprintln(p.w, "  delegated:   "+ansi.Yellow+"unavailable (offline verdicts only)"+ansi.Reset)
	}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, ansi.Paint(msg, ansi.Dim))
}
