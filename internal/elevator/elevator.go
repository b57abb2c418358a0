// Package elevator models the depth travel panel: a fixed list of candidate
// floors, each enabled only when the player has unlocked it.
package elevator

import (
	"context"
	"errors"
	"fmt"
)

// DefaultDepths are the candidate floors, in metres below the surface, in
// display order.
var DefaultDepths = []int{100, 250, 500, 1000, 2000, 3500}

// Footer is shown beneath the floor list.
const Footer = "Keep digging to unlock more floors."

var (
	// ErrLocked is returned by Travel for a listed floor that is not unlocked.
	ErrLocked = errors.New("elevator: floor is locked")
	// ErrUnknownDepth is returned by Travel for a depth not on the panel.
	ErrUnknownDepth = errors.New("elevator: no such floor")
)

// Travel outcomes passed to a TravelRecorder.
const (
	ResultTraveled = "traveled"
	ResultLocked   = "locked"
	ResultUnknown  = "unknown"
)

// UnlockSource supplies the set of depths the player has reached.
type UnlockSource interface {
	UnlockedDepths(ctx context.Context) (map[int]bool, error)
}

// TravelRecorder observes every travel attempt.
type TravelRecorder interface {
	RecordTravel(result string)
}

// Floor is one row of the panel.
type Floor struct {
	Depth    int    `json:"depth"`
	Unlocked bool   `json:"unlocked"`
	Label    string `json:"label"`
}

// Label formats a depth the way the panel shows it, e.g. "-250m".
func Label(depth int) string {
	return fmt.Sprintf("-%dm", depth)
}

// Panel is a stateless view over a depth list and an unlocked set. The
// only action it exposes is Travel, which fires OnTravel for unlocked
// floors and nothing else.
type Panel struct {
	Depths   []int
	Unlocked map[int]bool
	OnTravel func(depth int)
	Recorder TravelRecorder
}

// New returns a Panel over copies of depths and unlocked. A nil depths
// slice means DefaultDepths.
func New(depths []int, unlocked map[int]bool, onTravel func(int)) *Panel {
	if depths == nil {
		depths = DefaultDepths
	}
	p := &Panel{
		Depths:   append([]int(nil), depths...),
		Unlocked: make(map[int]bool, len(unlocked)),
		OnTravel: onTravel,
	}
	for d, ok := range unlocked {
		if ok {
			p.Unlocked[d] = true
		}
	}
	return p
}

// Load builds a Panel whose unlocked set comes from src.
func Load(ctx context.Context, depths []int, src UnlockSource, onTravel func(int)) (*Panel, error) {
	unlocked, err := src.UnlockedDepths(ctx)
	if err != nil {
		return nil, fmt.Errorf("elevator: loading unlocked depths: %w", err)
	}
	return New(depths, unlocked, onTravel), nil
}

// Floors returns one Floor per listed depth, in list order.
func (p *Panel) Floors() []Floor {
	floors := make([]Floor, len(p.Depths))
	for i, d := range p.Depths {
		floors[i] = Floor{Depth: d, Unlocked: p.Unlocked[d], Label: Label(d)}
	}
	return floors
}

func (p *Panel) listed(depth int) bool {
	for _, d := range p.Depths {
		if d == depth {
			return true
		}
	}
	return false
}

// Travel fires OnTravel(depth) when depth is listed and unlocked.
// Otherwise it returns ErrUnknownDepth or ErrLocked and fires nothing.
func (p *Panel) Travel(depth int) error {
	switch {
	case !p.listed(depth):
		p.record(ResultUnknown)
		return fmt.Errorf("%w: %s", ErrUnknownDepth, Label(depth))
	case !p.Unlocked[depth]:
		p.record(ResultLocked)
		return fmt.Errorf("%w: %s", ErrLocked, Label(depth))
	}
	p.record(ResultTraveled)
	if p.OnTravel != nil {
		p.OnTravel(depth)
	}
	return nil
}

func (p *Panel) record(result string) {
	if p.Recorder != nil {
		p.Recorder.RecordTravel(result)
	}
}

// UnlockedCount reports how many listed floors are unlocked.
func (p *Panel) UnlockedCount() int {
	n := 0
	for _, d := range p.Depths {
		if p.Unlocked[d] {
			n++
		}
	}
	return n
}
