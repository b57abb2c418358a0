package appraisal

import (
	"fmt"

	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// Value thresholds for the heuristic decision tree.
const (
	GreatHaulThreshold  = 5000
	DecentHaulThreshold = 1000
)

// Verdict identifies one of the fixed heuristic verdicts. The zero value,
// VerdictGenerated, marks text that came from a delegated generator.
type Verdict int

const (
	VerdictGenerated Verdict = iota
	VerdictEmpty
	VerdictWorthless
	VerdictLegendary
	VerdictGreatHaul
	VerdictNotable
	VerdictDecent
	VerdictMediocre
	VerdictOnlyDirt
)

func (v Verdict) String() string {
	switch v {
	case VerdictGenerated:
		return "generated"
	case VerdictEmpty:
		return "empty"
	case VerdictWorthless:
		return "worthless"
	case VerdictLegendary:
		return "legendary"
	case VerdictGreatHaul:
		return "great_haul"
	case VerdictNotable:
		return "notable"
	case VerdictDecent:
		return "decent"
	case VerdictMediocre:
		return "mediocre"
	case VerdictOnlyDirt:
		return "only_dirt"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Text returns the appraiser's fixed line for the verdict. Generated
// verdicts have no fixed line.
func (v Verdict) Text() string {
	switch v {
	case VerdictEmpty:
		return "Empty? You're wasting my time."
	case VerdictWorthless:
		return "A heap of rocks and mud... not even enough to cover the cleaning fee."
	case VerdictLegendary:
		return "Unbelievable! A pristine stone out of the old legends! We're rich!"
	case VerdictGreatHaul:
		return "Well now, a full cart! That's a proper haul."
	case VerdictNotable:
		return "Oh? Looks like you found something worth my while. Decent color on that stone."
	case VerdictDecent:
		return "Not a bad take. Keep swinging."
	case VerdictMediocre:
		return "So-so. That'll barely keep the lamp oil burning."
	case VerdictOnlyDirt:
		return "Nothing but dust and stone. Better luck next time, miner."
	default:
		return ""
	}
}

// Decide runs the heuristic decision tree over precomputed signals. Order
// matters: emptiness is checked before the vacuously-true worthless flag,
// and the rare check fires before the low-value buckets.
func Decide(s Signals) Verdict {
	switch {
	case s.IsEmpty:
		return VerdictEmpty
	case s.IsOnlyWorthless:
		return VerdictWorthless
	case s.TotalValue > GreatHaulThreshold:
		if s.HasPristine {
			return VerdictLegendary
		}
		return VerdictGreatHaul
	case s.HasRareType:
		return VerdictNotable
	case s.TotalValue > DecentHaulThreshold:
		return VerdictDecent
	default:
		return VerdictMediocre
	}
}

// Heuristic classifies inv and returns the deterministic verdict for it.
func Heuristic(inv mineral.Inventory) Verdict {
	return Decide(Classify(inv).Signals)
}
