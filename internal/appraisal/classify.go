// Package appraisal turns a miner's inventory into an in-character verdict.
//
// Classification and the heuristic verdict are pure functions of the
// inventory snapshot. The Dispatcher layers an optional delegated text
// generator on top, falling back to the heuristic verdict whenever the
// generator is unavailable, fails, or returns nothing.
package appraisal

import "github.com/LanS10t/geminiMiner/internal/mineral"

// Signals are the aggregate facts the heuristic decision tree branches on.
type Signals struct {
	TotalValue      float64
	HasRareType     bool
	HasPristine     bool
	IsOnlyWorthless bool // vacuously true for an empty inventory
	IsEmpty         bool
}

// Group is every item sharing one display name, in encounter order.
type Group struct {
	Name  string
	Items []mineral.Item
}

// Count returns the number of items in the group.
func (g Group) Count() int { return len(g.Items) }

// NotableCount returns how many items in the group are of notable quality.
func (g Group) NotableCount() int {
	n := 0
	for _, item := range g.Items {
		if item.Quality.IsNotable() {
			n++
		}
	}
	return n
}

// Classification bundles the signals and the by-name grouping of one
// inventory snapshot.
type Classification struct {
	Signals Signals
	Groups  []Group
}

// Classify derives signals and groups from inv. It never fails, never
// mutates inv, and retains no reference to it: groups hold copies.
func Classify(inv mineral.Inventory) Classification {
	s := Signals{
		IsEmpty:         len(inv) == 0,
		IsOnlyWorthless: true,
	}
	for _, item := range inv {
		s.TotalValue += item.Value
		if item.Type.IsRare() {
			s.HasRareType = true
		}
		if item.Quality == mineral.Pristine {
			s.HasPristine = true
		}
		if !item.Type.IsWorthless() {
			s.IsOnlyWorthless = false
		}
	}
	return Classification{Signals: s, Groups: GroupByName(inv)}
}

// GroupByName partitions inv by item name. Groups appear in the order their
// name was first seen; items keep their relative order within a group.
func GroupByName(inv mineral.Inventory) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, item := range inv {
		i, ok := index[item.Name]
		if !ok {
			i = len(groups)
			index[item.Name] = i
			groups = append(groups, Group{Name: item.Name})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Valuables returns the items worth showing the appraiser: everything except
// dirt, stone, and hard stone.
func Valuables(inv mineral.Inventory) mineral.Inventory {
	var out mineral.Inventory
	for _, item := range inv {
		if item.Type.IsValuable() {
			out = append(out, item)
		}
	}
	return out
}
