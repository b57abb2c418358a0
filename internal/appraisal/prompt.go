package appraisal

import (
	"fmt"
	"strings"

	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// DefaultPersona is the character the generator is asked to play.
const DefaultPersona = "You are a sharp-tongued dwarf mineral appraiser."

// reactionRules is appended after the summary in every prompt.
const reactionRules = `Reply with a short verdict of at most two sentences, in character.
If there are high-quality or rare gems (diamond, ruby, emerald, painite), act surprised.
If it is all ordinary ore or coal, act dismissive.`

// summarySeparator joins the per-name parts of an inventory summary.
const summarySeparator = ", "

// Summarize renders groups as "{count}x {name}" parts, noting how many
// items in a group are high quality, e.g.
// "3x Iron Ore, 1x Diamond (contains 1 high-quality)".
func Summarize(groups []Group) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		part := fmt.Sprintf("%dx %s", g.Count(), g.Name)
		if n := g.NotableCount(); n > 0 {
			part += fmt.Sprintf(" (contains %d high-quality)", n)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, summarySeparator)
}

// SummarizeInventory groups inv by name and summarizes the groups.
func SummarizeInventory(inv mineral.Inventory) string {
	return Summarize(GroupByName(inv))
}

// BuildPrompt assembles the role-play prompt for a summary.
// The ordering is: [persona] → [goods] → [reaction rules].
// An empty persona falls back to DefaultPersona.
func BuildPrompt(persona, summary string) string {
	persona = strings.TrimSpace(persona)
	if persona == "" {
		persona = DefaultPersona
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString(" A miner has just brought you these goods: ")
	b.WriteString(summary)
	b.WriteString(".\n")
	b.WriteString(reactionRules)
	return b.String()
}
