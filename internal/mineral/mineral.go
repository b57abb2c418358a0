// Package mineral defines the material kinds, quality tiers, and inventory
// items that the appraisal engine reasons about.
package mineral

import (
	"fmt"
	"strings"
)

// BlockType enumerates every kind of block a miner can collect. The set is
// closed: every kind must appear in AllBlockTypes and in each switch below.
type BlockType int

const (
	Dirt BlockType = iota
	Stone
	HardStone
	Coal
	Copper
	Iron
	Silver
	Gold
	Emerald
	Ruby
	Diamond
	Painite
)

// Tier buckets block kinds by how much the appraiser cares about them.
type Tier int

const (
	TierUnknown   Tier = iota
	TierWorthless      // dirt and plain stone
	TierRubble         // hard stone: not worthless scenery, but never a valuable
	TierCommon         // ordinary ores
	TierRare           // gemstones that always catch the appraiser's eye
)

// AllBlockTypes returns every block kind in declaration order.
func AllBlockTypes() []BlockType {
	return []BlockType{Dirt, Stone, HardStone, Coal, Copper, Iron, Silver, Gold, Emerald, Ruby, Diamond, Painite}
}

// Tier returns the appraisal tier of the block kind. Unknown values map to
// TierUnknown; the enumeration test guarantees no declared kind does.
func (t BlockType) Tier() Tier {
	switch t {
	case Dirt, Stone:
		return TierWorthless
	case HardStone:
		return TierRubble
	case Coal, Copper, Iron, Silver, Gold:
		return TierCommon
	case Emerald, Ruby, Diamond, Painite:
		return TierRare
	default:
		return TierUnknown
	}
}

// String returns the canonical upper-case identifier, e.g. "HARD_STONE".
func (t BlockType) String() string {
	switch t {
	case Dirt:
		return "DIRT"
	case Stone:
		return "STONE"
	case HardStone:
		return "HARD_STONE"
	case Coal:
		return "COAL"
	case Copper:
		return "COPPER"
	case Iron:
		return "IRON"
	case Silver:
		return "SILVER"
	case Gold:
		return "GOLD"
	case Emerald:
		return "EMERALD"
	case Ruby:
		return "RUBY"
	case Diamond:
		return "DIAMOND"
	case Painite:
		return "PAINITE"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// DisplayName returns the name used when an item carries no explicit name.
func (t BlockType) DisplayName() string {
	switch t {
	case Dirt:
		return "Dirt"
	case Stone:
		return "Stone"
	case HardStone:
		return "Hard Stone"
	case Coal:
		return "Coal"
	case Copper:
		return "Copper Ore"
	case Iron:
		return "Iron Ore"
	case Silver:
		return "Silver Ore"
	case Gold:
		return "Gold Ore"
	case Emerald:
		return "Emerald"
	case Ruby:
		return "Ruby"
	case Diamond:
		return "Diamond"
	case Painite:
		return "Painite"
	default:
		return t.String()
	}
}

// IsRare reports whether the kind belongs to the rare gemstone set.
func (t BlockType) IsRare() bool { return t.Tier() == TierRare }

// IsWorthless reports whether the kind is dirt or plain stone.
func (t BlockType) IsWorthless() bool { return t.Tier() == TierWorthless }

// IsValuable reports whether the kind is worth mentioning to the appraiser.
// Hard stone is excluded along with the worthless tier.
func (t BlockType) IsValuable() bool {
	tier := t.Tier()
	return tier == TierCommon || tier == TierRare
}

// MarshalText encodes the kind as its canonical identifier.
func (t BlockType) MarshalText() ([]byte, error) {
	if t.Tier() == TierUnknown {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBlockType, int(t))
	}
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText decodes a kind name using ParseBlockType.
func (t *BlockType) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Quality is the ordered grade of a collected item. Higher is better.
type Quality int

const (
	Poor Quality = iota
	Normal
	High
	Pristine
)

// AllQualities returns every quality from lowest to highest.
func AllQualities() []Quality {
	return []Quality{Poor, Normal, High, Pristine}
}

func (q Quality) String() string {
	switch q {
	case Poor:
		return "POOR"
	case Normal:
		return "NORMAL"
	case High:
		return "HIGH"
	case Pristine:
		return "PRISTINE"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// IsNotable reports whether the quality is worth calling out in a summary.
func (q Quality) IsNotable() bool {
	switch q {
	case High, Pristine:
		return true
	default:
		return false
	}
}

// MarshalText encodes the quality as its lower-case name.
func (q Quality) MarshalText() ([]byte, error) {
	if q < Poor || q > Pristine {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQuality, int(q))
	}
	return []byte(strings.ToLower(q.String())), nil
}

// UnmarshalText decodes a quality name using ParseQuality.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Item is one collected mineral. Items are values; nothing in this module
// mutates an item after it has been collected.
type Item struct {
	Type    BlockType `toml:"type" json:"type"`
	Name    string    `toml:"name" json:"name"`
	Quality Quality   `toml:"quality" json:"quality"`
	Value   float64   `toml:"value" json:"value"`
}

// Inventory is the ordered sequence of items a miner is carrying.
type Inventory []Item

// Clone returns a copy that shares no backing array with inv.
func (inv Inventory) Clone() Inventory {
	if inv == nil {
		return nil
	}
	out := make(Inventory, len(inv))
	copy(out, inv)
	return out
}
