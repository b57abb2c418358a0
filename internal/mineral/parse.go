package mineral

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for parsing kinds, qualities, and inventory files.
var (
	// ErrUnknownBlockType indicates a block kind name that matches no kind.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrUnknownQuality indicates a quality name that matches no tier.
	ErrUnknownQuality = errors.New("unknown quality")
	// ErrNegativeValue indicates an item whose value is below zero.
	ErrNegativeValue = errors.New("item value must not be negative")
	// ErrInvalidValue indicates an item value that is NaN or infinite.
	ErrInvalidValue = errors.New("item value must be a finite number")
)

// normalizeName folds case and drops separators so "Hard-Stone",
// "hard_stone" and "HARDSTONE" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// suggestionLimit bounds the edit distance at which a near miss is offered
// as a suggestion. Short names tolerate fewer typos.
func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// closest returns the candidate label nearest to key, or "" when none is
// within the suggestion limit.
func closest(key string, candidates map[string]string) string {
	best := ""
	bestDist := -1
	for norm, label := range candidates {
		dist := levenshtein.ComputeDistance(key, norm)
		if dist > suggestionLimit(len(norm)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && label < best) {
			best, bestDist = label, dist
		}
	}
	return best
}

func unknownNameError(sentinel error, raw string, candidates map[string]string) error {
	if hint := closest(normalizeName(raw), candidates); hint != "" {
		return fmt.Errorf("%w %q (did you mean %s?)", sentinel, raw, hint)
	}
	return fmt.Errorf("%w %q", sentinel, raw)
}

// ParseBlockType resolves a block kind from its name, ignoring case and
// separators. Near misses produce an error carrying a suggestion.
func ParseBlockType(s string) (BlockType, error) {
	key := normalizeName(s)
	candidates := make(map[string]string, len(AllBlockTypes()))
	for _, t := range AllBlockTypes() {
		norm := normalizeName(t.String())
		if key == norm {
			return t, nil
		}
		candidates[norm] = t.String()
	}
	return 0, unknownNameError(ErrUnknownBlockType, s, candidates)
}

// ParseQuality resolves a quality tier from its name, ignoring case.
func ParseQuality(s string) (Quality, error) {
	key := normalizeName(s)
	candidates := make(map[string]string, len(AllQualities()))
	for _, q := range AllQualities() {
		norm := normalizeName(q.String())
		if key == norm {
			return q, nil
		}
		candidates[norm] = q.String()
	}
	return 0, unknownNameError(ErrUnknownQuality, s, candidates)
}

// inventoryFile is the on-disk TOML layout: a list of [[item]] tables.
// Kinds and qualities stay strings here so parse errors keep their
// sentinel and the offending item index.
type inventoryFile struct {
	Items []rawItem `toml:"item"`
}

type rawItem struct {
	Type    string  `toml:"type"`
	Name    string  `toml:"name,omitempty"`
	Quality string  `toml:"quality,omitempty"`
	Value   any     `toml:"value"`
}

// number accepts both TOML integers and floats; a missing value is zero.
func number(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("value %v is not a number", v)
	}
}

// ParseInventory decodes a TOML inventory document. Items without a name
// take the display name of their kind; items without a quality are Normal.
func ParseInventory(data []byte) (Inventory, error) {
	var f inventoryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mineral: decode inventory: %w", err)
	}
	inv := make(Inventory, 0, len(f.Items))
	for i, raw := range f.Items {
		item, err := raw.item()
		if err != nil {
			return nil, fmt.Errorf("mineral: item %d: %w", i, err)
		}
		inv = append(inv, item)
	}
	return inv, nil
}

func (r rawItem) item() (Item, error) {
	value, err := number(r.Value)
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", r.Type, err)
	}
	return NewItem(r.Type, r.Name, r.Quality, value)
}

// NewItem builds an Item from loosely typed fields, applying the same
// defaults and checks as ParseInventory.
func NewItem(kind, name, quality string, value float64) (Item, error) {
	bt, err := ParseBlockType(kind)
	if err != nil {
		return Item{}, err
	}
	q := Normal
	if strings.TrimSpace(quality) != "" {
		if q, err = ParseQuality(quality); err != nil {
			return Item{}, err
		}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Item{}, fmt.Errorf("%s: %w", bt, ErrInvalidValue)
	}
	if value < 0 {
		return Item{}, fmt.Errorf("%s: %w", bt, ErrNegativeValue)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = bt.DisplayName()
	}
	return Item{Type: bt, Name: name, Quality: q, Value: value}, nil
}

// LoadInventory reads and decodes the inventory file at path.
func LoadInventory(path string) (Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mineral: read inventory %s: %w", path, err)
	}
	return ParseInventory(data)
}

// MarshalInventory encodes inv in the same layout ParseInventory reads.
func MarshalInventory(inv Inventory) ([]byte, error) {
	f := inventoryFile{Items: make([]rawItem, 0, len(inv))}
	for _, item := range inv {
		f.Items = append(f.Items, rawItem{
			Type:    strings.ToLower(item.Type.String()),
			Name:    item.Name,
			Quality: strings.ToLower(item.Quality.String()),
			Value:   item.Value,
		})
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("mineral: encode inventory: %w", err)
	}
	return data, nil
}
