package morse

import (
	"fmt"
	"strings"
)

// RepairMode selects how an invalid token is handled.
type RepairMode int

const (
	// RemoveIncorrectLetter drops the invalid token.
	RemoveIncorrectLetter RepairMode = iota
	// RemoveIncorrectKey strips runes that are not format symbols and keeps
	// the token if the result is valid.
	RemoveIncorrectKey
	// ReplaceWithShortPress turns stray runes into the short press symbol.
	ReplaceWithShortPress
	// ReplaceWithLongPress turns stray runes into the long press symbol.
	ReplaceWithLongPress
	// OrderedRepair tries every mode of a RepairOrder until one yields a valid token.
	OrderedRepair
)

// DefaultRepairMode is used when no mode is configured.
const DefaultRepairMode = RemoveIncorrectLetter

var repairModeNames = []string{
	RemoveIncorrectLetter: "remove-incorrect-letter",
	RemoveIncorrectKey:    "remove-incorrect-key",
	ReplaceWithShortPress: "replace-with-short-press",
	ReplaceWithLongPress:  "replace-with-long-press",
	OrderedRepair:         "ordered",
}

// RepairModes lists every mode in declaration order.
func RepairModes() []RepairMode {
	return []RepairMode{RemoveIncorrectLetter, RemoveIncorrectKey, ReplaceWithShortPress, ReplaceWithLongPress, OrderedRepair}
}

func (m RepairMode) String() string {
	if m < 0 || int(m) >= len(repairModeNames) {
		return fmt.Sprintf("RepairMode(%d)", int(m))
	}
	return repairModeNames[m]
}

// ParseRepairMode reads a mode by name.
func ParseRepairMode(s string) (RepairMode, error) {
	name := strings.TrimSpace(strings.ToLower(s))
	for i, n := range repairModeNames {
		if n == name {
			return RepairMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown repair mode %q (available: %s)", s, strings.Join(repairModeNames, ", "))
}

// RepairOrder is the sequence of modes tried by OrderedRepair.
// A nil order means DefaultRepairOrder.
type RepairOrder []RepairMode

// DefaultRepairOrder returns the order used when none is configured.
func DefaultRepairOrder() RepairOrder {
	return RepairOrder{RemoveIncorrectKey, ReplaceWithShortPress, ReplaceWithLongPress}
}

// NewRepairOrder keeps the first occurrence of each per-key mode.
// RemoveIncorrectLetter and OrderedRepair are ignored.
func NewRepairOrder(modes ...RepairMode) RepairOrder {
	order := RepairOrder{}
	seen := map[RepairMode]bool{}
	for _, m := range modes {
		if !m.perKey() || seen[m] {
			continue
		}
		seen[m] = true
		order = append(order, m)
	}
	return order
}

// ParseRepairOrder reads a comma-separated list of mode names.
func ParseRepairOrder(s string) (RepairOrder, error) {
	parts := strings.Split(s, ",")
	modes := make([]RepairMode, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseRepairMode(part)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return NewRepairOrder(modes...), nil
}

func (o RepairOrder) String() string {
	names := make([]string, len(o))
	for i, m := range o {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

func (m RepairMode) perKey() bool {
	return m == RemoveIncorrectKey || m == ReplaceWithShortPress || m == ReplaceWithLongPress
}

// RepairResult is the outcome of RepairDetailed.
type RepairResult struct {
	Text     string
	Kept     int
	Repaired int
	Dropped  int
}

// Repair fixes or drops every invalid token of text. It never fails; text
// beyond repair just gets shorter.
func Repair(text string, mode RepairMode, f Format, order RepairOrder) string {
	return RepairDetailed(text, mode, f, order).Text
}

// RepairDetailed is Repair with per-token counts.
func RepairDetailed(text string, mode RepairMode, f Format, order RepairOrder) RepairResult {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return RepairResult{}
	}
	if order == nil {
		order = DefaultRepairOrder()
	}
	valid := ValidCodes(f)

	var res RepairResult
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if valid.Contains(token) {
			out = append(out, token)
			res.Kept++
			continue
		}
		fixed, ok := repairToken(token, mode, f, order, valid)
		if !ok {
			res.Dropped++
			continue
		}
		out = append(out, fixed)
		res.Repaired++
	}
	res.Text = strings.Join(out, " ")
	return res
}

func repairToken(token string, mode RepairMode, f Format, order RepairOrder, valid CodeSet) (string, bool) {
	switch mode {
	case RemoveIncorrectKey, ReplaceWithShortPress, ReplaceWithLongPress:
		fixed := applyKeyRepair(token, mode, f)
		return fixed, valid.Contains(fixed)
	case OrderedRepair:
		for _, m := range order {
			if !m.perKey() {
				continue
			}
			if fixed := applyKeyRepair(token, m, f); valid.Contains(fixed) {
				return fixed, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func applyKeyRepair(token string, mode RepairMode, f Format) string {
	var replacement rune
	switch mode {
	case ReplaceWithShortPress:
		replacement = f.Short
	case ReplaceWithLongPress:
		replacement = f.Long
	default:
		replacement = -1
	}
	return strings.Map(func(r rune) rune {
		if f.IsSymbol(r) {
			return r
		}
		return replacement
	}, token)
}
