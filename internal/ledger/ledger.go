// Package ledger holds the stage-independent pieces of the per-category
// progress sub-ledger: item classification, the textual category list format
// and set arithmetic used by reconciliation.
package ledger

import (
	"strings"
)

// Delimiter joins category names in the orders/splits category_name column.
const Delimiter = ","

// ItemType classifies a sub-ledger row.
type ItemType string

const (
	Internal ItemType = "internal"
	External ItemType = "external"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == Internal || t == External
}

// Scope restricts a reconciliation to one item type. ScopeAll classifies
// new rows through the category registry.
type Scope string

const (
	ScopeAll      Scope = ""
	ScopeInternal Scope = "internal"
	ScopeExternal Scope = "external"
)

// ItemType returns the fixed type of a typed scope and false for ScopeAll.
func (s Scope) ItemType() (ItemType, bool) {
	switch s {
	case ScopeInternal:
		return Internal, true
	case ScopeExternal:
		return External, true
	default:
		return "", false
	}
}

// Entry is the exchange shape between stages: one category row with its
// reference date (split or purchase date on a Split, order date on a Production).
type Entry struct {
	Category string
	Type     ItemType
	Date     *string
}

// ParseCategoryList splits a stored category string. It accepts ASCII and
// full-width commas, trims entries and drops blank ones. Order and duplicates
// are preserved.
func ParseCategoryList(raw string) []string {
	normalized := strings.ReplaceAll(raw, "，", Delimiter)
	parts := strings.Split(normalized, Delimiter)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// JoinCategoryList renders names in the stored textual format.
func JoinCategoryList(names []string) string {
	return strings.Join(names, Delimiter)
}

// Unique drops repeated names, keeping the first occurrence.
func Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Delta is the outcome of comparing a sub-ledger with a desired category set.
type Delta struct {
	ToAdd    []string
	ToRemove []string
	Kept     []string
}

// Empty reports whether applying d would change nothing.
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Diff computes desired − existing (in desired order) and existing − desired
// (in existing order). Duplicates on either side collapse.
func Diff(existing, desired []string) Delta {
	existingSet := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		desiredSet[name] = struct{}{}
	}

	var delta Delta
	for _, name := range Unique(desired) {
		if _, ok := existingSet[name]; ok {
			delta.Kept = append(delta.Kept, name)
		} else {
			delta.ToAdd = append(delta.ToAdd, name)
		}
	}
	for _, name := range Unique(existing) {
		if _, ok := desiredSet[name]; !ok {
			delta.ToRemove = append(delta.ToRemove, name)
		}
	}
	return delta
}
