package stage

import (
	"fmt"
	"strings"
)

// ListFilter is the optional-field filter of the unified order list. A nil
// pointer or empty slice leaves that predicate out.
type ListFilter struct {
	OrderNumber       *string
	CustomerName      *string
	Designer          *string
	Salesperson       *string
	Splitter          *string
	OrderType         *string
	QuoteStatus       []string
	CategoryNames     []string
	OrderStatusDetail []string
	Stage             Stage
	NoPagination      bool
}

// Normalize trims text fields and drops blank ones.
func (f ListFilter) Normalize() ListFilter {
	f.OrderNumber = trimmed(f.OrderNumber)
	f.CustomerName = trimmed(f.CustomerName)
	f.Designer = trimmed(f.Designer)
	f.Salesperson = trimmed(f.Salesperson)
	f.Splitter = trimmed(f.Splitter)
	f.OrderType = trimmed(f.OrderType)
	f.QuoteStatus = compact(f.QuoteStatus)
	f.CategoryNames = compact(f.CategoryNames)
	f.OrderStatusDetail = compact(f.OrderStatusDetail)
	return f
}

// Excludes reports whether the filter references a column that the stage s
// does not carry, in which case s contributes no rows.
func (f ListFilter) Excludes(s Stage) bool {
	switch s {
	case Design:
		return f.Splitter != nil || len(f.QuoteStatus) > 0
	case Production:
		return f.Salesperson != nil || f.OrderType != nil || len(f.QuoteStatus) > 0
	default:
		return false
	}
}

// StatusPredicate splits OrderStatusDetail into explicit values and whether
// the "other" bucket (anything outside the stage's known vocabulary) is
// requested. active is false when no status filter applies.
func (f ListFilter) StatusPredicate() (values []string, includeOther bool, active bool) {
	if len(f.OrderStatusDetail) == 0 {
		return nil, false, false
	}
	values = make([]string, 0, len(f.OrderStatusDetail))
	for _, v := range f.OrderStatusDetail {
		if v == OtherStatus {
			includeOther = true
			continue
		}
		values = append(values, v)
	}
	return values, includeOther, true
}

// ContainsPattern renders an ILIKE pattern for a contains match, or nil.
func ContainsPattern(value *string) interface{} {
	if value == nil {
		return nil
	}
	return "%" + *value + "%"
}

// NullableString renders an optional exact-match argument, or nil.
func NullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// NullableStrings renders an optional text[] argument, or nil.
func NullableStrings(values []string) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	if t == "" {
		return nil
	}
	return &t
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StatusArgs renders the four arguments consumed by StatusClause, in order:
// active, explicit values, include-other, the stage's known vocabulary.
func (f ListFilter) StatusArgs(s Stage) []interface{} {
	values, includeOther, active := f.StatusPredicate()
	if values == nil {
		values = []string{}
	}
	return []interface{}{active, values, includeOther, KnownStatuses(s)}
}

// StatusClause renders the status predicate over column, reading its four
// arguments starting at placeholder first.
func StatusClause(column string, first int) string {
	return fmt.Sprintf("(NOT $%d::bool OR %s = ANY($%d::text[]) OR ($%d::bool AND NOT (%s = ANY($%d::text[]))))",
		first, column, first+1, first+2, column, first+3)
}

// CategoryClause renders an any-of match of a text[] argument against the
// entries of a comma-delimited category column.
func CategoryClause(column string, param int) string {
	return fmt.Sprintf(
		"($%d::text[] IS NULL OR EXISTS (SELECT 1 FROM unnest(string_to_array(replace(%s, '，', ','), ',')) AS c(name) WHERE btrim(c.name) = ANY($%d::text[])))",
		param, column, param)
}
