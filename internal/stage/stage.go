// Package stage holds the vocabulary shared by the three stage modules and
// the cross-stage pipeline: stage identifiers, status domains, list filters
// and the unified order summary.
package stage

import (
	"fmt"
	"strings"
)

// Stage identifies one of the three fixed phases of an order.
type Stage string

const (
	Design     Stage = "design"
	Split      Stage = "split"
	Production Stage = "production"
)

// Ordered lists the stages in fulfilment order, which is also merge precedence.
var Ordered = []Stage{Design, Split, Production}

// ParseStage accepts the stage names used in URLs and filters. An empty
// string is the unscoped stage "".
func ParseStage(raw string) (Stage, error) {
	switch s := Stage(strings.ToLower(strings.TrimSpace(raw))); s {
	case "", Design, Split, Production:
		return s, nil
	default:
		return "", fmt.Errorf("unknown stage %q", raw)
	}
}

// Valid reports whether s names a stage.
func (s Stage) Valid() bool {
	return s == Design || s == Split || s == Production
}

// Prefix renders the composite status prefix for s.
func (s Stage) Prefix() string {
	return string(s) + "-"
}

// Qualify renders a stage-prefixed status such as "split-splitting".
func (s Stage) Qualify(status string) string {
	return s.Prefix() + status
}
