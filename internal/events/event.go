// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"orderflow_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Stage Pipeline Events
// =============================================================================

// StageCascaded is published after commit when a status transition reached
// the cascade step. Created is false when the downstream record already
// existed and creation was skipped.
type StageCascaded struct {
	BaseEvent
	FromStage   string `json:"fromStage"`
	ToStage     string `json:"toStage"`
	OrderNumber string `json:"orderNumber"`
	RecordID    int64  `json:"recordId"`
	Created     bool   `json:"created"`
}

func (e StageCascaded) EventName() string { return "pipeline.stage.cascaded" }

// ProductionStatusChanged is published when the status validator or a
// manual override changed a production's stored status.
type ProductionStatusChanged struct {
	BaseEvent
	ProductionID int64  `json:"productionId"`
	OrderNumber  string `json:"orderNumber"`
	From         string `json:"from"`
	To           string `json:"to"`
}

func (e ProductionStatusChanged) EventName() string { return "pipeline.production.status_changed" }

// SplitRevoking is published when an Order revocation moved its Split to revoking.
type SplitRevoking struct {
	BaseEvent
	SplitID     int64  `json:"splitId"`
	OrderNumber string `json:"orderNumber"`
}

func (e SplitRevoking) EventName() string { return "pipeline.split.revoking" }

// CategoriesReconciled is published after a sub-ledger reconciliation changed rows.
type CategoriesReconciled struct {
	BaseEvent
	Stage       string   `json:"stage"`
	RecordID    int64    `json:"recordId"`
	OrderNumber string   `json:"orderNumber"`
	Added       []string `json:"added"`
	Removed     []string `json:"removed"`
}

func (e CategoriesReconciled) EventName() string { return "pipeline.categories.reconciled" }
