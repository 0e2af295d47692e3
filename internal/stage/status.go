package stage

import "slices"

// StatusPlaced is the hand-off status shared by the Design and Split stages.
const StatusPlaced = "placed"

// Design statuses. The Design domain is open: values outside this list are
// stored and returned unchanged.
const (
	DesignMeasuring  = "measuring"
	DesignPlaceOrder = "place order"
	DesignPayment    = "payment"
	DesignPaused     = "paused"
	DesignRevoked    = "revoked"
)

// OtherStatus is the filter bucket for any status outside a stage's known list.
const OtherStatus = "other"

// DesignStatuses are the known Design statuses.
var DesignStatuses = []string{
	DesignMeasuring,
	"first draft",
	"company plan review",
	"online plan review",
	"revision",
	"customer confirmation",
	"hard decoration",
	"internal structure drawing",
	"order drawing",
	"re-measure",
	"quote",
	DesignPayment,
	DesignPlaceOrder,
	DesignPaused,
	StatusPlaced,
	DesignRevoked,
}

// Split statuses form a closed vocabulary.
const (
	SplitNotStarted = "not started"
	SplitSplitting  = "splitting"
	SplitRevoking   = "revoking"
	SplitUnreviewed = "unreviewed"
	SplitReviewed   = "reviewed"
)

// SplitStatuses are the allowed Split statuses.
var SplitStatuses = []string{SplitNotStarted, SplitSplitting, SplitRevoking, SplitUnreviewed, SplitReviewed, StatusPlaced}

// Quote statuses carried by a Split.
const (
	QuoteUnpaid = "unpaid"
	QuotePaid   = "paid"
)

// Production statuses, in ascending progress order.
const (
	ProductionUnmaterialed = "unmaterialed"
	ProductionMaterialed   = "materialed"
	ProductionCut          = "cut"
	ProductionStored       = "stored"
	ProductionShipped      = "shipped"
	ProductionCompleted    = "completed"
)

// ProductionStatuses are the allowed Production statuses in progress order.
var ProductionStatuses = []string{
	ProductionUnmaterialed,
	ProductionMaterialed,
	ProductionCut,
	ProductionStored,
	ProductionShipped,
	ProductionCompleted,
}

// KnownStatuses returns the known vocabulary of s.
func KnownStatuses(s Stage) []string {
	switch s {
	case Design:
		return DesignStatuses
	case Split:
		return SplitStatuses
	case Production:
		return ProductionStatuses
	default:
		return nil
	}
}

// IsKnownStatus reports whether status belongs to the vocabulary of s.
func IsKnownStatus(s Stage, status string) bool {
	return slices.Contains(KnownStatuses(s), status)
}

// AcceptsStatus reports whether status may be stored on a record of stage s.
// The Design domain accepts any non-empty value.
func AcceptsStatus(s Stage, status string) bool {
	if status == "" {
		return false
	}
	if s == Design {
		return true
	}
	return IsKnownStatus(s, status)
}

// StatusBucket maps a status to its filter bucket: the status itself when
// known, OtherStatus otherwise.
func StatusBucket(s Stage, status string) string {
	if IsKnownStatus(s, status) {
		return status
	}
	return OtherStatus
}
