package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderflow_backend/internal/ledger"
	ordersrepo "orderflow_backend/internal/orders/repository"
	productionsrepo "orderflow_backend/internal/productions/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/db"
)

// SubLedgerStore is the per-category sub-ledger of one stage record.
type SubLedgerStore interface {
	ListEntries(ctx context.Context, ownerID int64) ([]ledger.Entry, error)
	InsertEntries(ctx context.Context, ownerID int64, orderNumber string, entries []ledger.Entry) error
	DeleteEntries(ctx context.Context, ownerID int64, names []string) error
}

// SummaryStore lists one stage's rows for the unified order list.
type SummaryStore interface {
	ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error)
	StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error)
}

// OrderStore is the Design-stage persistence the pipeline needs.
type OrderStore interface {
	SummaryStore
	GetByID(ctx context.Context, id int64) (ordersrepo.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (ordersrepo.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateCategoryName(ctx context.Context, id int64, categoryName string) error
	ListProgressEvents(ctx context.Context, orderID int64) ([]ordersrepo.ProgressEvent, error)
	UpsertProgressActualDate(ctx context.Context, orderID int64, taskKeyword, taskItem, actualDate string) error
	ListCycleCandidates(ctx context.Context, placedStatus string) ([]ordersrepo.CycleCandidate, error)
	UpdateDesignCycles(ctx context.Context, ids []int64, days []int32) (int64, error)
}

// SplitStore is the Split-stage persistence the pipeline needs.
type SplitStore interface {
	SubLedgerStore
	SummaryStore
	GetByID(ctx context.Context, id int64) (splitsrepo.Split, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (splitsrepo.Split, error)
	CreateIfAbsent(ctx context.Context, p splitsrepo.CreateParams) (splitsrepo.Split, bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateCategoryName(ctx context.Context, id int64, categoryName string) error
	UpdateQuote(ctx context.Context, id int64, quoteStatus string, paymentDate *string) error
	ListItems(ctx context.Context, splitID int64) ([]splitsrepo.Item, error)
	ListCycleItems(ctx context.Context) ([]splitsrepo.CycleItem, error)
	UpdateCycleDays(ctx context.Context, ids []int64, values []string) (int64, error)
}

// ProductionStore is the Production-stage persistence the pipeline needs.
type ProductionStore interface {
	SubLedgerStore
	SummaryStore
	GetByID(ctx context.Context, id int64) (productionsrepo.Production, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (productionsrepo.Production, error)
	CreateIfAbsent(ctx context.Context, p productionsrepo.CreateParams) (productionsrepo.Production, bool, error)
	Update(ctx context.Context, id int64, p productionsrepo.UpdateParams) (productionsrepo.Production, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ListItems(ctx context.Context, productionID int64) ([]productionsrepo.Item, error)
	UpdateItem(ctx context.Context, productionID, itemID int64, p productionsrepo.ItemParams) (productionsrepo.Item, error)
	ListRecomputeIDs(ctx context.Context, completedStatus string) ([]int64, error)
}

// UnitOfWork groups the three stage stores bound to one transaction.
type UnitOfWork struct {
	Orders      OrderStore
	Splits      SplitStore
	Productions ProductionStore
}

// summaries returns the list store of stage s.
func (u UnitOfWork) summaries(s stage.Stage) SummaryStore {
	switch s {
	case stage.Design:
		return u.Orders
	case stage.Split:
		return u.Splits
	default:
		return u.Productions
	}
}

// TxRunner runs a function against stores bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(uow UnitOfWork) error) error
	InReadTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// PgRunner is the PostgreSQL TxRunner.
type PgRunner struct {
	pool *pgxpool.Pool
}

// NewPgRunner creates a runner over pool.
func NewPgRunner(pool *pgxpool.Pool) *PgRunner {
	return &PgRunner{pool: pool}
}

// InTx runs fn in a read-committed transaction.
func (r *PgRunner) InTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(bind(tx))
	})
}

// InReadTx runs fn in a read-only transaction.
func (r *PgRunner) InReadTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return db.WithReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(bind(tx))
	})
}

func bind(q db.DBTX) UnitOfWork {
	return UnitOfWork{
		Orders:      ordersrepo.New(q),
		Splits:      splitsrepo.New(q),
		Productions: productionsrepo.New(q),
	}
}

var _ TxRunner = (*PgRunner)(nil)

var (
	_ OrderStore      = (*ordersrepo.Repo)(nil)
	_ SplitStore      = (*splitsrepo.Repo)(nil)
	_ ProductionStore = (*productionsrepo.Repo)(nil)
)
