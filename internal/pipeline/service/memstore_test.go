package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"orderflow_backend/internal/ledger"
	ordersrepo "orderflow_backend/internal/orders/repository"
	productionsrepo "orderflow_backend/internal/productions/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
)

// memState is the whole database of the in-memory runner.
type memState struct {
	nextID     int64
	orders     map[int64]ordersrepo.Order
	progress   map[int64][]ordersrepo.ProgressEvent
	splits     map[int64]splitsrepo.Split
	splitItems map[int64][]splitsrepo.Item
	prods      map[int64]productionsrepo.Production
	prodItems  map[int64][]productionsrepo.Item
}

func newMemState() *memState {
	return &memState{
		orders:     map[int64]ordersrepo.Order{},
		progress:   map[int64][]ordersrepo.ProgressEvent{},
		splits:     map[int64]splitsrepo.Split{},
		splitItems: map[int64][]splitsrepo.Item{},
		prods:      map[int64]productionsrepo.Production{},
		prodItems:  map[int64][]productionsrepo.Item{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:     s.nextID,
		orders:     maps.Clone(s.orders),
		progress:   map[int64][]ordersrepo.ProgressEvent{},
		splits:     maps.Clone(s.splits),
		splitItems: map[int64][]splitsrepo.Item{},
		prods:      maps.Clone(s.prods),
		prodItems:  map[int64][]productionsrepo.Item{},
	}
	for k, v := range s.progress {
		c.progress[k] = slices.Clone(v)
	}
	for k, v := range s.splitItems {
		c.splitItems[k] = slices.Clone(v)
	}
	for k, v := range s.prodItems {
		c.prodItems[k] = slices.Clone(v)
	}
	return c
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memRunner is a TxRunner over memState. A transaction works on a copy that
// replaces the state only on success.
type memRunner struct {
	mu    sync.Mutex
	state *memState
	// fail makes the named store operation return an error.
	fail map[string]error
	// txs counts committed write transactions.
	txs int
}

func newMemRunner() *memRunner {
	return &memRunner{state: newMemState(), fail: map[string]error{}}
}

func (r *memRunner) InTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	work := r.state.clone()
	if err := fn(r.bind(work)); err != nil {
		return err
	}
	r.state = work
	r.txs++
	return nil
}

func (r *memRunner) InReadTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.bind(r.state.clone()))
}

func (r *memRunner) bind(st *memState) UnitOfWork {
	return UnitOfWork{
		Orders:      &memOrders{st: st, r: r},
		Splits:      &memSplits{st: st, r: r},
		Productions: &memProductions{st: st, r: r},
	}
}

func (r *memRunner) check(op string) error {
	return r.fail[op]
}

// seedOrder inserts an order outside any transaction.
func (r *memRunner) seedOrder(o ordersrepo.Order) ordersrepo.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.state.id()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	r.state.orders[o.ID] = o
	return o
}

func (r *memRunner) seedProgress(orderID int64, task string, actual *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.progress[orderID] = append(r.state.progress[orderID], ordersrepo.ProgressEvent{
		ID: r.state.id(), OrderID: orderID, TaskItem: task, PlannedDate: "2024-01-01", ActualDate: actual,
	})
}

func (r *memRunner) snapshot() *memState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

func (s *memState) splitByNumber(orderNumber string) (splitsrepo.Split, bool) {
	for _, sp := range s.splits {
		if sp.OrderNumber == orderNumber {
			return sp, true
		}
	}
	return splitsrepo.Split{}, false
}

func (s *memState) productionByNumber(orderNumber string) (productionsrepo.Production, bool) {
	for _, p := range s.prods {
		if p.OrderNumber == orderNumber {
			return p, true
		}
	}
	return productionsrepo.Production{}, false
}

// filterSummaries applies a ListFilter the way the SQL queries do.
func filterSummaries(rows []stage.Summary, f stage.ListFilter, st stage.Stage, page *stage.PageRequest) ([]stage.Summary, int) {
	contains := func(value *string, want *string) bool {
		if want == nil {
			return true
		}
		return value != nil && strings.Contains(strings.ToLower(*value), strings.ToLower(*want))
	}
	values, includeOther, active := f.StatusPredicate()

	out := make([]stage.Summary, 0, len(rows))
	for _, row := range rows {
		orderNumber, customer := row.OrderNumber, row.CustomerName
		if !contains(&orderNumber, f.OrderNumber) || !contains(&customer, f.CustomerName) ||
			!contains(row.Designer, f.Designer) || !contains(row.Salesperson, f.Salesperson) ||
			!contains(row.Splitter, f.Splitter) {
			continue
		}
		if f.OrderType != nil && (row.OrderType == nil || *row.OrderType != *f.OrderType) {
			continue
		}
		if len(f.QuoteStatus) > 0 && (row.QuoteStatus == nil || !slices.Contains(f.QuoteStatus, *row.QuoteStatus)) {
			continue
		}
		if len(f.CategoryNames) > 0 && !slices.ContainsFunc(ledger.ParseCategoryList(row.CategoryName), func(name string) bool {
			return slices.Contains(f.CategoryNames, name)
		}) {
			continue
		}
		if active && !slices.Contains(values, row.Status) && !(includeOther && !stage.IsKnownStatus(st, row.Status)) {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b stage.Summary) int { return strings.Compare(b.OrderNumber, a.OrderNumber) })

	total := len(out)
	if page != nil {
		out = paginate(out, *page)
	}
	return out, total
}

type memOrders struct {
	st *memState
	r  *memRunner
}

func (m *memOrders) ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error) {
	if err := m.r.check("orders.ListSummaries"); err != nil {
		return nil, 0, err
	}
	rows := make([]stage.Summary, 0, len(m.st.orders))
	for _, o := range m.st.orders {
		orderType := o.OrderType
		rows = append(rows, stage.Summary{
			OrderNumber: o.OrderNumber, Stage: stage.Design, RecordID: o.ID, CustomerName: o.CustomerName,
			Address: o.Address, Designer: o.Designer, Salesperson: o.Salesperson, OrderType: &orderType,
			CategoryName: o.CategoryName, Status: o.Status, OrderDate: o.OrderDate, CreatedAt: o.CreatedAt,
		})
	}
	items, total := filterSummaries(rows, f, stage.Design, page)
	return items, total, nil
}

func (m *memOrders) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	out := map[string]string{}
	for _, o := range m.st.orders {
		if slices.Contains(orderNumbers, o.OrderNumber) {
			out[o.OrderNumber] = o.Status
		}
	}
	return out, nil
}

func (m *memOrders) GetByID(ctx context.Context, id int64) (ordersrepo.Order, error) {
	o, ok := m.st.orders[id]
	if !ok {
		return ordersrepo.Order{}, apperr.NotFound("order not found")
	}
	return o, nil
}

func (m *memOrders) GetByOrderNumber(ctx context.Context, orderNumber string) (ordersrepo.Order, error) {
	for _, o := range m.st.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return ordersrepo.Order{}, apperr.NotFound("order not found")
}

func (m *memOrders) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := m.r.check("orders.UpdateStatus"); err != nil {
		return err
	}
	o, ok := m.st.orders[id]
	if !ok {
		return apperr.NotFound("order not found")
	}
	o.Status = status
	m.st.orders[id] = o
	return nil
}

func (m *memOrders) UpdateCategoryName(ctx context.Context, id int64, categoryName string) error {
	o, ok := m.st.orders[id]
	if !ok {
		return apperr.NotFound("order not found")
	}
	o.CategoryName = categoryName
	m.st.orders[id] = o
	return nil
}

func (m *memOrders) ListProgressEvents(ctx context.Context, orderID int64) ([]ordersrepo.ProgressEvent, error) {
	return slices.Clone(m.st.progress[orderID]), nil
}

func (m *memOrders) UpsertProgressActualDate(ctx context.Context, orderID int64, taskKeyword, taskItem, actualDate string) error {
	date := actualDate
	events := m.st.progress[orderID]
	for i, e := range events {
		if strings.Contains(strings.ToLower(e.TaskItem), strings.ToLower(taskKeyword)) {
			events[i].ActualDate = &date
			return nil
		}
	}
	m.st.progress[orderID] = append(events, ordersrepo.ProgressEvent{
		ID: m.st.id(), OrderID: orderID, TaskItem: taskItem, PlannedDate: actualDate, ActualDate: &date,
	})
	return nil
}

func (m *memOrders) ListCycleCandidates(ctx context.Context, placedStatus string) ([]ordersrepo.CycleCandidate, error) {
	out := make([]ordersrepo.CycleCandidate, 0)
	for _, o := range m.st.orders {
		if o.Status != placedStatus {
			out = append(out, ordersrepo.CycleCandidate{ID: o.ID, AssignmentDate: o.AssignmentDate, DesignCycle: o.DesignCycle})
		}
	}
	slices.SortFunc(out, func(a, b ordersrepo.CycleCandidate) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memOrders) UpdateDesignCycles(ctx context.Context, ids []int64, days []int32) (int64, error) {
	var n int64
	for i, id := range ids {
		o := m.st.orders[id]
		if o.DesignCycle != int(days[i]) {
			o.DesignCycle = int(days[i])
			m.st.orders[id] = o
			n++
		}
	}
	return n, nil
}

type memSplits struct {
	st *memState
	r  *memRunner
}

func (m *memSplits) ListEntries(ctx context.Context, splitID int64) ([]ledger.Entry, error) {
	items := m.st.splitItems[splitID]
	out := make([]ledger.Entry, 0, len(items))
	for _, i := range items {
		out = append(out, ledger.Entry{Category: i.CategoryName, Type: i.ItemType, Date: i.ReferenceDate()})
	}
	return out, nil
}

func (m *memSplits) InsertEntries(ctx context.Context, splitID int64, orderNumber string, entries []ledger.Entry) error {
	if err := m.r.check("splits.InsertEntries"); err != nil {
		return err
	}
	for _, e := range entries {
		if slices.ContainsFunc(m.st.splitItems[splitID], func(i splitsrepo.Item) bool { return i.CategoryName == e.Category }) {
			continue
		}
		item := splitsrepo.Item{ID: m.st.id(), SplitID: splitID, OrderNumber: orderNumber, ItemType: e.Type, CategoryName: e.Category, Status: "pending"}
		if e.Type == ledger.External {
			item.PurchaseDate = e.Date
		} else {
			item.SplitDate = e.Date
		}
		m.st.splitItems[splitID] = append(m.st.splitItems[splitID], item)
	}
	return nil
}

func (m *memSplits) DeleteEntries(ctx context.Context, splitID int64, names []string) error {
	m.st.splitItems[splitID] = slices.DeleteFunc(m.st.splitItems[splitID], func(i splitsrepo.Item) bool {
		return slices.Contains(names, i.CategoryName)
	})
	return nil
}

func (m *memSplits) ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error) {
	if err := m.r.check("splits.ListSummaries"); err != nil {
		return nil, 0, err
	}
	rows := make([]stage.Summary, 0, len(m.st.splits))
	for _, s := range m.st.splits {
		orderType, quote := s.OrderType, s.QuoteStatus
		rows = append(rows, stage.Summary{
			OrderNumber: s.OrderNumber, Stage: stage.Split, RecordID: s.ID, CustomerName: s.CustomerName,
			Address: s.Address, Designer: s.Designer, Salesperson: s.Salesperson, Splitter: s.Splitter,
			OrderType: &orderType, CategoryName: s.CategoryName, QuoteStatus: &quote, Status: s.Status,
			OrderDate: s.OrderDate, CreatedAt: s.CreatedAt,
		})
	}
	items, total := filterSummaries(rows, f, stage.Split, page)
	return items, total, nil
}

func (m *memSplits) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	out := map[string]string{}
	for _, s := range m.st.splits {
		if slices.Contains(orderNumbers, s.OrderNumber) {
			out[s.OrderNumber] = s.Status
		}
	}
	return out, nil
}

func (m *memSplits) GetByID(ctx context.Context, id int64) (splitsrepo.Split, error) {
	s, ok := m.st.splits[id]
	if !ok {
		return splitsrepo.Split{}, apperr.NotFound("split not found")
	}
	return s, nil
}

func (m *memSplits) GetByOrderNumber(ctx context.Context, orderNumber string) (splitsrepo.Split, error) {
	if s, ok := m.st.splitByNumber(orderNumber); ok {
		return s, nil
	}
	return splitsrepo.Split{}, apperr.NotFound("split not found")
}

func (m *memSplits) CreateIfAbsent(ctx context.Context, p splitsrepo.CreateParams) (splitsrepo.Split, bool, error) {
	if err := m.r.check("splits.CreateIfAbsent"); err != nil {
		return splitsrepo.Split{}, false, err
	}
	if _, ok := m.st.splitByNumber(p.OrderNumber); ok {
		return splitsrepo.Split{}, false, nil
	}
	s := splitsrepo.Split{
		ID: m.st.id(), OrderNumber: p.OrderNumber, CustomerName: p.CustomerName, Address: p.Address,
		ContactPhone: p.ContactPhone, OrderDate: p.OrderDate, Designer: p.Designer, Salesperson: p.Salesperson,
		OrderAmount: p.OrderAmount, CabinetArea: p.CabinetArea, WallPanelArea: p.WallPanelArea,
		OrderType: p.OrderType, IsInstallation: p.IsInstallation, CategoryName: p.CategoryName,
		QuoteStatus: p.QuoteStatus, CustomerPaymentDate: p.CustomerPaymentDate, Status: p.Status,
	}
	m.st.splits[s.ID] = s
	return s, true, nil
}

func (m *memSplits) update(id int64, fn func(s *splitsrepo.Split)) error {
	s, ok := m.st.splits[id]
	if !ok {
		return apperr.NotFound("split not found")
	}
	fn(&s)
	m.st.splits[id] = s
	return nil
}

func (m *memSplits) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.update(id, func(s *splitsrepo.Split) { s.Status = status })
}

func (m *memSplits) UpdateCategoryName(ctx context.Context, id int64, categoryName string) error {
	return m.update(id, func(s *splitsrepo.Split) { s.CategoryName = categoryName })
}

func (m *memSplits) UpdateQuote(ctx context.Context, id int64, quoteStatus string, paymentDate *string) error {
	return m.update(id, func(s *splitsrepo.Split) {
		s.QuoteStatus = quoteStatus
		if paymentDate != nil {
			s.CustomerPaymentDate = paymentDate
		}
	})
}

func (m *memSplits) ListItems(ctx context.Context, splitID int64) ([]splitsrepo.Item, error) {
	return slices.Clone(m.st.splitItems[splitID]), nil
}

func (m *memSplits) ListCycleItems(ctx context.Context) ([]splitsrepo.CycleItem, error) {
	out := make([]splitsrepo.CycleItem, 0)
	for splitID, items := range m.st.splitItems {
		for _, i := range items {
			out = append(out, splitsrepo.CycleItem{
				ID: i.ID, ItemType: i.ItemType, OrderDate: m.st.splits[splitID].OrderDate,
				SplitDate: i.SplitDate, PurchaseDate: i.PurchaseDate, CycleDays: i.CycleDays,
			})
		}
	}
	return out, nil
}

func (m *memSplits) UpdateCycleDays(ctx context.Context, ids []int64, values []string) (int64, error) {
	var n int64
	for splitID, items := range m.st.splitItems {
		for i := range items {
			idx := slices.Index(ids, items[i].ID)
			if idx < 0 {
				continue
			}
			if values[idx] == "" {
				items[i].CycleDays = nil
			} else {
				v := values[idx]
				items[i].CycleDays = &v
			}
			n++
		}
		m.st.splitItems[splitID] = items
	}
	return n, nil
}

type memProductions struct {
	st *memState
	r  *memRunner
}

func (m *memProductions) ListEntries(ctx context.Context, productionID int64) ([]ledger.Entry, error) {
	items := m.st.prodItems[productionID]
	out := make([]ledger.Entry, 0, len(items))
	for _, i := range items {
		out = append(out, ledger.Entry{Category: i.CategoryName, Type: i.ItemType, Date: i.OrderDate})
	}
	return out, nil
}

func (m *memProductions) InsertEntries(ctx context.Context, productionID int64, orderNumber string, entries []ledger.Entry) error {
	if err := m.r.check("productions.InsertEntries"); err != nil {
		return err
	}
	for _, e := range entries {
		if slices.ContainsFunc(m.st.prodItems[productionID], func(i productionsrepo.Item) bool { return i.CategoryName == e.Category }) {
			continue
		}
		m.st.prodItems[productionID] = append(m.st.prodItems[productionID], productionsrepo.Item{
			ID: m.st.id(), ProductionID: productionID, OrderNumber: orderNumber,
			ItemType: e.Type, CategoryName: e.Category, OrderDate: e.Date,
		})
	}
	return nil
}

func (m *memProductions) DeleteEntries(ctx context.Context, productionID int64, names []string) error {
	m.st.prodItems[productionID] = slices.DeleteFunc(m.st.prodItems[productionID], func(i productionsrepo.Item) bool {
		return slices.Contains(names, i.CategoryName)
	})
	return nil
}

func (m *memProductions) ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error) {
	if err := m.r.check("productions.ListSummaries"); err != nil {
		return nil, 0, err
	}
	rows := make([]stage.Summary, 0, len(m.st.prods))
	for _, p := range m.st.prods {
		names := make([]string, 0)
		for _, i := range m.st.prodItems[p.ID] {
			names = append(names, i.CategoryName)
		}
		rows = append(rows, stage.Summary{
			OrderNumber: p.OrderNumber, Stage: stage.Production, RecordID: p.ID, CustomerName: p.CustomerName,
			Address: p.Address, Designer: p.Designer, Splitter: p.Splitter,
			CategoryName: ledger.JoinCategoryList(names), Status: p.Status, OrderDate: p.SplitOrderDate,
			CreatedAt: p.CreatedAt,
		})
	}
	items, total := filterSummaries(rows, f, stage.Production, page)
	return items, total, nil
}

func (m *memProductions) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range m.st.prods {
		if slices.Contains(orderNumbers, p.OrderNumber) {
			out[p.OrderNumber] = p.Status
		}
	}
	return out, nil
}

func (m *memProductions) GetByID(ctx context.Context, id int64) (productionsrepo.Production, error) {
	p, ok := m.st.prods[id]
	if !ok {
		return productionsrepo.Production{}, apperr.NotFound("production not found")
	}
	return p, nil
}

func (m *memProductions) GetByOrderNumber(ctx context.Context, orderNumber string) (productionsrepo.Production, error) {
	if p, ok := m.st.productionByNumber(orderNumber); ok {
		return p, nil
	}
	return productionsrepo.Production{}, apperr.NotFound("production not found")
}

func (m *memProductions) CreateIfAbsent(ctx context.Context, p productionsrepo.CreateParams) (productionsrepo.Production, bool, error) {
	if err := m.r.check("productions.CreateIfAbsent"); err != nil {
		return productionsrepo.Production{}, false, err
	}
	if _, ok := m.st.productionByNumber(p.OrderNumber); ok {
		return productionsrepo.Production{}, false, nil
	}
	prod := productionsrepo.Production{
		ID: m.st.id(), OrderNumber: p.OrderNumber, CustomerName: p.CustomerName, Address: p.Address,
		Splitter: p.Splitter, Designer: p.Designer, IsInstallation: p.IsInstallation,
		CustomerPaymentDate: p.CustomerPaymentDate, SplitOrderDate: p.SplitOrderDate, OrderDays: p.OrderDays,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate, Status: p.Status,
	}
	m.st.prods[prod.ID] = prod
	return prod, true, nil
}

func (m *memProductions) Update(ctx context.Context, id int64, p productionsrepo.UpdateParams) (productionsrepo.Production, error) {
	prod, ok := m.st.prods[id]
	if !ok {
		return productionsrepo.Production{}, apperr.NotFound("production not found")
	}
	set := func(dst **string, src *string) {
		if src == nil {
			return
		}
		if *src == "" {
			*dst = nil
			return
		}
		v := *src
		*dst = &v
	}
	set(&prod.ExpectedDeliveryDate, p.ExpectedDeliveryDate)
	set(&prod.Board18, p.Board18)
	set(&prod.Board09, p.Board09)
	set(&prod.CuttingDate, p.CuttingDate)
	set(&prod.ExpectedShippingDate, p.ExpectedShippingDate)
	set(&prod.ActualDeliveryDate, p.ActualDeliveryDate)
	set(&prod.Remarks, p.Remarks)
	set(&prod.SpecialNotes, p.SpecialNotes)
	m.st.prods[id] = prod
	return prod, nil
}

func (m *memProductions) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := m.r.check("productions.UpdateStatus"); err != nil {
		return err
	}
	prod, ok := m.st.prods[id]
	if !ok {
		return apperr.NotFound("production not found")
	}
	prod.Status = status
	m.st.prods[id] = prod
	return nil
}

func (m *memProductions) ListItems(ctx context.Context, productionID int64) ([]productionsrepo.Item, error) {
	return slices.Clone(m.st.prodItems[productionID]), nil
}

func (m *memProductions) UpdateItem(ctx context.Context, productionID, itemID int64, p productionsrepo.ItemParams) (productionsrepo.Item, error) {
	items := m.st.prodItems[productionID]
	idx := slices.IndexFunc(items, func(i productionsrepo.Item) bool { return i.ID == itemID })
	if idx < 0 {
		return productionsrepo.Item{}, apperr.NotFound("production item not found")
	}
	item := items[idx]
	if p.ActualStorageDate != nil {
		item.ActualStorageDate = p.ActualStorageDate
	}
	if p.StorageTime != nil {
		item.StorageTime = p.StorageTime
	}
	if p.ActualArrivalDate != nil {
		item.ActualArrivalDate = p.ActualArrivalDate
	}
	if p.ExpectedArrivalDate != nil {
		item.ExpectedArrivalDate = p.ExpectedArrivalDate
	}
	if p.ExpectedMaterialDate != nil {
		item.ExpectedMaterialDate = p.ExpectedMaterialDate
	}
	if p.Quantity != nil {
		item.Quantity = p.Quantity
	}
	items[idx] = item
	m.st.prodItems[productionID] = items
	return item, nil
}

func (m *memProductions) ListRecomputeIDs(ctx context.Context, completedStatus string) ([]int64, error) {
	ids := make([]int64, 0)
	for id, p := range m.st.prods {
		if p.Status != completedStatus {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

var (
	_ TxRunner        = (*memRunner)(nil)
	_ OrderStore      = (*memOrders)(nil)
	_ SplitStore      = (*memSplits)(nil)
	_ ProductionStore = (*memProductions)(nil)
)

// staticClassifier classifies names from a fixed table, defaulting to internal.
type staticClassifier map[string]ledger.ItemType

func (c staticClassifier) Classify(ctx context.Context, names []string) map[string]ledger.ItemType {
	out := make(map[string]ledger.ItemType, len(names))
	for _, name := range names {
		if t, ok := c[name]; ok {
			out[name] = t
		} else {
			out[name] = ledger.Internal
		}
	}
	return out
}

func strPtr(s string) *string { return &s }

func errInjected(op string) error { return fmt.Errorf("injected failure in %s", op) }
