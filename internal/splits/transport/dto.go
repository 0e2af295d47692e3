package transport

// UpdateSplitRequest edits split fields. Status, quote and categories have
// their own endpoints.
type UpdateSplitRequest struct {
	CustomerName   *string  `json:"customerName,omitempty" validate:"omitempty,min=1,max=100"`
	Address        *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	ContactPhone   *string  `json:"contactPhone,omitempty" validate:"omitempty,max=32"`
	Splitter       *string  `json:"splitter,omitempty" validate:"omitempty,max=50"`
	OrderAmount    *float64 `json:"orderAmount,omitempty" validate:"omitempty,gte=0"`
	CompletionDate *string  `json:"completionDate,omitempty" validate:"omitempty,date"`
	Remarks        *string  `json:"remarks,omitempty" validate:"omitempty,max=2000"`
}

// UpdateSplitItemRequest edits one split_progress row.
type UpdateSplitItemRequest struct {
	PlannedDate  *string `json:"plannedDate,omitempty" validate:"omitempty,date"`
	SplitDate    *string `json:"splitDate,omitempty" validate:"omitempty,date"`
	PurchaseDate *string `json:"purchaseDate,omitempty" validate:"omitempty,date"`
	Status       *string `json:"status,omitempty" validate:"omitempty,max=20"`
	Remarks      *string `json:"remarks,omitempty" validate:"omitempty,max=2000"`
}

// SplitResponse represents a split in API responses.
type SplitResponse struct {
	ID                  int64    `json:"id"`
	OrderNumber         string   `json:"orderNumber"`
	CustomerName        string   `json:"customerName"`
	Address             string   `json:"address"`
	ContactPhone        *string  `json:"contactPhone,omitempty"`
	OrderDate           *string  `json:"orderDate,omitempty"`
	Designer            *string  `json:"designer,omitempty"`
	Salesperson         *string  `json:"salesperson,omitempty"`
	OrderAmount         *float64 `json:"orderAmount,omitempty"`
	CabinetArea         *float64 `json:"cabinetArea,omitempty"`
	WallPanelArea       *float64 `json:"wallPanelArea,omitempty"`
	OrderType           string   `json:"orderType"`
	IsInstallation      bool     `json:"isInstallation"`
	CategoryName        string   `json:"categoryName"`
	Splitter            *string  `json:"splitter,omitempty"`
	QuoteStatus         string   `json:"quoteStatus"`
	CustomerPaymentDate *string  `json:"customerPaymentDate,omitempty"`
	CompletionDate      *string  `json:"completionDate,omitempty"`
	Remarks             *string  `json:"remarks,omitempty"`
	Status              string   `json:"status"`
	CreatedAt           string   `json:"createdAt"`
	UpdatedAt           string   `json:"updatedAt"`
}

// SplitItemResponse represents a split_progress row.
type SplitItemResponse struct {
	ID           int64   `json:"id"`
	SplitID      int64   `json:"splitId"`
	ItemType     string  `json:"itemType"`
	CategoryName string  `json:"categoryName"`
	PlannedDate  *string `json:"plannedDate,omitempty"`
	SplitDate    *string `json:"splitDate,omitempty"`
	PurchaseDate *string `json:"purchaseDate,omitempty"`
	CycleDays    *string `json:"cycleDays,omitempty"`
	Status       string  `json:"status"`
	Remarks      *string `json:"remarks,omitempty"`
}

// SplitDetailResponse is a split with its sub-ledger.
type SplitDetailResponse struct {
	SplitResponse
	Items []SplitItemResponse `json:"items"`
}
