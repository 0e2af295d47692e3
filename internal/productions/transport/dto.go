package transport

// UpdateProductionRequest edits production fields. The status is recomputed
// after every edit.
type UpdateProductionRequest struct {
	ExpectedDeliveryDate *string `json:"expectedDeliveryDate,omitempty" validate:"omitempty,date"`
	Board18              *string `json:"board18,omitempty" validate:"omitempty,max=50"`
	Board09              *string `json:"board09,omitempty" validate:"omitempty,max=50"`
	CuttingDate          *string `json:"cuttingDate,omitempty" validate:"omitempty,date"`
	ExpectedShippingDate *string `json:"expectedShippingDate,omitempty" validate:"omitempty,date"`
	ActualDeliveryDate   *string `json:"actualDeliveryDate,omitempty" validate:"omitempty,date"`
	Remarks              *string `json:"remarks,omitempty" validate:"omitempty,max=2000"`
	SpecialNotes         *string `json:"specialNotes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProductionItemRequest edits one production_progress row. An empty
// string clears a date.
type UpdateProductionItemRequest struct {
	ExpectedMaterialDate *string `json:"expectedMaterialDate,omitempty" validate:"omitempty,date"`
	ActualStorageDate    *string `json:"actualStorageDate,omitempty" validate:"omitempty,date"`
	StorageTime          *string `json:"storageTime,omitempty" validate:"omitempty,max=50"`
	Quantity             *string `json:"quantity,omitempty" validate:"omitempty,max=20"`
	ExpectedArrivalDate  *string `json:"expectedArrivalDate,omitempty" validate:"omitempty,date"`
	ActualArrivalDate    *string `json:"actualArrivalDate,omitempty" validate:"omitempty,date"`
}

// ProductionResponse represents a production in API responses.
type ProductionResponse struct {
	ID                   int64   `json:"id"`
	OrderNumber          string  `json:"orderNumber"`
	CustomerName         string  `json:"customerName"`
	Address              string  `json:"address"`
	Splitter             *string `json:"splitter,omitempty"`
	Designer             *string `json:"designer,omitempty"`
	IsInstallation       bool    `json:"isInstallation"`
	CustomerPaymentDate  *string `json:"customerPaymentDate,omitempty"`
	SplitOrderDate       *string `json:"splitOrderDate,omitempty"`
	OrderDays            *int    `json:"orderDays,omitempty"`
	ExpectedDeliveryDate *string `json:"expectedDeliveryDate,omitempty"`
	Board18              *string `json:"board18,omitempty"`
	Board09              *string `json:"board09,omitempty"`
	CuttingDate          *string `json:"cuttingDate,omitempty"`
	ExpectedShippingDate *string `json:"expectedShippingDate,omitempty"`
	ActualDeliveryDate   *string `json:"actualDeliveryDate,omitempty"`
	Remarks              *string `json:"remarks,omitempty"`
	SpecialNotes         *string `json:"specialNotes,omitempty"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// ProductionItemResponse represents a production_progress row.
type ProductionItemResponse struct {
	ID                   int64   `json:"id"`
	ProductionID         int64   `json:"productionId"`
	ItemType             string  `json:"itemType"`
	CategoryName         string  `json:"categoryName"`
	OrderDate            *string `json:"orderDate,omitempty"`
	ExpectedMaterialDate *string `json:"expectedMaterialDate,omitempty"`
	ActualStorageDate    *string `json:"actualStorageDate,omitempty"`
	StorageTime          *string `json:"storageTime,omitempty"`
	Quantity             *string `json:"quantity,omitempty"`
	ExpectedArrivalDate  *string `json:"expectedArrivalDate,omitempty"`
	ActualArrivalDate    *string `json:"actualArrivalDate,omitempty"`
}

// ProductionDetailResponse is a production with its sub-ledger.
type ProductionDetailResponse struct {
	ProductionResponse
	Items []ProductionItemResponse `json:"items"`
}
