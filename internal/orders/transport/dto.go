package transport

// CreateOrderRequest opens a Design-stage order.
type CreateOrderRequest struct {
	OrderNumber    string   `json:"orderNumber" validate:"required,min=1,max=50"`
	CustomerName   string   `json:"customerName" validate:"required,min=1,max=100"`
	Address        string   `json:"address" validate:"max=500"`
	ContactPhone   *string  `json:"contactPhone,omitempty" validate:"omitempty,max=32"`
	Designer       *string  `json:"designer,omitempty" validate:"omitempty,max=50"`
	Salesperson    *string  `json:"salesperson,omitempty" validate:"omitempty,max=50"`
	AssignmentDate string   `json:"assignmentDate" validate:"required,date"`
	OrderDate      *string  `json:"orderDate,omitempty" validate:"omitempty,date"`
	CategoryName   string   `json:"categoryName" validate:"max=2000"`
	OrderType      string   `json:"orderType" validate:"max=50"`
	CabinetArea    *float64 `json:"cabinetArea,omitempty" validate:"omitempty,gte=0"`
	WallPanelArea  *float64 `json:"wallPanelArea,omitempty" validate:"omitempty,gte=0"`
	OrderAmount    *float64 `json:"orderAmount,omitempty" validate:"omitempty,gte=0"`
	IsInstallation bool     `json:"isInstallation"`
	Remarks        *string  `json:"remarks,omitempty" validate:"omitempty,max=2000"`
	Status         string   `json:"status" validate:"max=200"`
}

// UpdateOrderRequest edits order fields. Status and categories have their
// own endpoints because they trigger cross-stage work.
type UpdateOrderRequest struct {
	CustomerName   *string  `json:"customerName,omitempty" validate:"omitempty,min=1,max=100"`
	Address        *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	ContactPhone   *string  `json:"contactPhone,omitempty" validate:"omitempty,max=32"`
	Designer       *string  `json:"designer,omitempty" validate:"omitempty,max=50"`
	Salesperson    *string  `json:"salesperson,omitempty" validate:"omitempty,max=50"`
	AssignmentDate *string  `json:"assignmentDate,omitempty" validate:"omitempty,date"`
	OrderDate      *string  `json:"orderDate,omitempty" validate:"omitempty,date"`
	OrderType      *string  `json:"orderType,omitempty" validate:"omitempty,max=50"`
	CabinetArea    *float64 `json:"cabinetArea,omitempty" validate:"omitempty,gte=0"`
	WallPanelArea  *float64 `json:"wallPanelArea,omitempty" validate:"omitempty,gte=0"`
	OrderAmount    *float64 `json:"orderAmount,omitempty" validate:"omitempty,gte=0"`
	IsInstallation *bool    `json:"isInstallation,omitempty"`
	Remarks        *string  `json:"remarks,omitempty" validate:"omitempty,max=2000"`
}

// ProgressEventRequest creates or edits a design progress event.
type ProgressEventRequest struct {
	TaskItem    *string `json:"taskItem,omitempty" validate:"omitempty,min=1,max=200"`
	PlannedDate *string `json:"plannedDate,omitempty" validate:"omitempty,date"`
	ActualDate  *string `json:"actualDate,omitempty" validate:"omitempty,date"`
	Remarks     *string `json:"remarks,omitempty" validate:"omitempty,max=2000"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID             int64    `json:"id"`
	OrderNumber    string   `json:"orderNumber"`
	CustomerName   string   `json:"customerName"`
	Address        string   `json:"address"`
	ContactPhone   *string  `json:"contactPhone,omitempty"`
	Designer       *string  `json:"designer,omitempty"`
	Salesperson    *string  `json:"salesperson,omitempty"`
	AssignmentDate string   `json:"assignmentDate"`
	OrderDate      *string  `json:"orderDate,omitempty"`
	CategoryName   string   `json:"categoryName"`
	OrderType      string   `json:"orderType"`
	DesignCycle    int      `json:"designCycle"`
	CabinetArea    *float64 `json:"cabinetArea,omitempty"`
	WallPanelArea  *float64 `json:"wallPanelArea,omitempty"`
	OrderAmount    *float64 `json:"orderAmount,omitempty"`
	IsInstallation bool     `json:"isInstallation"`
	Remarks        *string  `json:"remarks,omitempty"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// ProgressEventResponse represents a design progress event.
type ProgressEventResponse struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	TaskItem    string  `json:"taskItem"`
	PlannedDate string  `json:"plannedDate"`
	ActualDate  *string `json:"actualDate,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// OrderDetailResponse is an order with its progress events.
type OrderDetailResponse struct {
	OrderResponse
	ProgressEvents []ProgressEventResponse `json:"progressEvents"`
}

// ProgressEventListResponse wraps the events of one order.
type ProgressEventListResponse struct {
	Items []ProgressEventResponse `json:"items"`
}
