package transport

// CreateCategoryRequest registers a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Type string `json:"type" validate:"required,oneof=internal-production external-purchase"`
}

// UpdateCategoryRequest renames or reclassifies a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" validate:"omitempty,oneof=internal-production external-purchase"`
}

// ListCategoriesRequest filters the registry list.
type ListCategoriesRequest struct {
	Name string `form:"name" validate:"max=100"`
	Type string `form:"type" validate:"omitempty,oneof=internal-production external-purchase"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CategoryListResponse wraps a list of categories.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Total int                `json:"total"`
}
