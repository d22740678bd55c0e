package projects

import (
	"time"

	"github.com/anphat-erp/anphat-erp/internal/shared"
)

type ProjectForm struct {
	Name           string  `json:"name" validate:"required"`
	CustomerName   string  `json:"customer_name" validate:"required"`
	Address        *string `json:"address"`
	ContactPhone   *string `json:"contact_phone"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
	SalesEmployee  *string `json:"sales_employee"`
	ExpectedBudget float64 `json:"expected_budget" validate:"gte=0"`
	Notes          *string `json:"notes"`
}

type StatusForm struct {
	Status ProjectStatus `json:"status" validate:"required,oneof=ACTIVE COMPLETED ARCHIVED"`
}

type ExpenseForm struct {
	Description string    `json:"description" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	SpentAt     time.Time `json:"spent_at"`
	Note        *string   `json:"note"`
}

type ListFilters struct {
	Search string
	Status *ProjectStatus
	Limit  int
	Offset int
}

type ListResponse struct {
	Items      []Summary         `json:"items"`
	Total      int               `json:"total"`
	Pagination shared.Pagination `json:"pagination"`
}
