package projects

import "time"

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// Project is a construction site (công trình) that quotes and expenses hang
// off. QuotedAmount is a rollup over the project's non-cancelled quotes,
// refreshed by a background job; it is never edited directly.
type Project struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	CustomerName   string        `json:"customer_name"`
	Address        *string       `json:"address,omitempty"`
	ContactPhone   *string       `json:"contact_phone,omitempty"`
	ContactEmail   *string       `json:"contact_email,omitempty"`
	SalesEmployee  *string       `json:"sales_employee,omitempty"`
	ExpectedBudget float64       `json:"expected_budget"`
	Status         ProjectStatus `json:"status"`
	QuotedAmount   float64       `json:"quoted_amount"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Expense is one cost entry booked against a project.
type Expense struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	SpentAt     time.Time `json:"spent_at"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary pairs a project with its expense total for the overview listing.
type Summary struct {
	Project
	ExpenseTotal float64 `json:"expense_total"`
}
