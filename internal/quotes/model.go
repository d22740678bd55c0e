package quotes

import "time"

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusIssued    QuoteStatus = "ISSUED"
	QuoteStatusCancelled QuoteStatus = "CANCELLED"
)

// Quote is a priced offer for a construction project (công trình). The total
// is derived from the lines at build time and re-derived on every rebuild;
// it is never edited independently.
type Quote struct {
	ID                int64                `json:"id"`
	DocNumber         string               `json:"doc_number"`
	ProjectID         int64                `json:"project_id"`
	CustomerName      string               `json:"customer_name"`
	QuoteDate         time.Time            `json:"quote_date"`
	SalesEmployee     *string              `json:"sales_employee,omitempty"`
	CommissionPercent float64              `json:"commission_percent"`
	Status            QuoteStatus          `json:"status"`
	TotalAmount       float64              `json:"total_amount"`
	IdempotencyKey    *string              `json:"idempotency_key,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Lines             []QuoteLine          `json:"lines,omitempty"`
	AccessoryLines    []QuoteAccessoryLine `json:"accessory_lines,omitempty"`
}

// QuoteLine is one persisted cabinet row. The material selection and the
// resolved product are stored alongside the computed figures so the quote can
// be re-opened and re-priced later.
type QuoteLine struct {
	ID              int64   `json:"id"`
	QuoteID         int64   `json:"quote_id"`
	DepartmentID    int64   `json:"department_id"`
	AluminumTypeID  *int64  `json:"aluminum_type_id,omitempty"`
	GlassTypeID     *int64  `json:"glass_type_id,omitempty"`
	HandleTypeID    *int64  `json:"handle_type_id,omitempty"`
	ProductID       *int64  `json:"product_id,omitempty"`
	ProductName     *string `json:"product_name,omitempty"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Depth           float64 `json:"depth"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	PlannedArea     float64 `json:"planned_area"`
	ActualArea      float64 `json:"actual_area"`
	Ratio           float64 `json:"ratio"`
	DiscountPercent float64 `json:"discount_percent"`
	Amount          float64 `json:"amount"`
	LineOrder       int     `json:"line_order"`
}

// QuoteAccessoryLine is one persisted kitchen-accessory row.
type QuoteAccessoryLine struct {
	ID              int64   `json:"id"`
	QuoteID         int64   `json:"quote_id"`
	AccessoryTypeID *int64  `json:"accessory_type_id,omitempty"`
	AccessoryID     *int64  `json:"accessory_id,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Amount          float64 `json:"amount"`
	LineOrder       int     `json:"line_order"`
}
