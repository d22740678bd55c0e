package quotes

import (
	"time"

	"github.com/anphat-erp/anphat-erp/internal/pricing"
)

// CabinetLineRequest is one cabinet row of an incoming quote. Height and
// depth are optional edits; absent values keep the clamped catalog reference
// dimensions. Width cannot be submitted: it is always taken from the catalog.
type CabinetLineRequest struct {
	DepartmentID    int64    `json:"department_id" validate:"required,gt=0"`
	AluminumTypeID  int64    `json:"aluminum_type_id"`
	GlassTypeID     int64    `json:"glass_type_id"`
	HandleTypeID    int64    `json:"handle_type_id"`
	Height          *float64 `json:"height"`
	Depth           *float64 `json:"depth"`
	Quantity        float64  `json:"quantity"`
	UnitPrice       *float64 `json:"unit_price"`
	DiscountPercent float64  `json:"discount_percent" validate:"gte=0,lte=100"`
}

// AccessoryLineRequest is one accessory row of an incoming quote.
type AccessoryLineRequest struct {
	AccessoryTypeID int64   `json:"accessory_type_id"`
	AccessoryID     int64   `json:"accessory_id"`
	Quantity        float64 `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

// CreateQuoteRequest builds and persists a quote in one call.
type CreateQuoteRequest struct {
	ProjectID         int64                  `json:"project_id" validate:"required,gt=0"`
	CustomerName      string                 `json:"customer_name" validate:"required"`
	QuoteDate         time.Time              `json:"quote_date"`
	SalesEmployee     *string                `json:"sales_employee"`
	CommissionPercent float64                `json:"commission_percent" validate:"gte=0,lte=100"`
	IdempotencyKey    string                 `json:"idempotency_key"`
	Lines             []CabinetLineRequest   `json:"lines" validate:"dive"`
	Accessories       []AccessoryLineRequest `json:"accessories" validate:"dive"`
}

// PreviewRequest prices a working line set without persisting anything. It
// mirrors what the quoting screen recomputes on every edit.
type PreviewRequest struct {
	Lines       []CabinetLineRequest   `json:"lines" validate:"dive"`
	Accessories []AccessoryLineRequest `json:"accessories" validate:"dive"`
}

// PreviewResponse carries the computed lines and grand total.
type PreviewResponse struct {
	Lines          []pricing.Line          `json:"lines"`
	AccessoryLines []pricing.AccessoryLine `json:"accessory_lines"`
	TotalAmount    float64                 `json:"total_amount"`
}

// ListQuotesRequest narrows quote listings.
type ListQuotesRequest struct {
	ProjectID *int64
	Status    *QuoteStatus
	Limit     int
	Offset    int
}
