package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
	"github.com/anphat-erp/anphat-erp/internal/pricing"
)

var (
	ErrUnknownDepartment   = errors.New("unknown department")
	ErrDuplicateDepartment = errors.New("duplicate department line")
	ErrUnknownAccessory    = errors.New("unknown accessory")
	ErrBadIdempotencyKey   = errors.New("idempotency key must be a UUID")
	ErrStatusTransition    = errors.New("invalid status transition")
)

// CatalogSource provides the catalog snapshot used to resolve products and
// accessories while building a quote.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Enqueuer schedules background follow-up work after a quote changes.
type Enqueuer interface {
	EnqueueProjectRollup(ctx context.Context, projectID int64) error
}

type Service struct {
	logger   *slog.Logger
	repo     Repository
	catalogs CatalogSource
	policy   pricing.BoundsPolicy
	enqueuer Enqueuer
}

func NewService(logger *slog.Logger, repo Repository, catalogs CatalogSource, policy pricing.BoundsPolicy, enqueuer Enqueuer) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		catalogs: catalogs,
		policy:   policy,
		enqueuer: enqueuer,
	}
}

// buildLineSet replays the request rows through the working set so every
// figure comes out of the one recompute path.
func (s *Service) buildLineSet(snap *catalog.Snapshot, lines []CabinetLineRequest, accessories []AccessoryLineRequest) (*pricing.LineSet, error) {
	set := pricing.NewLineSet(s.policy)

	for i, req := range lines {
		dept, ok := snap.DepartmentByID(req.DepartmentID)
		if !ok {
			return nil, fmt.Errorf("line %d: %w: id %d", i+1, ErrUnknownDepartment, req.DepartmentID)
		}
		if set.Line(dept.ID) != nil {
			return nil, fmt.Errorf("line %d: %w: %s", i+1, ErrDuplicateDepartment, dept.Code)
		}

		line := set.Upsert(dept)
		line.Quantity = pricing.NormalizeQuantity(req.Quantity)
		line.DiscountPercent = req.DiscountPercent

		set.SetSelection(snap, dept.ID, pricing.Selection{
			AluminumTypeID: req.AluminumTypeID,
			GlassTypeID:    req.GlassTypeID,
			HandleTypeID:   req.HandleTypeID,
		})

		if line.Product != nil {
			bounds := set.Bounds(dept.Code)
			if req.Height != nil {
				line.Height = bounds.Clamp(*req.Height)
			}
			if req.Depth != nil {
				line.Depth = bounds.Clamp(*req.Depth)
			}
			if req.UnitPrice != nil {
				line.UnitPrice = *req.UnitPrice
			}
			pricing.Recompute(line)
		}
	}

	for i, req := range accessories {
		line := set.AddAccessory()
		if req.AccessoryTypeID > 0 {
			pricing.SelectAccessoryType(line, req.AccessoryTypeID)
		}
		if req.AccessoryID > 0 {
			acc, ok := snap.AccessoryByID(req.AccessoryID)
			if !ok {
				return nil, fmt.Errorf("accessory line %d: %w: id %d", i+1, ErrUnknownAccessory, req.AccessoryID)
			}
			pricing.SelectAccessory(line, acc)
		}
		line.Quantity = pricing.NormalizeQuantity(req.Quantity)
		line.DiscountPercent = req.DiscountPercent
		pricing.RecomputeAccessory(line)
	}

	return set, nil
}

// Preview prices a working line set without persisting anything.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	snap, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	set, err := s.buildLineSet(snap, req.Lines, req.Accessories)
	if err != nil {
		return nil, err
	}
	return &PreviewResponse{
		Lines:          set.Lines(),
		AccessoryLines: set.AccessoryLines(),
		TotalAmount:    set.Total(),
	}, nil
}

// Create builds, prices and persists a quote. A request resubmitted with the
// same idempotency key returns the quote from the first submission.
func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	var idemKey *string
	if req.IdempotencyKey != "" {
		if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
			return nil, ErrBadIdempotencyKey
		}
		idemKey = &req.IdempotencyKey

		existing, err := s.repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	snap, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	set, err := s.buildLineSet(snap, req.Lines, req.Accessories)
	if err != nil {
		return nil, err
	}

	quoteDate := req.QuoteDate
	if quoteDate.IsZero() {
		quoteDate = time.Now()
	}

	var quoteID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		docNumber, err := tx.GenerateNumber(ctx, quoteDate)
		if err != nil {
			return fmt.Errorf("generate quote number: %w", err)
		}

		quoteID, err = tx.Create(ctx, Quote{
			DocNumber:         docNumber,
			ProjectID:         req.ProjectID,
			CustomerName:      req.CustomerName,
			QuoteDate:         quoteDate,
			SalesEmployee:     req.SalesEmployee,
			CommissionPercent: req.CommissionPercent,
			Status:            QuoteStatusDraft,
			TotalAmount:       set.Total(),
			IdempotencyKey:    idemKey,
		})
		if err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}

		for order, line := range set.Lines() {
			if _, err := tx.InsertLine(ctx, toQuoteLine(quoteID, order, line)); err != nil {
				return fmt.Errorf("insert quote line %d: %w", order+1, err)
			}
		}
		for order, line := range set.AccessoryLines() {
			if _, err := tx.InsertAccessoryLine(ctx, toAccessoryLine(quoteID, order, line)); err != nil {
				return fmt.Errorf("insert accessory line %d: %w", order+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueRollup(ctx, req.ProjectID)
	return s.repo.Get(ctx, quoteID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	return s.repo.List(ctx, req)
}

// Issue moves a draft quote to ISSUED.
func (s *Service) Issue(ctx context.Context, id int64) (*Quote, error) {
	return s.transition(ctx, id, QuoteStatusIssued, QuoteStatusDraft)
}

// Cancel voids a draft or issued quote. Cancelled quotes no longer count
// toward the project's quoted amount.
func (s *Service) Cancel(ctx context.Context, id int64) (*Quote, error) {
	return s.transition(ctx, id, QuoteStatusCancelled, QuoteStatusDraft, QuoteStatusIssued)
}

func (s *Service) transition(ctx context.Context, id int64, to QuoteStatus, from ...QuoteStatus) (*Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, status := range from {
		if quote.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s to %s", ErrStatusTransition, quote.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	quote.Status = to
	s.enqueueRollup(ctx, quote.ProjectID)
	return quote, nil
}

func (s *Service) enqueueRollup(ctx context.Context, projectID int64) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueProjectRollup(ctx, projectID); err != nil {
		s.logger.Error("enqueue project rollup", "project_id", projectID, "error", err)
	}
}

func toQuoteLine(quoteID int64, order int, line pricing.Line) QuoteLine {
	out := QuoteLine{
		QuoteID:         quoteID,
		DepartmentID:    line.DepartmentID,
		Width:           line.Width,
		Height:          line.Height,
		Depth:           line.Depth,
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		PlannedArea:     line.PlannedArea,
		ActualArea:      line.ActualArea,
		Ratio:           line.Ratio,
		DiscountPercent: line.DiscountPercent,
		Amount:          line.Amount,
		LineOrder:       order,
	}
	if line.Selection.AluminumTypeID > 0 {
		out.AluminumTypeID = &line.Selection.AluminumTypeID
	}
	if line.Selection.GlassTypeID > 0 {
		out.GlassTypeID = &line.Selection.GlassTypeID
	}
	if line.Selection.HandleTypeID > 0 {
		out.HandleTypeID = &line.Selection.HandleTypeID
	}
	if line.Product != nil {
		out.ProductID = &line.Product.ID
		out.ProductName = &line.Product.Name
	}
	return out
}

func toAccessoryLine(quoteID int64, order int, line pricing.AccessoryLine) QuoteAccessoryLine {
	out := QuoteAccessoryLine{
		QuoteID:         quoteID,
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		DiscountPercent: line.DiscountPercent,
		Amount:          line.Amount,
		LineOrder:       order,
	}
	if line.AccessoryTypeID > 0 {
		out.AccessoryTypeID = &line.AccessoryTypeID
	}
	if line.Accessory != nil {
		out.AccessoryID = &line.Accessory.ID
	}
	return out
}
