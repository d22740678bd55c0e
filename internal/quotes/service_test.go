package quotes

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/internal/catalog"
	"github.com/anphat-erp/anphat-erp/internal/pricing"
)

type mockRepository struct {
	quotes     map[int64]*Quote
	nextID     int64
	nextLineID int64
	seq        map[string]int64
	statuses   []QuoteStatus
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotes:     make(map[int64]*Quote),
		nextID:     1,
		nextLineID: 1,
		seq:        make(map[string]int64),
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *mockRepository) GetByIdempotencyKey(_ context.Context, key string) (*Quote, error) {
	for _, q := range m.quotes {
		if q.IdempotencyKey != nil && *q.IdempotencyKey == key {
			copied := *q
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) List(_ context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var out []Quote
	for _, q := range m.quotes {
		if req.ProjectID != nil && q.ProjectID != *req.ProjectID {
			continue
		}
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, q Quote) (int64, error) {
	q.ID = m.nextID
	m.nextID++
	m.quotes[q.ID] = &q
	return q.ID, nil
}

func (m *mockRepository) InsertLine(_ context.Context, l QuoteLine) (int64, error) {
	l.ID = m.nextLineID
	m.nextLineID++
	q := m.quotes[l.QuoteID]
	q.Lines = append(q.Lines, l)
	return l.ID, nil
}

func (m *mockRepository) InsertAccessoryLine(_ context.Context, l QuoteAccessoryLine) (int64, error) {
	l.ID = m.nextLineID
	m.nextLineID++
	q := m.quotes[l.QuoteID]
	q.AccessoryLines = append(q.AccessoryLines, l)
	return l.ID, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status QuoteStatus) error {
	q, ok := m.quotes[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockRepository) GenerateNumber(_ context.Context, date time.Time) (string, error) {
	period := date.Format("0601")
	m.seq[period]++
	return "BG-" + period + "-0001", nil
}

func (m *mockRepository) SumByProject(_ context.Context, projectID int64) (float64, error) {
	var sum float64
	for _, q := range m.quotes {
		if q.ProjectID == projectID && q.Status != QuoteStatusCancelled {
			sum += q.TotalAmount
		}
	}
	return sum, nil
}

type staticCatalog struct {
	snap *catalog.Snapshot
}

func (c staticCatalog) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return c.snap, nil
}

type recordingEnqueuer struct {
	projectIDs []int64
}

func (e *recordingEnqueuer) EnqueueProjectRollup(_ context.Context, projectID int64) error {
	e.projectIDs = append(e.projectIDs, projectID)
	return nil
}

func quoteTestSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Departments: []catalog.Department{
			{ID: 1, Code: "TL", Name: "Tủ lạnh"},
			{ID: 2, Code: "KB", Name: "Khoang bếp"},
		},
		Products: []catalog.Product{
			{ID: 10, Name: "Tủ nhôm kính A", AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3, DepartmentID: 1},
			{ID: 11, Name: "Tủ nhôm kính B", AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3, DepartmentID: 2},
		},
		Details: []catalog.ProductDetail{
			{ID: 100, ProductID: 10, Width: 1000, Height: 600, Depth: 500, UnitPrice: 150000},
			{ID: 101, ProductID: 11, Width: 800, Height: 700, Depth: 400, UnitPrice: 120000},
		},
		Accessories: []catalog.Accessory{
			{ID: 50, TypeID: 5, Name: "Chậu rửa Malloca", UnitPrice: 2500000},
		},
	}
}

func newTestService(repo Repository, enq Enqueuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, staticCatalog{snap: quoteTestSnapshot()}, pricing.DefaultBoundsPolicy(), enq)
}

func TestCreateQuotePricesLines(t *testing.T) {
	repo := newMockRepository()
	enq := &recordingEnqueuer{}
	svc := newTestService(repo, enq)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    7,
		CustomerName: "Anh Minh",
		Lines: []CabinetLineRequest{
			{
				DepartmentID:   1,
				AluminumTypeID: 1,
				GlassTypeID:    2,
				HandleTypeID:   3,
				Quantity:       2,
			},
		},
		Accessories: []AccessoryLineRequest{
			{AccessoryID: 50, Quantity: 1, DiscountPercent: 10},
		},
	})
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	require.Len(t, quote.AccessoryLines, 1)

	line := quote.Lines[0]
	require.NotNil(t, line.ProductID)
	assert.EqualValues(t, 10, *line.ProductID)
	assert.Equal(t, 1000.0, line.Width)
	assert.Equal(t, 600.0, line.Height)
	assert.Equal(t, 500.0, line.Depth)
	assert.InDelta(t, 1.0, line.Ratio, 1e-9)
	assert.InDelta(t, 300000, line.Amount, 1e-6)

	acc := quote.AccessoryLines[0]
	assert.InDelta(t, 2250000, acc.Amount, 1e-6)
	assert.InDelta(t, 2550000, quote.TotalAmount, 1e-6)
	assert.Equal(t, QuoteStatusDraft, quote.Status)
	assert.Contains(t, quote.DocNumber, "BG-")
	assert.Equal(t, []int64{7}, enq.projectIDs)
}

func TestCreateQuoteClampsEditedDimensions(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	height := 2000.0
	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    1,
		CustomerName: "Chị Lan",
		Lines: []CabinetLineRequest{
			{
				DepartmentID:   1, // TL: max widened to 1000
				AluminumTypeID: 1,
				GlassTypeID:    2,
				HandleTypeID:   3,
				Height:         &height,
				Quantity:       1,
			},
		},
	})
	require.NoError(t, err)
	line := quote.Lines[0]
	assert.Equal(t, 1000.0, line.Height)
	// planned area stays frozen at the catalog reference dimensions
	assert.InDelta(t, pricing.SurfaceArea(1000, 600, 500), line.PlannedArea, 1e-9)
	assert.Greater(t, line.Ratio, 1.0)
}

func TestCreateQuoteRejectsDuplicateDepartment(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    1,
		CustomerName: "Anh Minh",
		Lines: []CabinetLineRequest{
			{DepartmentID: 1, AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3},
			{DepartmentID: 1, AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3},
		},
	})
	require.ErrorIs(t, err, ErrDuplicateDepartment)
}

func TestCreateQuoteUnknownDepartment(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    1,
		CustomerName: "Anh Minh",
		Lines:        []CabinetLineRequest{{DepartmentID: 999}},
	})
	require.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestCreateQuoteIncompleteSelectionPersistsZeroedLine(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    1,
		CustomerName: "Anh Minh",
		Lines: []CabinetLineRequest{
			{DepartmentID: 1, AluminumTypeID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)
	line := quote.Lines[0]
	assert.Nil(t, line.ProductID)
	assert.Zero(t, line.UnitPrice)
	assert.Zero(t, line.Amount)
	assert.Zero(t, quote.TotalAmount)
}

func TestCreateQuoteIdempotency(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	req := CreateQuoteRequest{
		ProjectID:      1,
		CustomerName:   "Anh Minh",
		IdempotencyKey: "5a9e2c4e-23d8-4c15-9f7a-8d2f3bb1e6aa",
		Lines: []CabinetLineRequest{
			{DepartmentID: 1, AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3, Quantity: 1},
		},
	}

	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.quotes, 1)
}

func TestCreateQuoteRejectsMalformedIdempotencyKey(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:      1,
		CustomerName:   "Anh Minh",
		IdempotencyKey: "not-a-uuid",
	})
	require.ErrorIs(t, err, ErrBadIdempotencyKey)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Lines: []CabinetLineRequest{
			{DepartmentID: 1, AluminumTypeID: 1, GlassTypeID: 2, HandleTypeID: 3, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.InDelta(t, 150000, resp.TotalAmount, 1e-6)
	assert.Empty(t, repo.quotes)
}

func TestStatusTransitions(t *testing.T) {
	repo := newMockRepository()
	enq := &recordingEnqueuer{}
	svc := newTestService(repo, enq)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		ProjectID:    3,
		CustomerName: "Anh Minh",
	})
	require.NoError(t, err)

	issued, err := svc.Issue(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusIssued, issued.Status)

	// issuing twice is rejected
	_, err = svc.Issue(context.Background(), quote.ID)
	require.ErrorIs(t, err, ErrStatusTransition)

	cancelled, err := svc.Cancel(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), quote.ID)
	require.ErrorIs(t, err, ErrStatusTransition)

	// every change triggers a project rollup
	assert.Equal(t, []int64{3, 3, 3}, enq.projectIDs)
}
