package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	projects      map[int64]*Project
	expenses      map[int64][]Expense
	nextID        int64
	nextExpenseID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:      make(map[int64]*Project),
		expenses:      make(map[int64][]Expense),
		nextID:        1,
		nextExpenseID: 1,
	}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, filters ListFilters) ([]Summary, int, error) {
	var out []Summary
	for _, p := range m.projects {
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		var expenseTotal float64
		for _, e := range m.expenses[p.ID] {
			expenseTotal += e.Amount
		}
		out = append(out, Summary{Project: *p, ExpenseTotal: expenseTotal})
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, p Project) (int64, error) {
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = &p
	return p.ID, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, p Project) error {
	existing, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	existing.Name = p.Name
	existing.CustomerName = p.CustomerName
	existing.Address = p.Address
	existing.ContactPhone = p.ContactPhone
	existing.ContactEmail = p.ContactEmail
	existing.SalesEmployee = p.SalesEmployee
	existing.ExpectedBudget = p.ExpectedBudget
	existing.Notes = p.Notes
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status ProjectStatus) error {
	p, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	return nil
}

func (m *mockRepository) SetQuotedAmount(_ context.Context, id int64, amount float64) error {
	p, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.QuotedAmount = amount
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	delete(m.expenses, id)
	return nil
}

func (m *mockRepository) AddExpense(_ context.Context, e Expense) (int64, error) {
	e.ID = m.nextExpenseID
	m.nextExpenseID++
	m.expenses[e.ProjectID] = append(m.expenses[e.ProjectID], e)
	return e.ID, nil
}

func (m *mockRepository) ListExpenses(_ context.Context, projectID int64) ([]Expense, error) {
	return m.expenses[projectID], nil
}

func (m *mockRepository) DeleteExpense(_ context.Context, projectID, expenseID int64) error {
	list := m.expenses[projectID]
	for i, e := range list {
		if e.ID == expenseID {
			m.expenses[projectID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type staticQuoteTotals struct {
	totals map[int64]float64
}

func (s staticQuoteTotals) SumByProject(_ context.Context, projectID int64) (float64, error) {
	return s.totals[projectID], nil
}

func newTestService(repo Repository, totals map[int64]float64) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, staticQuoteTotals{totals: totals})
}

func TestCreateProjectStartsActive(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	p, err := svc.Create(context.Background(), ProjectForm{
		Name:         "Nhà anh Minh",
		CustomerName: "Anh Minh",
	})
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.Zero(t, p.QuotedAmount)
}

func TestAddExpenseRequiresProject(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	_, err := svc.AddExpense(context.Background(), 42, ExpenseForm{
		Description: "Vận chuyển",
		Amount:      500000,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddExpenseDefaultsSpentAt(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	p, err := svc.Create(context.Background(), ProjectForm{Name: "CT1", CustomerName: "Chị Lan"})
	require.NoError(t, err)

	e, err := svc.AddExpense(context.Background(), p.ID, ExpenseForm{
		Description: "Nhôm thanh",
		Amount:      1200000,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), e.SpentAt, time.Minute)

	expenses, err := svc.ListExpenses(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 1200000.0, expenses[0].Amount)
}

func TestRefreshQuotedAmount(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, map[int64]float64{1: 7500000})

	p, err := svc.Create(context.Background(), ProjectForm{Name: "CT1", CustomerName: "Anh Minh"})
	require.NoError(t, err)

	require.NoError(t, svc.RefreshQuotedAmount(context.Background(), p.ID))

	refreshed, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7500000.0, refreshed.QuotedAmount)
}

func TestListIncludesExpenseTotals(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	p, err := svc.Create(context.Background(), ProjectForm{Name: "CT1", CustomerName: "Anh Minh"})
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), p.ID, ExpenseForm{Description: "Kính", Amount: 300000})
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), p.ID, ExpenseForm{Description: "Tay nắm", Amount: 200000})
	require.NoError(t, err)

	items, total, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 500000.0, items[0].ExpenseTotal)
}
