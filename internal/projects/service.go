package projects

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// QuoteTotals exposes the quote rollup needed to refresh a project's quoted
// amount. Implemented by the quotes repository.
type QuoteTotals interface {
	SumByProject(ctx context.Context, projectID int64) (float64, error)
}

type Service struct {
	logger *slog.Logger
	repo   Repository
	quotes QuoteTotals
}

func NewService(logger *slog.Logger, repo Repository, quotes QuoteTotals) *Service {
	return &Service{logger: logger, repo: repo, quotes: quotes}
}

func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Summary, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Create(ctx context.Context, form ProjectForm) (*Project, error) {
	id, err := s.repo.Create(ctx, Project{
		Name:           form.Name,
		CustomerName:   form.CustomerName,
		Address:        form.Address,
		ContactPhone:   form.ContactPhone,
		ContactEmail:   form.ContactEmail,
		SalesEmployee:  form.SalesEmployee,
		ExpectedBudget: form.ExpectedBudget,
		Status:         ProjectStatusActive,
		Notes:          form.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, form ProjectForm) (*Project, error) {
	err := s.repo.Update(ctx, id, Project{
		Name:           form.Name,
		CustomerName:   form.CustomerName,
		Address:        form.Address,
		ContactPhone:   form.ContactPhone,
		ContactEmail:   form.ContactEmail,
		SalesEmployee:  form.SalesEmployee,
		ExpectedBudget: form.ExpectedBudget,
		Notes:          form.Notes,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status ProjectStatus) (*Project, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddExpense(ctx context.Context, projectID int64, form ExpenseForm) (*Expense, error) {
	if _, err := s.repo.Get(ctx, projectID); err != nil {
		return nil, err
	}
	spentAt := form.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}
	e := Expense{
		ProjectID:   projectID,
		Description: form.Description,
		Amount:      form.Amount,
		SpentAt:     spentAt,
		Note:        form.Note,
	}
	id, err := s.repo.AddExpense(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add expense: %w", err)
	}
	e.ID = id
	return &e, nil
}

func (s *Service) ListExpenses(ctx context.Context, projectID int64) ([]Expense, error) {
	if _, err := s.repo.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, projectID)
}

func (s *Service) DeleteExpense(ctx context.Context, projectID, expenseID int64) error {
	return s.repo.DeleteExpense(ctx, projectID, expenseID)
}

// RefreshQuotedAmount recomputes the rollup from the live quote totals. Called
// by the background worker after any quote for the project changes.
func (s *Service) RefreshQuotedAmount(ctx context.Context, projectID int64) error {
	total, err := s.quotes.SumByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("sum quotes for project %d: %w", projectID, err)
	}
	if err := s.repo.SetQuotedAmount(ctx, projectID, total); err != nil {
		return fmt.Errorf("set quoted amount for project %d: %w", projectID, err)
	}
	s.logger.Info("refreshed quoted amount", "project_id", projectID, "quoted_amount", total)
	return nil
}
