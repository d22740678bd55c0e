package projects

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, filters ListFilters) ([]Summary, int, error)
	Create(ctx context.Context, p Project) (int64, error)
	Update(ctx context.Context, id int64, p Project) error
	UpdateStatus(ctx context.Context, id int64, status ProjectStatus) error
	SetQuotedAmount(ctx context.Context, id int64, amount float64) error
	Delete(ctx context.Context, id int64) error

	AddExpense(ctx context.Context, e Expense) (int64, error)
	ListExpenses(ctx context.Context, projectID int64) ([]Expense, error)
	DeleteExpense(ctx context.Context, projectID, expenseID int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const projectColumns = `id, name, customer_name, address, contact_phone, contact_email, sales_employee,
	expected_budget, status, quoted_amount, notes, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	err := r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.CustomerName, &p.Address, &p.ContactPhone, &p.ContactEmail,
		&p.SalesEmployee, &p.ExpectedBudget, &p.Status, &p.QuotedAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Summary, int, error) {
	query := `SELECT p.id, p.name, p.customer_name, p.address, p.contact_phone, p.contact_email,
	                 p.sales_employee, p.expected_budget, p.status, p.quoted_amount, p.notes,
	                 p.created_at, p.updated_at,
	                 COALESCE(SUM(e.amount), 0) AS expense_total
	          FROM projects p
	          LEFT JOIN project_expenses e ON e.project_id = p.id
	          WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM projects p WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		cond := ` AND (p.name ILIKE $` + strconv.Itoa(argCount) + ` OR p.customer_name ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		argCount++
		cond := ` AND p.status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` GROUP BY p.id ORDER BY p.created_at DESC, p.id DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.CustomerName, &s.Address, &s.ContactPhone, &s.ContactEmail,
			&s.SalesEmployee, &s.ExpectedBudget, &s.Status, &s.QuotedAmount, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt, &s.ExpenseTotal); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Project) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (name, customer_name, address, contact_phone, contact_email, sales_employee,
		                       expected_budget, status, quoted_amount, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, NOW(), NOW()) RETURNING id`,
		p.Name, p.CustomerName, p.Address, p.ContactPhone, p.ContactEmail, p.SalesEmployee,
		p.ExpectedBudget, p.Status, p.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, p Project) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $1, customer_name = $2, address = $3, contact_phone = $4,
		        contact_email = $5, sales_employee = $6, expected_budget = $7, notes = $8, updated_at = NOW()
		 WHERE id = $9`,
		p.Name, p.CustomerName, p.Address, p.ContactPhone, p.ContactEmail, p.SalesEmployee,
		p.ExpectedBudget, p.Notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status ProjectStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SetQuotedAmount(ctx context.Context, id int64, amount float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET quoted_amount = $1, updated_at = NOW() WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AddExpense(ctx context.Context, e Expense) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO project_expenses (project_id, description, amount, spent_at, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id`,
		e.ProjectID, e.Description, e.Amount, e.SpentAt, e.Note,
	).Scan(&id)
	return id, err
}

func (r *repository) ListExpenses(ctx context.Context, projectID int64) ([]Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, description, amount, spent_at, note, created_at
		 FROM project_expenses WHERE project_id = $1 ORDER BY spent_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Description, &e.Amount, &e.SpentAt, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) DeleteExpense(ctx context.Context, projectID, expenseID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM project_expenses WHERE id = $1 AND project_id = $2`, expenseID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
