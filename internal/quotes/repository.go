package quotes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anphat-erp/anphat-erp/internal/platform/db"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Quote, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
	Create(ctx context.Context, quote Quote) (int64, error)
	InsertLine(ctx context.Context, line QuoteLine) (int64, error)
	InsertAccessoryLine(ctx context.Context, line QuoteAccessoryLine) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status QuoteStatus) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
	SumByProject(ctx context.Context, projectID int64) (float64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quoteColumns = `id, doc_number, project_id, customer_name, quote_date, sales_employee,
	commission_percent, status, total_amount, idempotency_key, created_at, updated_at`

func (r *repository) scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(&q.ID, &q.DocNumber, &q.ProjectID, &q.CustomerName, &q.QuoteDate, &q.SalesEmployee,
		&q.CommissionPercent, &q.Status, &q.TotalAmount, &q.IdempotencyKey, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quote, error) {
	q, err := r.scanQuote(r.db.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Quote, error) {
	q, err := r.scanQuote(r.db.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE idempotency_key = $1`, key))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *repository) attachLines(ctx context.Context, q *Quote) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, quote_id, department_id, aluminum_type_id, glass_type_id, handle_type_id,
		        product_id, product_name, width, height, depth, quantity, unit_price,
		        planned_area, actual_area, ratio, discount_percent, amount, line_order
		 FROM quote_lines WHERE quote_id = $1 ORDER BY line_order`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var l QuoteLine
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.DepartmentID, &l.AluminumTypeID, &l.GlassTypeID,
			&l.HandleTypeID, &l.ProductID, &l.ProductName, &l.Width, &l.Height, &l.Depth, &l.Quantity,
			&l.UnitPrice, &l.PlannedArea, &l.ActualArea, &l.Ratio, &l.DiscountPercent, &l.Amount, &l.LineOrder); err != nil {
			return err
		}
		q.Lines = append(q.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	accRows, err := r.db.Query(ctx,
		`SELECT id, quote_id, accessory_type_id, accessory_id, quantity, unit_price, discount_percent, amount, line_order
		 FROM quote_accessory_lines WHERE quote_id = $1 ORDER BY line_order`, q.ID)
	if err != nil {
		return err
	}
	defer accRows.Close()
	for accRows.Next() {
		var l QuoteAccessoryLine
		if err := accRows.Scan(&l.ID, &l.QuoteID, &l.AccessoryTypeID, &l.AccessoryID, &l.Quantity,
			&l.UnitPrice, &l.DiscountPercent, &l.Amount, &l.LineOrder); err != nil {
			return err
		}
		q.AccessoryLines = append(q.AccessoryLines, l)
	}
	return accRows.Err()
}

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM quotes WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.ProjectID != nil {
		argCount++
		cond := ` AND project_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.ProjectID)
	}
	if req.Status != nil {
		argCount++
		cond := ` AND status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY quote_date DESC, id DESC`
	if req.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, req.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, req.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.ID, &q.DocNumber, &q.ProjectID, &q.CustomerName, &q.QuoteDate, &q.SalesEmployee,
			&q.CommissionPercent, &q.Status, &q.TotalAmount, &q.IdempotencyKey, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, q)
	}
	return quotes, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, q Quote) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO quotes (doc_number, project_id, customer_name, quote_date, sales_employee,
		                     commission_percent, status, total_amount, idempotency_key, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) RETURNING id`,
		q.DocNumber, q.ProjectID, q.CustomerName, q.QuoteDate, q.SalesEmployee,
		q.CommissionPercent, q.Status, q.TotalAmount, q.IdempotencyKey,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertLine(ctx context.Context, l QuoteLine) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO quote_lines (quote_id, department_id, aluminum_type_id, glass_type_id, handle_type_id,
		                          product_id, product_name, width, height, depth, quantity, unit_price,
		                          planned_area, actual_area, ratio, discount_percent, amount, line_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id`,
		l.QuoteID, l.DepartmentID, l.AluminumTypeID, l.GlassTypeID, l.HandleTypeID,
		l.ProductID, l.ProductName, l.Width, l.Height, l.Depth, l.Quantity, l.UnitPrice,
		l.PlannedArea, l.ActualArea, l.Ratio, l.DiscountPercent, l.Amount, l.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertAccessoryLine(ctx context.Context, l QuoteAccessoryLine) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO quote_accessory_lines (quote_id, accessory_type_id, accessory_id, quantity,
		                                    unit_price, discount_percent, amount, line_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		l.QuoteID, l.AccessoryTypeID, l.AccessoryID, l.Quantity,
		l.UnitPrice, l.DiscountPercent, l.Amount, l.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status QuoteStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	// BG-{YY}{MM}-{SEQ}: báo giá numbering, one sequence per month.
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "BG", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BG-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) SumByProject(ctx context.Context, projectID int64) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM quotes WHERE project_id = $1 AND status <> 'CANCELLED'`,
		projectID,
	).Scan(&sum)
	return sum, err
}
