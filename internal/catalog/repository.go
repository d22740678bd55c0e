package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a catalog record does not exist.
var ErrNotFound = errors.New("record not found")

// ListFilters narrows catalog listings.
type ListFilters struct {
	Search string
	Kind   MaterialKind
	TypeID *int64
	Limit  int
	Offset int
}

type Repository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)

	ListMaterialTypes(ctx context.Context, kind MaterialKind, filters ListFilters) ([]MaterialType, int, error)
	GetMaterialType(ctx context.Context, id int64) (MaterialType, error)
	CreateMaterialType(ctx context.Context, mt MaterialType) (MaterialType, error)
	UpdateMaterialType(ctx context.Context, id int64, mt MaterialType) error
	DeleteMaterialType(ctx context.Context, id int64) error

	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartment(ctx context.Context, id int64) (Department, error)
	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, id int64, d Department) error
	DeleteDepartment(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, id int64, p Product) error
	DeleteProduct(ctx context.Context, id int64) error

	GetProductDetail(ctx context.Context, productID int64) (ProductDetail, error)
	UpsertProductDetail(ctx context.Context, d ProductDetail) (ProductDetail, error)

	ListAccessoryTypes(ctx context.Context) ([]AccessoryType, error)
	CreateAccessoryType(ctx context.Context, t AccessoryType) (AccessoryType, error)
	UpdateAccessoryType(ctx context.Context, id int64, t AccessoryType) error
	DeleteAccessoryType(ctx context.Context, id int64) error

	ListAccessories(ctx context.Context, filters ListFilters) ([]Accessory, int, error)
	GetAccessory(ctx context.Context, id int64) (Accessory, error)
	CreateAccessory(ctx context.Context, a Accessory) (Accessory, error)
	UpdateAccessory(ctx context.Context, id int64, a Accessory) error
	DeleteAccessory(ctx context.Context, id int64) error
}

// listQuery builds a filtered row query together with its count query, so the
// reported total always reflects the same conditions as the returned rows.
type listQuery struct {
	rows  string
	count string
	args  []interface{}
}

func newListQuery(rows, count string) *listQuery {
	return &listQuery{rows: rows, count: count}
}

// Where appends a condition to both queries. The expression carries a single
// %d verb for the positional placeholder.
func (q *listQuery) Where(expr string, arg interface{}) {
	q.args = append(q.args, arg)
	cond := ` AND ` + fmt.Sprintf(expr, len(q.args))
	q.rows += cond
	q.count += cond
}

// Count returns the count query with the accumulated arguments.
func (q *listQuery) Count() (string, []interface{}) {
	return q.count, q.args
}

// Rows returns the row query with ordering and an optional limit/offset window.
func (q *listQuery) Rows(orderBy string, limit, offset int) (string, []interface{}) {
	query := q.rows + ` ORDER BY ` + orderBy
	args := q.args
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	return query, args
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	for _, kind := range []MaterialKind{MaterialAluminum, MaterialGlass, MaterialHandle} {
		types, _, err := r.ListMaterialTypes(ctx, kind, ListFilters{})
		if err != nil {
			return nil, err
		}
		switch kind {
		case MaterialAluminum:
			snap.AluminumTypes = types
		case MaterialGlass:
			snap.GlassTypes = types
		case MaterialHandle:
			snap.HandleTypes = types
		}
	}

	departments, err := r.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	snap.Departments = departments

	products, _, err := r.ListProducts(ctx, ListFilters{})
	if err != nil {
		return nil, err
	}
	snap.Products = products

	details, err := r.listDetails(ctx)
	if err != nil {
		return nil, err
	}
	snap.Details = details

	accTypes, err := r.ListAccessoryTypes(ctx)
	if err != nil {
		return nil, err
	}
	snap.AccessoryTypes = accTypes

	accessories, _, err := r.ListAccessories(ctx, ListFilters{})
	if err != nil {
		return nil, err
	}
	snap.Accessories = accessories

	return snap, nil
}

func (r *repository) ListMaterialTypes(ctx context.Context, kind MaterialKind, filters ListFilters) ([]MaterialType, int, error) {
	lq := newListQuery(
		`SELECT id, kind, name, description, created_at, updated_at FROM material_types WHERE 1=1`,
		`SELECT COUNT(*) FROM material_types WHERE 1=1`)
	lq.Where(`kind = $%d`, kind)
	if filters.Search != "" {
		lq.Where(`name ILIKE $%d`, "%"+filters.Search+"%")
	}

	var total int
	countQuery, countArgs := lq.Count()
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := lq.Rows(`id`, filters.Limit, filters.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var types []MaterialType
	for rows.Next() {
		var mt MaterialType
		if err := rows.Scan(&mt.ID, &mt.Kind, &mt.Name, &mt.Description, &mt.CreatedAt, &mt.UpdatedAt); err != nil {
			return nil, 0, err
		}
		types = append(types, mt)
	}
	return types, total, rows.Err()
}

func (r *repository) GetMaterialType(ctx context.Context, id int64) (MaterialType, error) {
	var mt MaterialType
	err := r.db.QueryRow(ctx,
		`SELECT id, kind, name, description, created_at, updated_at FROM material_types WHERE id = $1`, id,
	).Scan(&mt.ID, &mt.Kind, &mt.Name, &mt.Description, &mt.CreatedAt, &mt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return MaterialType{}, ErrNotFound
	}
	return mt, err
}

func (r *repository) CreateMaterialType(ctx context.Context, mt MaterialType) (MaterialType, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO material_types (kind, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		mt.Kind, mt.Name, mt.Description, now,
	).Scan(&mt.ID)
	if err != nil {
		return MaterialType{}, err
	}
	mt.CreatedAt = now
	mt.UpdatedAt = now
	return mt, nil
}

func (r *repository) UpdateMaterialType(ctx context.Context, id int64, mt MaterialType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE material_types SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		mt.Name, mt.Description, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteMaterialType(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM material_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, name, description, created_at, updated_at FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *repository) GetDepartment(ctx context.Context, id int64) (Department, error) {
	var d Department
	err := r.db.QueryRow(ctx,
		`SELECT id, code, name, description, created_at, updated_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

func (r *repository) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (code, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		d.Code, d.Name, d.Description, now,
	).Scan(&d.ID)
	if err != nil {
		return Department{}, err
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	return d, nil
}

func (r *repository) UpdateDepartment(ctx context.Context, id int64, d Department) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE departments SET code = $1, name = $2, description = $3, updated_at = $4 WHERE id = $5`,
		d.Code, d.Name, d.Description, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteDepartment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	lq := newListQuery(
		`SELECT id, name, aluminum_type_id, glass_type_id, handle_type_id, department_id, created_at, updated_at
	          FROM products WHERE 1=1`,
		`SELECT COUNT(*) FROM products WHERE 1=1`)
	if filters.Search != "" {
		lq.Where(`name ILIKE $%d`, "%"+filters.Search+"%")
	}

	var total int
	countQuery, countArgs := lq.Count()
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := lq.Rows(`id`, filters.Limit, filters.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.AluminumTypeID, &p.GlassTypeID, &p.HandleTypeID, &p.DepartmentID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx,
		`SELECT id, name, aluminum_type_id, glass_type_id, handle_type_id, department_id, created_at, updated_at
		 FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.AluminumTypeID, &p.GlassTypeID, &p.HandleTypeID, &p.DepartmentID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *repository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, aluminum_type_id, glass_type_id, handle_type_id, department_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		p.Name, p.AluminumTypeID, p.GlassTypeID, p.HandleTypeID, p.DepartmentID, now,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id int64, p Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, aluminum_type_id = $2, glass_type_id = $3, handle_type_id = $4,
		 department_id = $5, updated_at = $6 WHERE id = $7`,
		p.Name, p.AluminumTypeID, p.GlassTypeID, p.HandleTypeID, p.DepartmentID, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) listDetails(ctx context.Context) ([]ProductDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, width, height, depth, unit_price, created_at, updated_at
		 FROM product_details ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []ProductDetail
	for rows.Next() {
		var d ProductDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Width, &d.Height, &d.Depth, &d.UnitPrice, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *repository) GetProductDetail(ctx context.Context, productID int64) (ProductDetail, error) {
	var d ProductDetail
	err := r.db.QueryRow(ctx,
		`SELECT id, product_id, width, height, depth, unit_price, created_at, updated_at
		 FROM product_details WHERE product_id = $1 ORDER BY id LIMIT 1`, productID,
	).Scan(&d.ID, &d.ProductID, &d.Width, &d.Height, &d.Depth, &d.UnitPrice, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertProductDetail(ctx context.Context, d ProductDetail) (ProductDetail, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO product_details (product_id, width, height, depth, unit_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (product_id)
		 DO UPDATE SET width = $2, height = $3, depth = $4, unit_price = $5, updated_at = $6
		 RETURNING id, created_at`,
		d.ProductID, d.Width, d.Height, d.Depth, d.UnitPrice, now,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return ProductDetail{}, err
	}
	d.UpdatedAt = now
	return d, nil
}

func (r *repository) ListAccessoryTypes(ctx context.Context) ([]AccessoryType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at, updated_at FROM accessory_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []AccessoryType
	for rows.Next() {
		var t AccessoryType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *repository) CreateAccessoryType(ctx context.Context, t AccessoryType) (AccessoryType, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO accessory_types (name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $3) RETURNING id`,
		t.Name, t.Description, now,
	).Scan(&t.ID)
	if err != nil {
		return AccessoryType{}, err
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r *repository) UpdateAccessoryType(ctx context.Context, id int64, t AccessoryType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accessory_types SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		t.Name, t.Description, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteAccessoryType(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accessory_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListAccessories(ctx context.Context, filters ListFilters) ([]Accessory, int, error) {
	lq := newListQuery(
		`SELECT id, type_id, name, unit_price, brand, model, power, size, weight, warranty, origin, description, created_at, updated_at
	          FROM accessories WHERE 1=1`,
		`SELECT COUNT(*) FROM accessories WHERE 1=1`)
	if filters.TypeID != nil {
		lq.Where(`type_id = $%d`, *filters.TypeID)
	}
	if filters.Search != "" {
		lq.Where(`name ILIKE $%d`, "%"+filters.Search+"%")
	}

	var total int
	countQuery, countArgs := lq.Count()
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := lq.Rows(`id`, filters.Limit, filters.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accessories []Accessory
	for rows.Next() {
		var a Accessory
		if err := rows.Scan(&a.ID, &a.TypeID, &a.Name, &a.UnitPrice, &a.Brand, &a.Model, &a.Power, &a.Size,
			&a.Weight, &a.Warranty, &a.Origin, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		accessories = append(accessories, a)
	}
	return accessories, total, rows.Err()
}

func (r *repository) GetAccessory(ctx context.Context, id int64) (Accessory, error) {
	var a Accessory
	err := r.db.QueryRow(ctx,
		`SELECT id, type_id, name, unit_price, brand, model, power, size, weight, warranty, origin, description, created_at, updated_at
		 FROM accessories WHERE id = $1`, id,
	).Scan(&a.ID, &a.TypeID, &a.Name, &a.UnitPrice, &a.Brand, &a.Model, &a.Power, &a.Size,
		&a.Weight, &a.Warranty, &a.Origin, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Accessory{}, ErrNotFound
	}
	return a, err
}

func (r *repository) CreateAccessory(ctx context.Context, a Accessory) (Accessory, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO accessories (type_id, name, unit_price, brand, model, power, size, weight, warranty, origin, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`,
		a.TypeID, a.Name, a.UnitPrice, a.Brand, a.Model, a.Power, a.Size, a.Weight, a.Warranty, a.Origin, a.Description, now,
	).Scan(&a.ID)
	if err != nil {
		return Accessory{}, err
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

func (r *repository) UpdateAccessory(ctx context.Context, id int64, a Accessory) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accessories SET type_id = $1, name = $2, unit_price = $3, brand = $4, model = $5, power = $6,
		 size = $7, weight = $8, warranty = $9, origin = $10, description = $11, updated_at = $12 WHERE id = $13`,
		a.TypeID, a.Name, a.UnitPrice, a.Brand, a.Model, a.Power, a.Size, a.Weight, a.Warranty, a.Origin, a.Description, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteAccessory(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accessories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
