package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Service applies master-data validation and serves the cached catalog
// snapshot consumed by the pricing engine.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Snapshot returns the full catalog, served from Redis when warm. Concurrent
// cold loads are collapsed into a single repository query.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	key, err := s.cache.BuildKey(ctx, keySnapshot()...)
	if err != nil {
		return nil, fmt.Errorf("catalog: build cache key: %w", err)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var snap Snapshot
		err := s.cache.FetchJSON(ctx, key, &snap, func(ctx context.Context) (interface{}, error) {
			return s.repo.Snapshot(ctx)
		})
		if err != nil {
			return nil, err
		}
		return &snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: load snapshot: %w", err)
	}
	return v.(*Snapshot), nil
}

// Warm loads the snapshot for its caching side effect. Used by the periodic
// warmup job so the first quote of the day does not pay the cold-load cost.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}

func (s *Service) invalidate(ctx context.Context) {
	_ = s.cache.Bump(ctx)
}

func (s *Service) ListMaterialTypes(ctx context.Context, kind MaterialKind, filters ListFilters) ([]MaterialType, int, error) {
	return s.repo.ListMaterialTypes(ctx, kind, filters)
}

func (s *Service) GetMaterialType(ctx context.Context, id int64) (MaterialType, error) {
	return s.repo.GetMaterialType(ctx, id)
}

func (s *Service) CreateMaterialType(ctx context.Context, mt MaterialType) (MaterialType, error) {
	if err := validateMaterialType(mt); err != nil {
		return MaterialType{}, err
	}
	created, err := s.repo.CreateMaterialType(ctx, mt)
	if err != nil {
		return MaterialType{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateMaterialType(ctx context.Context, id int64, mt MaterialType) error {
	if err := validateMaterialType(mt); err != nil {
		return err
	}
	if err := s.repo.UpdateMaterialType(ctx, id, mt); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteMaterialType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMaterialType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	if strings.TrimSpace(d.Code) == "" {
		return Department{}, errors.New("department code is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return Department{}, errors.New("department name is required")
	}
	created, err := s.repo.CreateDepartment(ctx, d)
	if err != nil {
		return Department{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, d Department) error {
	if strings.TrimSpace(d.Code) == "" {
		return errors.New("department code is required")
	}
	if err := s.repo.UpdateDepartment(ctx, id, d); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.ListProducts(ctx, filters)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, p Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, id, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) GetProductDetail(ctx context.Context, productID int64) (ProductDetail, error) {
	return s.repo.GetProductDetail(ctx, productID)
}

func (s *Service) UpsertProductDetail(ctx context.Context, d ProductDetail) (ProductDetail, error) {
	if d.ProductID <= 0 {
		return ProductDetail{}, errors.New("product id is required")
	}
	if d.Width < 0 || d.Height < 0 || d.Depth < 0 {
		return ProductDetail{}, errors.New("dimensions must not be negative")
	}
	if d.UnitPrice < 0 {
		return ProductDetail{}, errors.New("unit price must not be negative")
	}
	if _, err := s.repo.GetProduct(ctx, d.ProductID); err != nil {
		return ProductDetail{}, fmt.Errorf("verify product: %w", err)
	}
	saved, err := s.repo.UpsertProductDetail(ctx, d)
	if err != nil {
		return ProductDetail{}, err
	}
	s.invalidate(ctx)
	return saved, nil
}

func (s *Service) ListAccessoryTypes(ctx context.Context) ([]AccessoryType, error) {
	return s.repo.ListAccessoryTypes(ctx)
}

func (s *Service) CreateAccessoryType(ctx context.Context, t AccessoryType) (AccessoryType, error) {
	if strings.TrimSpace(t.Name) == "" {
		return AccessoryType{}, errors.New("accessory type name is required")
	}
	created, err := s.repo.CreateAccessoryType(ctx, t)
	if err != nil {
		return AccessoryType{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateAccessoryType(ctx context.Context, id int64, t AccessoryType) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("accessory type name is required")
	}
	if err := s.repo.UpdateAccessoryType(ctx, id, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteAccessoryType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAccessoryType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListAccessories(ctx context.Context, filters ListFilters) ([]Accessory, int, error) {
	return s.repo.ListAccessories(ctx, filters)
}

func (s *Service) GetAccessory(ctx context.Context, id int64) (Accessory, error) {
	return s.repo.GetAccessory(ctx, id)
}

func (s *Service) CreateAccessory(ctx context.Context, a Accessory) (Accessory, error) {
	if err := validateAccessory(a); err != nil {
		return Accessory{}, err
	}
	created, err := s.repo.CreateAccessory(ctx, a)
	if err != nil {
		return Accessory{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateAccessory(ctx context.Context, id int64, a Accessory) error {
	if err := validateAccessory(a); err != nil {
		return err
	}
	if err := s.repo.UpdateAccessory(ctx, id, a); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteAccessory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAccessory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func validateMaterialType(mt MaterialType) error {
	switch mt.Kind {
	case MaterialAluminum, MaterialGlass, MaterialHandle:
	default:
		return fmt.Errorf("unknown material kind %q", mt.Kind)
	}
	if strings.TrimSpace(mt.Name) == "" {
		return errors.New("material type name is required")
	}
	return nil
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.AluminumTypeID <= 0 || p.GlassTypeID <= 0 || p.HandleTypeID <= 0 || p.DepartmentID <= 0 {
		return errors.New("all four material axes are required")
	}
	return nil
}

func validateAccessory(a Accessory) error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("accessory name is required")
	}
	if a.TypeID <= 0 {
		return errors.New("accessory type is required")
	}
	if a.UnitPrice < 0 {
		return errors.New("unit price must not be negative")
	}
	return nil
}
