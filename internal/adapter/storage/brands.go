package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.BrandRepository = (*Brands)(nil)

type Brands struct {
	s Storage
}

func NewBrands(s Storage) Brands {
	return Brands{s}
}

func (r Brands) Create(ctx context.Context, v domain.Brand) (domain.Brand, error) {
	const op = "Brands.Create"
	query := `
		INSERT INTO brands (
			categoryid, subcategoryid, brandname, brandicon, status, user_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *;`
	return r.one(ctx, op, query,
		v.CategoryID, v.SubcategoryID, v.Name, v.Icon, v.Status, v.UpdatedBy)
}

func (r Brands) Update(ctx context.Context, v domain.Brand) (domain.Brand, error) {
	const op = "Brands.Update"
	query := `
		UPDATE brands
		SET categoryid = $2, subcategoryid = $3, brandname = $4, status = $5,
			user_admin = $6, updated_at = now()
		WHERE brandid = $1
		RETURNING *;`
	return r.one(ctx, op, query,
		v.ID, v.CategoryID, v.SubcategoryID, v.Name, v.Status, v.UpdatedBy)
}

func (r Brands) SetIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Brand, error) {
	const op = "Brands.SetIcon"
	query := `
		UPDATE brands
		SET brandicon = $2, user_admin = $3, updated_at = now()
		WHERE brandid = $1
		RETURNING *;`
	return r.one(ctx, op, query, id, icon, updatedBy)
}

func (r Brands) Delete(ctx context.Context, id int64) (domain.Brand, error) {
	const op = "Brands.Delete"
	query := `DELETE FROM brands WHERE brandid = $1 RETURNING *;`
	return getOne[domain.Brand](ctx, r.s, op, query, id)
}

func (r Brands) Get(ctx context.Context, id int64) (domain.Brand, error) {
	const op = "Brands.Get"
	query := `SELECT * FROM brands WHERE brandid = $1;`
	return r.one(ctx, op, query, id)
}

func (r Brands) List(ctx context.Context) ([]domain.Brand, error) {
	const op = "Brands.List"
	query := `SELECT * FROM brands ORDER BY brandid;`
	return r.many(ctx, op, query)
}

func (r Brands) ListBySubcategory(
	ctx context.Context, subcategoryID int64,
) ([]domain.Brand, error) {
	const op = "Brands.ListBySubcategory"
	query := `SELECT * FROM brands WHERE subcategoryid = $1 ORDER BY brandname;`
	return r.many(ctx, op, query, subcategoryID)
}

func (r Brands) one(
	ctx context.Context, op, query string, args ...any,
) (domain.Brand, error) {
	v, err := getOne[domain.Brand](ctx, r.s, op, query, args...)
	if err != nil {
		return v, err
	}
	vs, err := r.enrich(ctx, []domain.Brand{v})
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return vs[0], nil
}

func (r Brands) many(
	ctx context.Context, op, query string, args ...any,
) ([]domain.Brand, error) {
	vs, err := selectAll[domain.Brand](ctx, r.s, op, query, args...)
	if err != nil {
		return nil, err
	}
	vs, err = r.enrich(ctx, vs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r Brands) enrich(
	ctx context.Context, vs []domain.Brand,
) ([]domain.Brand, error) {
	refs := newNameRefs()
	for _, v := range vs {
		refs.categories.add(v.CategoryID)
		refs.subcategories.add(v.SubcategoryID)
	}
	n, err := r.s.names(ctx, refs)
	if err != nil {
		return nil, err
	}
	for i := range vs {
		vs[i].CategoryName = n.Categories[vs[i].CategoryID]
		vs[i].SubcategoryName = n.Subcategories[vs[i].SubcategoryID]
	}
	return vs, nil
}
