package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.SubcategoryRepository = (*Subcategories)(nil)

type Subcategories struct {
	s Storage
}

func NewSubcategories(s Storage) Subcategories {
	return Subcategories{s}
}

func (r Subcategories) Create(
	ctx context.Context, v domain.Subcategory,
) (domain.Subcategory, error) {
	const op = "Subcategories.Create"
	query := `
		INSERT INTO subcategories (
			categoryid, subcategoryname, subcategoryicon, status, user_admin
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *;`
	return r.one(ctx, op, query,
		v.CategoryID, v.Name, v.Icon, v.Status, v.UpdatedBy)
}

func (r Subcategories) Update(
	ctx context.Context, v domain.Subcategory,
) (domain.Subcategory, error) {
	const op = "Subcategories.Update"
	query := `
		UPDATE subcategories
		SET categoryid = $2, subcategoryname = $3, status = $4,
			user_admin = $5, updated_at = now()
		WHERE subcategoryid = $1
		RETURNING *;`
	return r.one(ctx, op, query,
		v.ID, v.CategoryID, v.Name, v.Status, v.UpdatedBy)
}

func (r Subcategories) SetIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Subcategory, error) {
	const op = "Subcategories.SetIcon"
	query := `
		UPDATE subcategories
		SET subcategoryicon = $2, user_admin = $3, updated_at = now()
		WHERE subcategoryid = $1
		RETURNING *;`
	return r.one(ctx, op, query, id, icon, updatedBy)
}

func (r Subcategories) Delete(
	ctx context.Context, id int64,
) (domain.Subcategory, error) {
	const op = "Subcategories.Delete"
	query := `DELETE FROM subcategories WHERE subcategoryid = $1 RETURNING *;`
	return getOne[domain.Subcategory](ctx, r.s, op, query, id)
}

func (r Subcategories) Get(ctx context.Context, id int64) (domain.Subcategory, error) {
	const op = "Subcategories.Get"
	query := `SELECT * FROM subcategories WHERE subcategoryid = $1;`
	return r.one(ctx, op, query, id)
}

func (r Subcategories) List(ctx context.Context) ([]domain.Subcategory, error) {
	const op = "Subcategories.List"
	query := `SELECT * FROM subcategories ORDER BY subcategoryid;`
	return r.many(ctx, op, query)
}

func (r Subcategories) ListByCategory(
	ctx context.Context, categoryID int64,
) ([]domain.Subcategory, error) {
	const op = "Subcategories.ListByCategory"
	query := `
		SELECT * FROM subcategories
		WHERE categoryid = $1
		ORDER BY subcategoryname;`
	return r.many(ctx, op, query, categoryID)
}

func (r Subcategories) one(
	ctx context.Context, op, query string, args ...any,
) (domain.Subcategory, error) {
	v, err := getOne[domain.Subcategory](ctx, r.s, op, query, args...)
	if err != nil {
		return v, err
	}
	vs, err := r.enrich(ctx, []domain.Subcategory{v})
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return vs[0], nil
}

func (r Subcategories) many(
	ctx context.Context, op, query string, args ...any,
) ([]domain.Subcategory, error) {
	vs, err := selectAll[domain.Subcategory](ctx, r.s, op, query, args...)
	if err != nil {
		return nil, err
	}
	vs, err = r.enrich(ctx, vs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r Subcategories) enrich(
	ctx context.Context, vs []domain.Subcategory,
) ([]domain.Subcategory, error) {
	refs := newNameRefs()
	for _, v := range vs {
		refs.categories.add(v.CategoryID)
	}
	n, err := r.s.names(ctx, refs)
	if err != nil {
		return nil, err
	}
	for i := range vs {
		vs[i].CategoryName = n.Categories[vs[i].CategoryID]
	}
	return vs, nil
}
