package storage

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CategoryRepository = (*Categories)(nil)

type Categories struct {
	s Storage
}

func NewCategories(s Storage) Categories {
	return Categories{s}
}

func (r Categories) Create(
	ctx context.Context, v domain.Category,
) (domain.Category, error) {
	const op = "Categories.Create"
	query := `
		INSERT INTO categories (categoryname, categoryicon, status, user_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING *;`
	return getOne[domain.Category](ctx, r.s, op, query,
		v.Name, v.Icon, v.Status, v.UpdatedBy)
}

func (r Categories) Update(
	ctx context.Context, v domain.Category,
) (domain.Category, error) {
	const op = "Categories.Update"
	query := `
		UPDATE categories
		SET categoryname = $2, status = $3, user_admin = $4, updated_at = now()
		WHERE categoryid = $1
		RETURNING *;`
	return getOne[domain.Category](ctx, r.s, op, query,
		v.ID, v.Name, v.Status, v.UpdatedBy)
}

func (r Categories) SetIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Category, error) {
	const op = "Categories.SetIcon"
	query := `
		UPDATE categories
		SET categoryicon = $2, user_admin = $3, updated_at = now()
		WHERE categoryid = $1
		RETURNING *;`
	return getOne[domain.Category](ctx, r.s, op, query, id, icon, updatedBy)
}

func (r Categories) Delete(ctx context.Context, id int64) (domain.Category, error) {
	const op = "Categories.Delete"
	query := `DELETE FROM categories WHERE categoryid = $1 RETURNING *;`
	return getOne[domain.Category](ctx, r.s, op, query, id)
}

func (r Categories) Get(ctx context.Context, id int64) (domain.Category, error) {
	const op = "Categories.Get"
	query := `SELECT * FROM categories WHERE categoryid = $1;`
	return getOne[domain.Category](ctx, r.s, op, query, id)
}

func (r Categories) List(ctx context.Context) ([]domain.Category, error) {
	const op = "Categories.List"
	query := `SELECT * FROM categories ORDER BY categoryid;`
	return selectAll[domain.Category](ctx, r.s, op, query)
}

func (r Categories) ListByStatus(
	ctx context.Context, status string,
) ([]domain.Category, error) {
	const op = "Categories.ListByStatus"
	query := `SELECT * FROM categories WHERE status = $1 ORDER BY categoryname;`
	return selectAll[domain.Category](ctx, r.s, op, query, status)
}
