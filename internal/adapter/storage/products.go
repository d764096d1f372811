package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductRepository = (*Products)(nil)

type Products struct {
	s Storage
}

func NewProducts(s Storage) Products {
	return Products{s}
}

func (r Products) Create(ctx context.Context, v domain.Product) (domain.Product, error) {
	const op = "Products.Create"
	query := `
		INSERT INTO products (
			categoryid, subcategoryid, brandid, productname,
			productdescription, picture, status, user_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *;`
	return r.one(ctx, op, query,
		v.CategoryID, v.SubcategoryID, v.BrandID, v.Name,
		v.Description, v.Picture, v.Status, v.UpdatedBy)
}

func (r Products) Update(ctx context.Context, v domain.Product) (domain.Product, error) {
	const op = "Products.Update"
	query := `
		UPDATE products
		SET categoryid = $2, subcategoryid = $3, brandid = $4, productname = $5,
			productdescription = $6, status = $7, user_admin = $8,
			updated_at = now()
		WHERE productid = $1
		RETURNING *;`
	return r.one(ctx, op, query,
		v.ID, v.CategoryID, v.SubcategoryID, v.BrandID, v.Name,
		v.Description, v.Status, v.UpdatedBy)
}

func (r Products) SetPicture(
	ctx context.Context, id int64, picture, updatedBy string,
) (domain.Product, error) {
	const op = "Products.SetPicture"
	query := `
		UPDATE products
		SET picture = $2, user_admin = $3, updated_at = now()
		WHERE productid = $1
		RETURNING *;`
	return r.one(ctx, op, query, id, picture, updatedBy)
}

func (r Products) Delete(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Products.Delete"
	query := `DELETE FROM products WHERE productid = $1 RETURNING *;`
	return getOne[domain.Product](ctx, r.s, op, query, id)
}

func (r Products) Get(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Products.Get"
	query := `SELECT * FROM products WHERE productid = $1;`
	return r.one(ctx, op, query, id)
}

func (r Products) List(ctx context.Context) ([]domain.Product, error) {
	const op = "Products.List"
	query := `SELECT * FROM products ORDER BY productid;`
	return r.many(ctx, op, query)
}

func (r Products) ListByBrand(
	ctx context.Context, brandID int64,
) ([]domain.Product, error) {
	const op = "Products.ListByBrand"
	query := `SELECT * FROM products WHERE brandid = $1 ORDER BY productname;`
	return r.many(ctx, op, query, brandID)
}

func (r Products) one(
	ctx context.Context, op, query string, args ...any,
) (domain.Product, error) {
	v, err := getOne[domain.Product](ctx, r.s, op, query, args...)
	if err != nil {
		return v, err
	}
	vs, err := r.enrich(ctx, []domain.Product{v})
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return vs[0], nil
}

func (r Products) many(
	ctx context.Context, op, query string, args ...any,
) ([]domain.Product, error) {
	vs, err := selectAll[domain.Product](ctx, r.s, op, query, args...)
	if err != nil {
		return nil, err
	}
	vs, err = r.enrich(ctx, vs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r Products) enrich(
	ctx context.Context, vs []domain.Product,
) ([]domain.Product, error) {
	refs := newNameRefs()
	for _, v := range vs {
		refs.categories.add(v.CategoryID)
		refs.subcategories.add(v.SubcategoryID)
		refs.brands.add(v.BrandID)
	}
	n, err := r.s.names(ctx, refs)
	if err != nil {
		return nil, err
	}
	for i := range vs {
		vs[i].CategoryName = n.Categories[vs[i].CategoryID]
		vs[i].SubcategoryName = n.Subcategories[vs[i].SubcategoryID]
		vs[i].BrandName = n.Brands[vs[i].BrandID]
	}
	return vs, nil
}
