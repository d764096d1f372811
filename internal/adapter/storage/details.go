package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductDetailRepository = (*ProductDetails)(nil)

type ProductDetails struct {
	s Storage
}

func NewProductDetails(s Storage) ProductDetails {
	return ProductDetails{s}
}

func (r ProductDetails) Create(
	ctx context.Context, v domain.ProductDetail,
) (domain.ProductDetail, error) {
	const op = "ProductDetails.Create"
	query := `
		INSERT INTO productdetails (
			categoryid, subcategoryid, brandid, productid, productdetailname,
			weight, weighttype, packagingtype, noofqty, stock,
			price, offerprice, offertype, productstatus,
			productdetaildescription, picture, user_admin
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17
		)
		RETURNING *;`
	return r.one(ctx, op, query,
		v.CategoryID, v.SubcategoryID, v.BrandID, v.ProductID, v.Name,
		v.Weight, v.WeightType, v.PackagingType, v.Quantity, v.Stock,
		v.Price, v.OfferPrice, v.OfferType, v.Status,
		v.Description, v.Picture, v.UpdatedBy)
}

func (r ProductDetails) Update(
	ctx context.Context, v domain.ProductDetail,
) (domain.ProductDetail, error) {
	const op = "ProductDetails.Update"
	query := `
		UPDATE productdetails
		SET categoryid = $2, subcategoryid = $3, brandid = $4, productid = $5,
			productdetailname = $6, weight = $7, weighttype = $8,
			packagingtype = $9, noofqty = $10, stock = $11, price = $12,
			offerprice = $13, offertype = $14, productstatus = $15,
			productdetaildescription = $16, user_admin = $17,
			updated_at = now()
		WHERE productdetailid = $1
		RETURNING *;`
	return r.one(ctx, op, query,
		v.ID, v.CategoryID, v.SubcategoryID, v.BrandID, v.ProductID,
		v.Name, v.Weight, v.WeightType, v.PackagingType, v.Quantity,
		v.Stock, v.Price, v.OfferPrice, v.OfferType, v.Status,
		v.Description, v.UpdatedBy)
}

func (r ProductDetails) SetPicture(
	ctx context.Context, id int64, picture, updatedBy string,
) (domain.ProductDetail, error) {
	const op = "ProductDetails.SetPicture"
	query := `
		UPDATE productdetails
		SET picture = $2, user_admin = $3, updated_at = now()
		WHERE productdetailid = $1
		RETURNING *;`
	return r.one(ctx, op, query, id, picture, updatedBy)
}

func (r ProductDetails) Delete(
	ctx context.Context, id int64,
) (domain.ProductDetail, error) {
	const op = "ProductDetails.Delete"
	query := `DELETE FROM productdetails WHERE productdetailid = $1 RETURNING *;`
	return getOne[domain.ProductDetail](ctx, r.s, op, query, id)
}

func (r ProductDetails) Get(
	ctx context.Context, id int64,
) (domain.ProductDetail, error) {
	const op = "ProductDetails.Get"
	query := `SELECT * FROM productdetails WHERE productdetailid = $1;`
	return r.one(ctx, op, query, id)
}

func (r ProductDetails) List(ctx context.Context) ([]domain.ProductDetail, error) {
	const op = "ProductDetails.List"
	query := `SELECT * FROM productdetails ORDER BY productdetailid;`
	return r.many(ctx, op, query)
}

func (r ProductDetails) ListByProduct(
	ctx context.Context, productID int64,
) ([]domain.ProductDetail, error) {
	const op = "ProductDetails.ListByProduct"
	query := `
		SELECT * FROM productdetails
		WHERE productid = $1
		ORDER BY productdetailid;`
	return r.many(ctx, op, query, productID)
}

func (r ProductDetails) ListBySubcategory(
	ctx context.Context, subcategoryID int64,
) ([]domain.ProductDetail, error) {
	const op = "ProductDetails.ListBySubcategory"
	query := `
		SELECT * FROM productdetails
		WHERE subcategoryid = $1
		ORDER BY productdetailid;`
	return r.many(ctx, op, query, subcategoryID)
}

func (r ProductDetails) ListByStatus(
	ctx context.Context, status string,
) ([]domain.ProductDetail, error) {
	const op = "ProductDetails.ListByStatus"
	query := `
		SELECT * FROM productdetails
		WHERE productstatus = $1
		ORDER BY productdetailid;`
	return r.many(ctx, op, query, status)
}

func (r ProductDetails) one(
	ctx context.Context, op, query string, args ...any,
) (domain.ProductDetail, error) {
	v, err := getOne[domain.ProductDetail](ctx, r.s, op, query, args...)
	if err != nil {
		return v, err
	}
	vs, err := r.enrich(ctx, []domain.ProductDetail{v})
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return vs[0], nil
}

func (r ProductDetails) many(
	ctx context.Context, op, query string, args ...any,
) ([]domain.ProductDetail, error) {
	vs, err := selectAll[domain.ProductDetail](ctx, r.s, op, query, args...)
	if err != nil {
		return nil, err
	}
	vs, err = r.enrich(ctx, vs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r ProductDetails) enrich(
	ctx context.Context, vs []domain.ProductDetail,
) ([]domain.ProductDetail, error) {
	refs := newNameRefs()
	for _, v := range vs {
		refs.categories.add(v.CategoryID)
		refs.subcategories.add(v.SubcategoryID)
		refs.brands.add(v.BrandID)
		refs.products.add(v.ProductID)
	}
	n, err := r.s.names(ctx, refs)
	if err != nil {
		return nil, err
	}
	for i := range vs {
		vs[i].CategoryName = n.Categories[vs[i].CategoryID]
		vs[i].SubcategoryName = n.Subcategories[vs[i].SubcategoryID]
		vs[i].BrandName = n.Brands[vs[i].BrandID]
		vs[i].ProductName = n.Products[vs[i].ProductID]
	}
	return vs, nil
}
