package storage

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductPicturesRepository = (*ProductPictures)(nil)

type picturesRow struct {
	domain.ProductPictures
	Files string `db:"filenames"`
}

func (r picturesRow) toDomain() domain.ProductPictures {
	v := r.ProductPictures
	v.Filenames = decodeFilenames(r.Files)
	return v
}

type ProductPictures struct {
	s Storage
}

func NewProductPictures(s Storage) ProductPictures {
	return ProductPictures{s}
}

func (r ProductPictures) Create(
	ctx context.Context, v domain.ProductPictures,
) (domain.ProductPictures, error) {
	const op = "ProductPictures.Create"
	query := `
		INSERT INTO productpictures (
			categoryid, subcategoryid, brandid, productid, productdetailid,
			filenames, user_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *;`
	row, err := getOne[picturesRow](ctx, r.s, op, query,
		v.CategoryID, v.SubcategoryID, v.BrandID, v.ProductID,
		v.ProductDetailID, encodeFilenames(v.Filenames), v.UpdatedBy)
	return row.toDomain(), err
}

func (r ProductPictures) ListByDetail(
	ctx context.Context, detailID int64,
) ([]domain.ProductPictures, error) {
	const op = "ProductPictures.ListByDetail"
	query := `
		SELECT * FROM productpictures
		WHERE productdetailid = $1
		ORDER BY id;`
	rows, err := selectAll[picturesRow](ctx, r.s, op, query, detailID)
	if err != nil {
		return nil, err
	}
	vs := make([]domain.ProductPictures, len(rows))
	for i := range rows {
		vs[i] = rows[i].toDomain()
	}
	return vs, nil
}

// ReplaceByDetail overwrites the file list of the latest picture set of
// a product detail.
func (r ProductPictures) ReplaceByDetail(
	ctx context.Context, detailID int64, filenames []string, updatedBy string,
) (domain.ProductPictures, error) {
	const op = "ProductPictures.ReplaceByDetail"
	query := `
		UPDATE productpictures
		SET filenames = $2, user_admin = $3, updated_at = now()
		WHERE id = (
			SELECT id FROM productpictures
			WHERE productdetailid = $1
			ORDER BY id DESC
			LIMIT 1
		)
		RETURNING *;`
	row, err := getOne[picturesRow](ctx, r.s, op, query,
		detailID, encodeFilenames(filenames), updatedBy)
	return row.toDomain(), err
}

func (r ProductPictures) Delete(
	ctx context.Context, id int64,
) (domain.ProductPictures, error) {
	const op = "ProductPictures.Delete"
	query := `DELETE FROM productpictures WHERE id = $1 RETURNING *;`
	row, err := getOne[picturesRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}
