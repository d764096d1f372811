package storage

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.BannerRepository = (*Banners)(nil)

type bannerRow struct {
	domain.Banner
	Files string `db:"filenames"`
}

func (r bannerRow) toDomain() domain.Banner {
	v := r.Banner
	v.Filenames = decodeFilenames(r.Files)
	return v
}

func bannersToDomain(rows []bannerRow) []domain.Banner {
	vs := make([]domain.Banner, len(rows))
	for i := range rows {
		vs[i] = rows[i].toDomain()
	}
	return vs
}

type Banners struct {
	s Storage
}

func NewBanners(s Storage) Banners {
	return Banners{s}
}

func (r Banners) Create(ctx context.Context, v domain.Banner) (domain.Banner, error) {
	const op = "Banners.Create"
	query := `
		INSERT INTO mainbanner (title, description, status, filenames)
		VALUES ($1, $2, $3, $4)
		RETURNING *;`
	row, err := getOne[bannerRow](ctx, r.s, op, query,
		v.Title, v.Description, v.Status, encodeFilenames(v.Filenames))
	return row.toDomain(), err
}

func (r Banners) List(ctx context.Context) ([]domain.Banner, error) {
	const op = "Banners.List"
	query := `SELECT * FROM mainbanner ORDER BY created_at DESC;`
	rows, err := selectAll[bannerRow](ctx, r.s, op, query)
	if err != nil {
		return nil, err
	}
	return bannersToDomain(rows), nil
}

func (r Banners) ListByStatus(
	ctx context.Context, status string,
) ([]domain.Banner, error) {
	const op = "Banners.ListByStatus"
	query := `SELECT * FROM mainbanner WHERE status = $1 ORDER BY created_at;`
	rows, err := selectAll[bannerRow](ctx, r.s, op, query, status)
	if err != nil {
		return nil, err
	}
	return bannersToDomain(rows), nil
}

func (r Banners) Delete(ctx context.Context, id int64) (domain.Banner, error) {
	const op = "Banners.Delete"
	query := `DELETE FROM mainbanner WHERE id = $1 RETURNING *;`
	row, err := getOne[bannerRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}
