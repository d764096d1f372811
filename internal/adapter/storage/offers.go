package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.AdOfferRepository   = (*AdOffers)(nil)
	_ port.BankOfferRepository = (*BankOffers)(nil)
)

type adOfferRow struct {
	domain.AdOffer
	Files string `db:"filenames"`
}

func (r adOfferRow) toDomain() domain.AdOffer {
	v := r.AdOffer
	v.Filenames = decodeFilenames(r.Files)
	return v
}

type AdOffers struct {
	s Storage
}

func NewAdOffers(s Storage) AdOffers {
	return AdOffers{s}
}

func (r AdOffers) Create(ctx context.Context, v domain.AdOffer) (domain.AdOffer, error) {
	const op = "AdOffers.Create"
	query := `
		INSERT INTO adoffers (
			categoryid, subcategoryid, brandid, productid, status, filenames
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *;`
	row, err := getOne[adOfferRow](ctx, r.s, op, query,
		v.CategoryID, v.SubcategoryID, v.BrandID, v.ProductID, v.Status,
		encodeFilenames(v.Filenames))
	return row.toDomain(), err
}

func (r AdOffers) Get(ctx context.Context, id int64) (domain.AdOffer, error) {
	const op = "AdOffers.Get"
	query := `SELECT * FROM adoffers WHERE id = $1;`
	row, err := getOne[adOfferRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}

func (r AdOffers) List(
	ctx context.Context, f domain.AdOfferFilter,
) ([]domain.AdOffer, error) {
	const op = "AdOffers.List"

	var w where
	w.eq("categoryid", f.CategoryID)
	w.eq("subcategoryid", f.SubcategoryID)
	w.eq("brandid", f.BrandID)
	w.eq("productid", f.ProductID)

	query := "SELECT * FROM adoffers" + w.String() + " ORDER BY id;"
	rows, err := selectAll[adOfferRow](ctx, r.s, op, query, w.args...)
	if err != nil {
		return nil, err
	}
	vs := make([]domain.AdOffer, len(rows))
	for i := range rows {
		vs[i] = rows[i].toDomain()
	}
	return vs, nil
}

func (r AdOffers) Delete(ctx context.Context, id int64) (domain.AdOffer, error) {
	const op = "AdOffers.Delete"
	query := `DELETE FROM adoffers WHERE id = $1 RETURNING *;`
	row, err := getOne[adOfferRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}

type bankOfferRow struct {
	domain.BankOffer
	Files string `db:"filenames"`
}

func (r bankOfferRow) toDomain() domain.BankOffer {
	v := r.BankOffer
	v.Filenames = decodeFilenames(r.Files)
	return v
}

func bankOffersToDomain(rows []bankOfferRow) []domain.BankOffer {
	vs := make([]domain.BankOffer, len(rows))
	for i := range rows {
		vs[i] = rows[i].toDomain()
	}
	return vs
}

type BankOffers struct {
	s Storage
}

func NewBankOffers(s Storage) BankOffers {
	return BankOffers{s}
}

func (r BankOffers) Create(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	const op = "BankOffers.Create"
	query := `
		INSERT INTO bankandotheroffers (
			title, description, offer_type, status, valid_until, filenames
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *;`
	row, err := getOne[bankOfferRow](ctx, r.s, op, query,
		v.Title, v.Description, v.OfferType, v.Status, v.ValidUntil,
		encodeFilenames(v.Filenames))
	return row.toDomain(), err
}

// Update rewrites the offer text fields. A nil Filenames keeps stored files.
func (r BankOffers) Update(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	const op = "BankOffers.Update"
	query := `
		UPDATE bankandotheroffers
		SET title = $2, description = $3, offer_type = $4, status = $5,
			valid_until = $6, filenames = COALESCE($7, filenames),
			updated_at = now()
		WHERE id = $1
		RETURNING *;`
	var files *string
	if v.Filenames != nil {
		s := encodeFilenames(v.Filenames)
		files = &s
	}
	row, err := getOne[bankOfferRow](ctx, r.s, op, query,
		v.ID, v.Title, v.Description, v.OfferType, v.Status, v.ValidUntil, files)
	return row.toDomain(), err
}

func (r BankOffers) Delete(ctx context.Context, id int64) (domain.BankOffer, error) {
	const op = "BankOffers.Delete"
	query := `DELETE FROM bankandotheroffers WHERE id = $1 RETURNING *;`
	row, err := getOne[bankOfferRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}

func (r BankOffers) Get(ctx context.Context, id int64) (domain.BankOffer, error) {
	const op = "BankOffers.Get"
	query := `SELECT * FROM bankandotheroffers WHERE id = $1;`
	row, err := getOne[bankOfferRow](ctx, r.s, op, query, id)
	return row.toDomain(), err
}

func (r BankOffers) List(ctx context.Context) ([]domain.BankOffer, error) {
	const op = "BankOffers.List"
	query := `SELECT * FROM bankandotheroffers ORDER BY created_at DESC;`
	rows, err := selectAll[bankOfferRow](ctx, r.s, op, query)
	if err != nil {
		return nil, err
	}
	return bankOffersToDomain(rows), nil
}

func (r BankOffers) Page(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	const op = "BankOffers.Page"

	var w where
	w.eqString("status", f.Status)
	w.eqString("offer_type", f.Type)

	countQuery := "SELECT count(*) FROM bankandotheroffers" + w.String() + ";"
	total, err := call(ctx, r.s, op, func() (int, error) {
		var n int
		err := r.s.db.GetContext(ctx, &n, countQuery, w.args...)
		return n, err
	})
	if err != nil {
		return domain.BankOfferPage{}, err
	}

	query := fmt.Sprintf(
		"SELECT * FROM bankandotheroffers%s ORDER BY %s LIMIT %d OFFSET %d;",
		w.String(), orderBy(f), f.Limit, f.Offset(),
	)
	rows, err := selectAll[bankOfferRow](ctx, r.s, op, query, w.args...)
	if err != nil {
		return domain.BankOfferPage{}, err
	}

	return domain.BankOfferPage{
		Items:      bankOffersToDomain(rows),
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}, nil
}

// ListActive returns active offers not yet expired on day. Offers without
// valid_until never expire.
func (r BankOffers) ListActive(
	ctx context.Context, day time.Time, f domain.BankOfferFilter,
) ([]domain.BankOffer, error) {
	const op = "BankOffers.ListActive"

	var w where
	w.eqString("status", domain.StatusActive)
	w.eqString("offer_type", f.Type)
	y, m, d := day.Date()
	w.add("(valid_until IS NULL OR valid_until >= $%d)",
		time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	query := fmt.Sprintf(
		"SELECT * FROM bankandotheroffers%s ORDER BY %s;", w.String(), orderBy(f),
	)
	rows, err := selectAll[bankOfferRow](ctx, r.s, op, query, w.args...)
	if err != nil {
		return nil, err
	}
	return bankOffersToDomain(rows), nil
}

// Types returns the distinct non-empty offer types in name order.
func (r BankOffers) Types(ctx context.Context) ([]string, error) {
	const op = "BankOffers.Types"
	query := `
		SELECT DISTINCT offer_type FROM bankandotheroffers
		WHERE offer_type IS NOT NULL AND offer_type <> ''
		ORDER BY offer_type;`
	return selectAll[string](ctx, r.s, op, query)
}

func orderBy(f domain.BankOfferFilter) string {
	col := f.SortBy
	if !slices.Contains(domain.BankOfferSortFields, col) {
		col = "created_at"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id " + dir
}

// where builds a positional AND clause.
type where struct {
	conds []string
	args  []any
}

// add appends a condition. format must hold one %d verb for the
// placeholder index.
func (w *where) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *where) eq(col string, v int64) {
	if v != 0 {
		w.add(col+" = $%d", v)
	}
}

func (w *where) eqString(col, v string) {
	if v != "" {
		w.add(col+" = $%d", v)
	}
}

func (w where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
