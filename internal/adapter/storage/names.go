package storage

import (
	"context"
	"maps"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

type nameRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type nameTable struct {
	op    string
	query string
}

var (
	categoryNames = nameTable{
		op:    "names.categories",
		query: `SELECT categoryid AS id, categoryname AS name FROM categories WHERE categoryid = ANY($1)`,
	}
	subcategoryNames = nameTable{
		op:    "names.subcategories",
		query: `SELECT subcategoryid AS id, subcategoryname AS name FROM subcategories WHERE subcategoryid = ANY($1)`,
	}
	brandNames = nameTable{
		op:    "names.brands",
		query: `SELECT brandid AS id, brandname AS name FROM brands WHERE brandid = ANY($1)`,
	}
	productNames = nameTable{
		op:    "names.products",
		query: `SELECT productid AS id, productname AS name FROM products WHERE productid = ANY($1)`,
	}
)

// idSet collects distinct non-zero ids.
type idSet map[int64]struct{}

func (s idSet) add(id int64) {
	if id != 0 {
		s[id] = struct{}{}
	}
}

func (s idSet) slice() []int64 {
	return slices.Sorted(maps.Keys(s))
}

// lookupNames resolves display names for ids with one set query.
func (s Storage) lookupNames(
	ctx context.Context, t nameTable, ids idSet,
) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := selectAll[nameRow](ctx, s, t.op, t.query, ids.slice())
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}

type nameRefs struct {
	categories    idSet
	subcategories idSet
	brands        idSet
	products      idSet
}

func newNameRefs() nameRefs {
	return nameRefs{
		categories:    idSet{},
		subcategories: idSet{},
		brands:        idSet{},
		products:      idSet{},
	}
}

func (s Storage) names(ctx context.Context, refs nameRefs) (domain.Names, error) {
	var (
		n   domain.Names
		err error
	)
	if n.Categories, err = s.lookupNames(ctx, categoryNames, refs.categories); err != nil {
		return n, err
	}
	if n.Subcategories, err = s.lookupNames(ctx, subcategoryNames, refs.subcategories); err != nil {
		return n, err
	}
	if n.Brands, err = s.lookupNames(ctx, brandNames, refs.brands); err != nil {
		return n, err
	}
	if n.Products, err = s.lookupNames(ctx, productNames, refs.products); err != nil {
		return n, err
	}
	return n, nil
}
