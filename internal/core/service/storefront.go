package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// NormalizeBankOfferFilter applies paging defaults and rejects values
// outside the accepted ranges.
func NormalizeBankOfferFilter(f domain.BankOfferFilter) (domain.BankOfferFilter, error) {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = domain.DefaultPageLimit
	}
	if f.SortBy == "" {
		f.SortBy = domain.BankOfferSortFields[0]
	}

	switch {
	case f.Page < 1:
		return f, invalidArg("page must be at least 1")
	case f.Limit < 1 || f.Limit > domain.MaxPageLimit:
		return f, invalidArg("limit must be between 1 and %d", domain.MaxPageLimit)
	case !slices.Contains(domain.BankOfferSortFields, f.SortBy):
		return f, invalidArg("cannot sort by %q", f.SortBy)
	}
	return f, nil
}

// Storefront is the read side shown to shoppers.
type Storefront struct {
	repos      CatalogRepos
	popularity port.PopularityReader
	now        func() time.Time
}

func NewStorefront(repos CatalogRepos, popularity port.PopularityReader) Storefront {
	return Storefront{repos: repos, popularity: popularity, now: time.Now}
}

// Menu returns active categories, each with its active subcategories.
func (s Storefront) Menu(ctx context.Context) ([]domain.MenuCategory, error) {
	const op = "Storefront.Menu"
	return read(ctx, op, func(ctx context.Context) ([]domain.MenuCategory, error) {
		cats, err := s.repos.Categories.ListByStatus(ctx, domain.StatusActive)
		if err != nil {
			return nil, err
		}
		subs, err := s.repos.Subcategories.List(ctx)
		if err != nil {
			return nil, err
		}

		byCategory := make(map[int64][]domain.Subcategory)
		for _, sub := range subs {
			if sub.Status != domain.StatusActive {
				continue
			}
			byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], sub)
		}

		menu := make([]domain.MenuCategory, 0, len(cats))
		for _, c := range cats {
			items := byCategory[c.ID]
			if items == nil {
				items = []domain.Subcategory{}
			}
			menu = append(menu, domain.MenuCategory{Category: c, Subcategories: items})
		}
		return menu, nil
	})
}

func (s Storefront) Banners(ctx context.Context) ([]domain.Banner, error) {
	const op = "Storefront.Banners"
	return read(ctx, op, func(ctx context.Context) ([]domain.Banner, error) {
		return s.repos.Banners.ListByStatus(ctx, domain.StatusShow)
	})
}

func (s Storefront) BankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	const op = "Storefront.BankOffers"
	f, err := NormalizeBankOfferFilter(f)
	if err != nil {
		return domain.BankOfferPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return read(ctx, op, func(ctx context.Context) (domain.BankOfferPage, error) {
		return s.repos.BankOffers.Page(ctx, f)
	})
}

func (s Storefront) ActiveBankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) ([]domain.BankOffer, error) {
	const op = "Storefront.ActiveBankOffers"
	f, err := NormalizeBankOfferFilter(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return read(ctx, op, func(ctx context.Context) ([]domain.BankOffer, error) {
		return s.repos.BankOffers.ListActive(ctx, s.now(), f)
	})
}

// BankOfferTypes lists offer types in use, or the defaults when none are.
func (s Storefront) BankOfferTypes(ctx context.Context) ([]string, error) {
	const op = "Storefront.BankOfferTypes"
	types, err := read(ctx, op, func(ctx context.Context) ([]string, error) {
		return s.repos.BankOffers.Types(ctx)
	})
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return slices.Clone(domain.DefaultBankOfferTypes), nil
	}
	return types, nil
}

func (s Storefront) AdOffers(
	ctx context.Context, f domain.AdOfferFilter,
) ([]domain.AdOffer, error) {
	const op = "Storefront.AdOffers"
	return read(ctx, op, func(ctx context.Context) ([]domain.AdOffer, error) {
		return s.repos.AdOffers.List(ctx, f)
	})
}

// ProductDetails lists details by status; empty status means active.
func (s Storefront) ProductDetails(
	ctx context.Context, status string,
) ([]domain.ProductDetail, error) {
	const op = "Storefront.ProductDetails"
	status = defaultStatus(status, domain.StatusActive)
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductDetail, error) {
		return s.repos.Details.ListByStatus(ctx, status)
	})
}

func (s Storefront) ProductDetailsBySubcategory(
	ctx context.Context, subcategoryID int64,
) ([]domain.ProductDetail, error) {
	const op = "Storefront.ProductDetailsBySubcategory"
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductDetail, error) {
		return s.repos.Details.ListBySubcategory(ctx, subcategoryID)
	})
}

func (s Storefront) ProductDetailsByProduct(
	ctx context.Context, productID int64,
) ([]domain.ProductDetail, error) {
	const op = "Storefront.ProductDetailsByProduct"
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductDetail, error) {
		return s.repos.Details.ListByProduct(ctx, productID)
	})
}

func (s Storefront) Pictures(
	ctx context.Context, detailID int64,
) ([]domain.ProductPictures, error) {
	const op = "Storefront.Pictures"
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductPictures, error) {
		return s.repos.Pictures.ListByDetail(ctx, detailID)
	})
}

func (s Storefront) BrandsBySubcategory(
	ctx context.Context, subcategoryID int64,
) ([]domain.Brand, error) {
	const op = "Storefront.BrandsBySubcategory"
	return read(ctx, op, func(ctx context.Context) ([]domain.Brand, error) {
		return s.repos.Brands.ListBySubcategory(ctx, subcategoryID)
	})
}

// Popularity is the total ordered quantity of a product detail.
func (s Storefront) Popularity(ctx context.Context, detailID int64) (int64, error) {
	const op = "Storefront.Popularity"
	return read(ctx, op, func(ctx context.Context) (int64, error) {
		if _, err := s.repos.Details.Get(ctx, detailID); err != nil {
			return 0, err
		}
		return s.popularity.Popularity(ctx, detailID)
	})
}
