package service

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	EntityCategory        = "category"
	EntitySubcategory     = "subcategory"
	EntityBrand           = "brand"
	EntityProduct         = "product"
	EntityProductDetail   = "product_detail"
	EntityProductPictures = "product_pictures"
	EntityBanner          = "banner"
	EntityAdOffer         = "ad_offer"
	EntityBankOffer       = "bank_offer"
)

type CatalogRepos struct {
	Categories    port.CategoryRepository
	Subcategories port.SubcategoryRepository
	Brands        port.BrandRepository
	Products      port.ProductRepository
	Details       port.ProductDetailRepository
	Pictures      port.ProductPicturesRepository
	Banners       port.BannerRepository
	AdOffers      port.AdOfferRepository
	BankOffers    port.BankOfferRepository
}

// Catalog serves admin writes and reads. Every successful write emits a
// catalog event; publish failures are logged only.
type Catalog struct {
	repos  CatalogRepos
	events port.CatalogEventPublisher
	now    func() time.Time
}

func NewCatalog(repos CatalogRepos, events port.CatalogEventPublisher) Catalog {
	return Catalog{repos: repos, events: events, now: time.Now}
}

func write[T any](
	ctx context.Context,
	c Catalog,
	op, entity, action string,
	id func(T) int64,
	fn func(context.Context) (T, error),
) (T, error) {
	v, err := read(ctx, op, fn)
	if err != nil {
		return v, err
	}

	evt := domain.CatalogEvent{
		Entity:     entity,
		EntityID:   id(v),
		Action:     action,
		OccurredAt: c.now(),
	}
	err = c.events.PublishCatalogEvent(ctx, evt)
	logPublishErr(op, err, "entity", entity, "id", evt.EntityID)
	return v, nil
}

func defaultStatus(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func categoryID(v domain.Category) int64             { return v.ID }
func subcategoryID(v domain.Subcategory) int64       { return v.ID }
func brandID(v domain.Brand) int64                   { return v.ID }
func productID(v domain.Product) int64               { return v.ID }
func productDetailID(v domain.ProductDetail) int64   { return v.ID }
func picturesID(v domain.ProductPictures) int64      { return v.ID }
func bannerID(v domain.Banner) int64                 { return v.ID }
func adOfferID(v domain.AdOffer) int64               { return v.ID }
func bankOfferID(v domain.BankOffer) int64           { return v.ID }

// Categories

func (c Catalog) CreateCategory(
	ctx context.Context, v domain.Category,
) (domain.Category, error) {
	const op = "Catalog.CreateCategory"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityCategory, domain.ActionCreated, categoryID,
		func(ctx context.Context) (domain.Category, error) {
			return c.repos.Categories.Create(ctx, v)
		})
}

func (c Catalog) UpdateCategory(
	ctx context.Context, v domain.Category,
) (domain.Category, error) {
	const op = "Catalog.UpdateCategory"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityCategory, domain.ActionUpdated, categoryID,
		func(ctx context.Context) (domain.Category, error) {
			return c.repos.Categories.Update(ctx, v)
		})
}

func (c Catalog) SetCategoryIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Category, error) {
	const op = "Catalog.SetCategoryIcon"
	return write(ctx, c, op, EntityCategory, domain.ActionUpdated, categoryID,
		func(ctx context.Context) (domain.Category, error) {
			return c.repos.Categories.SetIcon(ctx, id, icon, updatedBy)
		})
}

func (c Catalog) DeleteCategory(ctx context.Context, id int64) (domain.Category, error) {
	const op = "Catalog.DeleteCategory"
	return write(ctx, c, op, EntityCategory, domain.ActionDeleted, categoryID,
		func(ctx context.Context) (domain.Category, error) {
			return c.repos.Categories.Delete(ctx, id)
		})
}

func (c Catalog) Category(ctx context.Context, id int64) (domain.Category, error) {
	const op = "Catalog.Category"
	return read(ctx, op, func(ctx context.Context) (domain.Category, error) {
		return c.repos.Categories.Get(ctx, id)
	})
}

func (c Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "Catalog.Categories"
	return read(ctx, op, c.repos.Categories.List)
}

// Subcategories

func (c Catalog) CreateSubcategory(
	ctx context.Context, v domain.Subcategory,
) (domain.Subcategory, error) {
	const op = "Catalog.CreateSubcategory"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntitySubcategory, domain.ActionCreated, subcategoryID,
		func(ctx context.Context) (domain.Subcategory, error) {
			return c.repos.Subcategories.Create(ctx, v)
		})
}

func (c Catalog) UpdateSubcategory(
	ctx context.Context, v domain.Subcategory,
) (domain.Subcategory, error) {
	const op = "Catalog.UpdateSubcategory"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntitySubcategory, domain.ActionUpdated, subcategoryID,
		func(ctx context.Context) (domain.Subcategory, error) {
			return c.repos.Subcategories.Update(ctx, v)
		})
}

func (c Catalog) SetSubcategoryIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Subcategory, error) {
	const op = "Catalog.SetSubcategoryIcon"
	return write(ctx, c, op, EntitySubcategory, domain.ActionUpdated, subcategoryID,
		func(ctx context.Context) (domain.Subcategory, error) {
			return c.repos.Subcategories.SetIcon(ctx, id, icon, updatedBy)
		})
}

func (c Catalog) DeleteSubcategory(
	ctx context.Context, id int64,
) (domain.Subcategory, error) {
	const op = "Catalog.DeleteSubcategory"
	return write(ctx, c, op, EntitySubcategory, domain.ActionDeleted, subcategoryID,
		func(ctx context.Context) (domain.Subcategory, error) {
			return c.repos.Subcategories.Delete(ctx, id)
		})
}

func (c Catalog) Subcategory(ctx context.Context, id int64) (domain.Subcategory, error) {
	const op = "Catalog.Subcategory"
	return read(ctx, op, func(ctx context.Context) (domain.Subcategory, error) {
		return c.repos.Subcategories.Get(ctx, id)
	})
}

func (c Catalog) Subcategories(ctx context.Context) ([]domain.Subcategory, error) {
	const op = "Catalog.Subcategories"
	return read(ctx, op, c.repos.Subcategories.List)
}

func (c Catalog) SubcategoriesByCategory(
	ctx context.Context, categoryID int64,
) ([]domain.Subcategory, error) {
	const op = "Catalog.SubcategoriesByCategory"
	return read(ctx, op, func(ctx context.Context) ([]domain.Subcategory, error) {
		return c.repos.Subcategories.ListByCategory(ctx, categoryID)
	})
}

// Brands

func (c Catalog) CreateBrand(ctx context.Context, v domain.Brand) (domain.Brand, error) {
	const op = "Catalog.CreateBrand"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityBrand, domain.ActionCreated, brandID,
		func(ctx context.Context) (domain.Brand, error) {
			return c.repos.Brands.Create(ctx, v)
		})
}

func (c Catalog) UpdateBrand(ctx context.Context, v domain.Brand) (domain.Brand, error) {
	const op = "Catalog.UpdateBrand"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityBrand, domain.ActionUpdated, brandID,
		func(ctx context.Context) (domain.Brand, error) {
			return c.repos.Brands.Update(ctx, v)
		})
}

func (c Catalog) SetBrandIcon(
	ctx context.Context, id int64, icon, updatedBy string,
) (domain.Brand, error) {
	const op = "Catalog.SetBrandIcon"
	return write(ctx, c, op, EntityBrand, domain.ActionUpdated, brandID,
		func(ctx context.Context) (domain.Brand, error) {
			return c.repos.Brands.SetIcon(ctx, id, icon, updatedBy)
		})
}

func (c Catalog) DeleteBrand(ctx context.Context, id int64) (domain.Brand, error) {
	const op = "Catalog.DeleteBrand"
	return write(ctx, c, op, EntityBrand, domain.ActionDeleted, brandID,
		func(ctx context.Context) (domain.Brand, error) {
			return c.repos.Brands.Delete(ctx, id)
		})
}

func (c Catalog) Brand(ctx context.Context, id int64) (domain.Brand, error) {
	const op = "Catalog.Brand"
	return read(ctx, op, func(ctx context.Context) (domain.Brand, error) {
		return c.repos.Brands.Get(ctx, id)
	})
}

func (c Catalog) Brands(ctx context.Context) ([]domain.Brand, error) {
	const op = "Catalog.Brands"
	return read(ctx, op, c.repos.Brands.List)
}

func (c Catalog) BrandsBySubcategory(
	ctx context.Context, subcategoryID int64,
) ([]domain.Brand, error) {
	const op = "Catalog.BrandsBySubcategory"
	return read(ctx, op, func(ctx context.Context) ([]domain.Brand, error) {
		return c.repos.Brands.ListBySubcategory(ctx, subcategoryID)
	})
}

// Products

func (c Catalog) CreateProduct(
	ctx context.Context, v domain.Product,
) (domain.Product, error) {
	const op = "Catalog.CreateProduct"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityProduct, domain.ActionCreated, productID,
		func(ctx context.Context) (domain.Product, error) {
			return c.repos.Products.Create(ctx, v)
		})
}

func (c Catalog) UpdateProduct(
	ctx context.Context, v domain.Product,
) (domain.Product, error) {
	const op = "Catalog.UpdateProduct"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityProduct, domain.ActionUpdated, productID,
		func(ctx context.Context) (domain.Product, error) {
			return c.repos.Products.Update(ctx, v)
		})
}

func (c Catalog) SetProductPicture(
	ctx context.Context, id int64, picture, updatedBy string,
) (domain.Product, error) {
	const op = "Catalog.SetProductPicture"
	return write(ctx, c, op, EntityProduct, domain.ActionUpdated, productID,
		func(ctx context.Context) (domain.Product, error) {
			return c.repos.Products.SetPicture(ctx, id, picture, updatedBy)
		})
}

func (c Catalog) DeleteProduct(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Catalog.DeleteProduct"
	return write(ctx, c, op, EntityProduct, domain.ActionDeleted, productID,
		func(ctx context.Context) (domain.Product, error) {
			return c.repos.Products.Delete(ctx, id)
		})
}

func (c Catalog) Product(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Catalog.Product"
	return read(ctx, op, func(ctx context.Context) (domain.Product, error) {
		return c.repos.Products.Get(ctx, id)
	})
}

func (c Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.Products"
	return read(ctx, op, c.repos.Products.List)
}

func (c Catalog) ProductsByBrand(
	ctx context.Context, brandID int64,
) ([]domain.Product, error) {
	const op = "Catalog.ProductsByBrand"
	return read(ctx, op, func(ctx context.Context) ([]domain.Product, error) {
		return c.repos.Products.ListByBrand(ctx, brandID)
	})
}

// Product details

func validateDetail(v domain.ProductDetail) error {
	switch {
	case v.Price < 0 || v.OfferPrice < 0:
		return invalidArg("price must not be negative")
	case v.OfferPrice > v.Price:
		return invalidArg("offer price %.2f exceeds price %.2f", v.OfferPrice, v.Price)
	case v.Stock < 0:
		return invalidArg("stock must not be negative")
	}
	return nil
}

func (c Catalog) CreateProductDetail(
	ctx context.Context, v domain.ProductDetail,
) (domain.ProductDetail, error) {
	const op = "Catalog.CreateProductDetail"
	if err := validateDetail(v); err != nil {
		return domain.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityProductDetail, domain.ActionCreated, productDetailID,
		func(ctx context.Context) (domain.ProductDetail, error) {
			return c.repos.Details.Create(ctx, v)
		})
}

func (c Catalog) UpdateProductDetail(
	ctx context.Context, v domain.ProductDetail,
) (domain.ProductDetail, error) {
	const op = "Catalog.UpdateProductDetail"
	if err := validateDetail(v); err != nil {
		return domain.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityProductDetail, domain.ActionUpdated, productDetailID,
		func(ctx context.Context) (domain.ProductDetail, error) {
			return c.repos.Details.Update(ctx, v)
		})
}

func (c Catalog) SetProductDetailPicture(
	ctx context.Context, id int64, picture, updatedBy string,
) (domain.ProductDetail, error) {
	const op = "Catalog.SetProductDetailPicture"
	return write(ctx, c, op, EntityProductDetail, domain.ActionUpdated, productDetailID,
		func(ctx context.Context) (domain.ProductDetail, error) {
			return c.repos.Details.SetPicture(ctx, id, picture, updatedBy)
		})
}

func (c Catalog) DeleteProductDetail(
	ctx context.Context, id int64,
) (domain.ProductDetail, error) {
	const op = "Catalog.DeleteProductDetail"
	return write(ctx, c, op, EntityProductDetail, domain.ActionDeleted, productDetailID,
		func(ctx context.Context) (domain.ProductDetail, error) {
			return c.repos.Details.Delete(ctx, id)
		})
}

func (c Catalog) ProductDetail(
	ctx context.Context, id int64,
) (domain.ProductDetail, error) {
	const op = "Catalog.ProductDetail"
	return read(ctx, op, func(ctx context.Context) (domain.ProductDetail, error) {
		return c.repos.Details.Get(ctx, id)
	})
}

func (c Catalog) ProductDetails(ctx context.Context) ([]domain.ProductDetail, error) {
	const op = "Catalog.ProductDetails"
	return read(ctx, op, c.repos.Details.List)
}

func (c Catalog) ProductDetailsByProduct(
	ctx context.Context, productID int64,
) ([]domain.ProductDetail, error) {
	const op = "Catalog.ProductDetailsByProduct"
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductDetail, error) {
		return c.repos.Details.ListByProduct(ctx, productID)
	})
}

// Product pictures

// AddPictures attaches a picture set to a product detail, copying its
// catalog references.
func (c Catalog) AddPictures(
	ctx context.Context, detailID int64, filenames []string, updatedBy string,
) (domain.ProductPictures, error) {
	const op = "Catalog.AddPictures"
	if len(filenames) == 0 {
		return domain.ProductPictures{}, fmt.Errorf("%s: %w", op,
			invalidArg("at least one picture is required"))
	}
	return write(ctx, c, op, EntityProductPictures, domain.ActionCreated, picturesID,
		func(ctx context.Context) (domain.ProductPictures, error) {
			d, err := c.repos.Details.Get(ctx, detailID)
			if err != nil {
				return domain.ProductPictures{}, err
			}
			return c.repos.Pictures.Create(ctx, domain.ProductPictures{
				CategoryID:      d.CategoryID,
				SubcategoryID:   d.SubcategoryID,
				BrandID:         d.BrandID,
				ProductID:       d.ProductID,
				ProductDetailID: d.ID,
				Filenames:       filenames,
				UpdatedBy:       updatedBy,
			})
		})
}

func (c Catalog) ReplacePictures(
	ctx context.Context, detailID int64, filenames []string, updatedBy string,
) (domain.ProductPictures, error) {
	const op = "Catalog.ReplacePictures"
	if len(filenames) == 0 {
		return domain.ProductPictures{}, fmt.Errorf("%s: %w", op,
			invalidArg("at least one picture is required"))
	}
	return write(ctx, c, op, EntityProductPictures, domain.ActionUpdated, picturesID,
		func(ctx context.Context) (domain.ProductPictures, error) {
			return c.repos.Pictures.ReplaceByDetail(ctx, detailID, filenames, updatedBy)
		})
}

func (c Catalog) DeletePictures(
	ctx context.Context, id int64,
) (domain.ProductPictures, error) {
	const op = "Catalog.DeletePictures"
	return write(ctx, c, op, EntityProductPictures, domain.ActionDeleted, picturesID,
		func(ctx context.Context) (domain.ProductPictures, error) {
			return c.repos.Pictures.Delete(ctx, id)
		})
}

func (c Catalog) Pictures(
	ctx context.Context, detailID int64,
) ([]domain.ProductPictures, error) {
	const op = "Catalog.Pictures"
	return read(ctx, op, func(ctx context.Context) ([]domain.ProductPictures, error) {
		return c.repos.Pictures.ListByDetail(ctx, detailID)
	})
}

// Banners

func (c Catalog) CreateBanner(ctx context.Context, v domain.Banner) (domain.Banner, error) {
	const op = "Catalog.CreateBanner"
	v.Status = defaultStatus(v.Status, domain.StatusShow)
	return write(ctx, c, op, EntityBanner, domain.ActionCreated, bannerID,
		func(ctx context.Context) (domain.Banner, error) {
			return c.repos.Banners.Create(ctx, v)
		})
}

func (c Catalog) DeleteBanner(ctx context.Context, id int64) (domain.Banner, error) {
	const op = "Catalog.DeleteBanner"
	return write(ctx, c, op, EntityBanner, domain.ActionDeleted, bannerID,
		func(ctx context.Context) (domain.Banner, error) {
			return c.repos.Banners.Delete(ctx, id)
		})
}

func (c Catalog) Banners(ctx context.Context) ([]domain.Banner, error) {
	const op = "Catalog.Banners"
	return read(ctx, op, c.repos.Banners.List)
}

// Ad offers

func (c Catalog) CreateAdOffer(
	ctx context.Context, v domain.AdOffer,
) (domain.AdOffer, error) {
	const op = "Catalog.CreateAdOffer"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityAdOffer, domain.ActionCreated, adOfferID,
		func(ctx context.Context) (domain.AdOffer, error) {
			return c.repos.AdOffers.Create(ctx, v)
		})
}

func (c Catalog) DeleteAdOffer(ctx context.Context, id int64) (domain.AdOffer, error) {
	const op = "Catalog.DeleteAdOffer"
	return write(ctx, c, op, EntityAdOffer, domain.ActionDeleted, adOfferID,
		func(ctx context.Context) (domain.AdOffer, error) {
			return c.repos.AdOffers.Delete(ctx, id)
		})
}

func (c Catalog) AdOffer(ctx context.Context, id int64) (domain.AdOffer, error) {
	const op = "Catalog.AdOffer"
	return read(ctx, op, func(ctx context.Context) (domain.AdOffer, error) {
		return c.repos.AdOffers.Get(ctx, id)
	})
}

func (c Catalog) AdOffers(
	ctx context.Context, f domain.AdOfferFilter,
) ([]domain.AdOffer, error) {
	const op = "Catalog.AdOffers"
	return read(ctx, op, func(ctx context.Context) ([]domain.AdOffer, error) {
		return c.repos.AdOffers.List(ctx, f)
	})
}

// Bank and other offers

func (c Catalog) CreateBankOffer(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	const op = "Catalog.CreateBankOffer"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityBankOffer, domain.ActionCreated, bankOfferID,
		func(ctx context.Context) (domain.BankOffer, error) {
			return c.repos.BankOffers.Create(ctx, v)
		})
}

func (c Catalog) UpdateBankOffer(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	const op = "Catalog.UpdateBankOffer"
	v.Status = defaultStatus(v.Status, domain.StatusActive)
	return write(ctx, c, op, EntityBankOffer, domain.ActionUpdated, bankOfferID,
		func(ctx context.Context) (domain.BankOffer, error) {
			return c.repos.BankOffers.Update(ctx, v)
		})
}

func (c Catalog) DeleteBankOffer(ctx context.Context, id int64) (domain.BankOffer, error) {
	const op = "Catalog.DeleteBankOffer"
	return write(ctx, c, op, EntityBankOffer, domain.ActionDeleted, bankOfferID,
		func(ctx context.Context) (domain.BankOffer, error) {
			return c.repos.BankOffers.Delete(ctx, id)
		})
}

func (c Catalog) BankOffer(ctx context.Context, id int64) (domain.BankOffer, error) {
	const op = "Catalog.BankOffer"
	return read(ctx, op, func(ctx context.Context) (domain.BankOffer, error) {
		return c.repos.BankOffers.Get(ctx, id)
	})
}

func (c Catalog) BankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	const op = "Catalog.BankOffers"
	f, err := NormalizeBankOfferFilter(f)
	if err != nil {
		return domain.BankOfferPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return read(ctx, op, func(ctx context.Context) (domain.BankOfferPage, error) {
		return c.repos.BankOffers.Page(ctx, f)
	})
}

func (c Catalog) ActiveBankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) ([]domain.BankOffer, error) {
	const op = "Catalog.ActiveBankOffers"
	f, err := NormalizeBankOfferFilter(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return read(ctx, op, func(ctx context.Context) ([]domain.BankOffer, error) {
		return c.repos.BankOffers.ListActive(ctx, c.now(), f)
	})
}
