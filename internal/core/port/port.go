package port

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Repository is the single-table surface shared by catalog entities.
type Repository[T any] interface {
	Create(context.Context, T) (T, error)
	Update(context.Context, T) (T, error)
	Delete(ctx context.Context, id int64) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	List(context.Context) ([]T, error)
}

type CategoryRepository interface {
	Repository[domain.Category]
	SetIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Category, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Category, error)
}

type SubcategoryRepository interface {
	Repository[domain.Subcategory]
	SetIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
}

type BrandRepository interface {
	Repository[domain.Brand]
	SetIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Brand, error)
	ListBySubcategory(ctx context.Context, subcategoryID int64) ([]domain.Brand, error)
}

type ProductRepository interface {
	Repository[domain.Product]
	SetPicture(ctx context.Context, id int64, picture, updatedBy string) (domain.Product, error)
	ListByBrand(ctx context.Context, brandID int64) ([]domain.Product, error)
}

type ProductDetailRepository interface {
	Repository[domain.ProductDetail]
	SetPicture(ctx context.Context, id int64, picture, updatedBy string) (domain.ProductDetail, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.ProductDetail, error)
	ListBySubcategory(ctx context.Context, subcategoryID int64) ([]domain.ProductDetail, error)
	ListByStatus(ctx context.Context, status string) ([]domain.ProductDetail, error)
}

type ProductPicturesRepository interface {
	Create(context.Context, domain.ProductPictures) (domain.ProductPictures, error)
	ListByDetail(ctx context.Context, detailID int64) ([]domain.ProductPictures, error)
	ReplaceByDetail(ctx context.Context, detailID int64, filenames []string, updatedBy string) (domain.ProductPictures, error)
	Delete(ctx context.Context, id int64) (domain.ProductPictures, error)
}

type BannerRepository interface {
	Create(context.Context, domain.Banner) (domain.Banner, error)
	List(context.Context) ([]domain.Banner, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Banner, error)
	Delete(ctx context.Context, id int64) (domain.Banner, error)
}

type AdOfferRepository interface {
	Create(context.Context, domain.AdOffer) (domain.AdOffer, error)
	Get(ctx context.Context, id int64) (domain.AdOffer, error)
	List(context.Context, domain.AdOfferFilter) ([]domain.AdOffer, error)
	Delete(ctx context.Context, id int64) (domain.AdOffer, error)
}

type BankOfferRepository interface {
	Repository[domain.BankOffer]
	Page(context.Context, domain.BankOfferFilter) (domain.BankOfferPage, error)
	ListActive(ctx context.Context, day time.Time, f domain.BankOfferFilter) ([]domain.BankOffer, error)
	Types(context.Context) ([]string, error)
}

type AdminRepository interface {
	Create(context.Context, domain.Admin) (domain.Admin, error)
	Get(ctx context.Context, id int64) (domain.Admin, error)
	ByLogin(ctx context.Context, login string) (domain.Admin, error)
}

type CustomerRepository interface {
	Create(context.Context, domain.Customer) (domain.Customer, error)
	Update(context.Context, domain.Customer) (domain.Customer, error)
	Get(ctx context.Context, id int64) (domain.Customer, error)
	ByMobile(ctx context.Context, mobile string) (domain.Customer, error)
	ByEmail(ctx context.Context, email string) (domain.Customer, error)
}

type AddressRepository interface {
	Create(context.Context, domain.Address) (domain.Address, error)
	Get(ctx context.Context, customerID, id int64) (domain.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error)
}

type OrderRepository interface {
	CreateBatch(context.Context, []domain.Order) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
}

type HealthChecker interface {
	Ping(context.Context) error
}

type CatalogEventPublisher interface {
	PublishCatalogEvent(context.Context, domain.CatalogEvent) error
}

type OrderEventPublisher interface {
	PublishOrderPlaced(context.Context, []domain.OrderPlacedEvent) error
}

type PopularityReader interface {
	Popularity(ctx context.Context, productDetailID int64) (int64, error)
}

type PopularityProcessor interface {
	runnerContextWg
	closer
}

type TokenIssuer interface {
	Issue(s domain.Session, ttl time.Duration) (string, error)
	Verify(token string) (domain.Session, error)
}

type OTPStore interface {
	Save(ctx context.Context, mobile, code string, ttl time.Duration) error
	Consume(ctx context.Context, mobile string) (string, error)
}

type OTPSender interface {
	Send(ctx context.Context, mobile, code string) error
}
