package service

import (
	"context"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

func result[T any](args mock.Arguments) (T, error) {
	v, _ := args.Get(0).(T)
	return v, args.Error(1)
}

type MockCategories struct{ mock.Mock }

func (m *MockCategories) Create(ctx context.Context, v domain.Category) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, v))
}
func (m *MockCategories) Update(ctx context.Context, v domain.Category) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, v))
}
func (m *MockCategories) Delete(ctx context.Context, id int64) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id))
}
func (m *MockCategories) Get(ctx context.Context, id int64) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id))
}
func (m *MockCategories) List(ctx context.Context) ([]domain.Category, error) {
	return result[[]domain.Category](m.Called(ctx))
}
func (m *MockCategories) SetIcon(
	ctx context.Context, id int64, icon, by string,
) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id, icon, by))
}
func (m *MockCategories) ListByStatus(ctx context.Context, status string) ([]domain.Category, error) {
	return result[[]domain.Category](m.Called(ctx, status))
}

type MockSubcategories struct{ mock.Mock }

func (m *MockSubcategories) Create(ctx context.Context, v domain.Subcategory) (domain.Subcategory, error) {
	return result[domain.Subcategory](m.Called(ctx, v))
}
func (m *MockSubcategories) Update(ctx context.Context, v domain.Subcategory) (domain.Subcategory, error) {
	return result[domain.Subcategory](m.Called(ctx, v))
}
func (m *MockSubcategories) Delete(ctx context.Context, id int64) (domain.Subcategory, error) {
	return result[domain.Subcategory](m.Called(ctx, id))
}
func (m *MockSubcategories) Get(ctx context.Context, id int64) (domain.Subcategory, error) {
	return result[domain.Subcategory](m.Called(ctx, id))
}
func (m *MockSubcategories) List(ctx context.Context) ([]domain.Subcategory, error) {
	return result[[]domain.Subcategory](m.Called(ctx))
}
func (m *MockSubcategories) SetIcon(
	ctx context.Context, id int64, icon, by string,
) (domain.Subcategory, error) {
	return result[domain.Subcategory](m.Called(ctx, id, icon, by))
}
func (m *MockSubcategories) ListByCategory(ctx context.Context, id int64) ([]domain.Subcategory, error) {
	return result[[]domain.Subcategory](m.Called(ctx, id))
}

type MockDetails struct{ mock.Mock }

func (m *MockDetails) Create(ctx context.Context, v domain.ProductDetail) (domain.ProductDetail, error) {
	return result[domain.ProductDetail](m.Called(ctx, v))
}
func (m *MockDetails) Update(ctx context.Context, v domain.ProductDetail) (domain.ProductDetail, error) {
	return result[domain.ProductDetail](m.Called(ctx, v))
}
func (m *MockDetails) Delete(ctx context.Context, id int64) (domain.ProductDetail, error) {
	return result[domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockDetails) Get(ctx context.Context, id int64) (domain.ProductDetail, error) {
	return result[domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockDetails) List(ctx context.Context) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx))
}
func (m *MockDetails) SetPicture(
	ctx context.Context, id int64, pic, by string,
) (domain.ProductDetail, error) {
	return result[domain.ProductDetail](m.Called(ctx, id, pic, by))
}
func (m *MockDetails) ListByProduct(ctx context.Context, id int64) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockDetails) ListBySubcategory(ctx context.Context, id int64) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockDetails) ListByStatus(ctx context.Context, status string) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, status))
}

type MockPictures struct{ mock.Mock }

func (m *MockPictures) Create(
	ctx context.Context, v domain.ProductPictures,
) (domain.ProductPictures, error) {
	return result[domain.ProductPictures](m.Called(ctx, v))
}
func (m *MockPictures) ListByDetail(ctx context.Context, id int64) ([]domain.ProductPictures, error) {
	return result[[]domain.ProductPictures](m.Called(ctx, id))
}
func (m *MockPictures) ReplaceByDetail(
	ctx context.Context, id int64, files []string, by string,
) (domain.ProductPictures, error) {
	return result[domain.ProductPictures](m.Called(ctx, id, files, by))
}
func (m *MockPictures) Delete(ctx context.Context, id int64) (domain.ProductPictures, error) {
	return result[domain.ProductPictures](m.Called(ctx, id))
}

type MockBanners struct{ mock.Mock }

func (m *MockBanners) Create(ctx context.Context, v domain.Banner) (domain.Banner, error) {
	return result[domain.Banner](m.Called(ctx, v))
}
func (m *MockBanners) List(ctx context.Context) ([]domain.Banner, error) {
	return result[[]domain.Banner](m.Called(ctx))
}
func (m *MockBanners) ListByStatus(ctx context.Context, status string) ([]domain.Banner, error) {
	return result[[]domain.Banner](m.Called(ctx, status))
}
func (m *MockBanners) Delete(ctx context.Context, id int64) (domain.Banner, error) {
	return result[domain.Banner](m.Called(ctx, id))
}

type MockBankOffers struct{ mock.Mock }

func (m *MockBankOffers) Create(ctx context.Context, v domain.BankOffer) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, v))
}
func (m *MockBankOffers) Update(ctx context.Context, v domain.BankOffer) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, v))
}
func (m *MockBankOffers) Delete(ctx context.Context, id int64) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, id))
}
func (m *MockBankOffers) Get(ctx context.Context, id int64) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, id))
}
func (m *MockBankOffers) List(ctx context.Context) ([]domain.BankOffer, error) {
	return result[[]domain.BankOffer](m.Called(ctx))
}
func (m *MockBankOffers) Page(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	return result[domain.BankOfferPage](m.Called(ctx, f))
}
func (m *MockBankOffers) ListActive(
	ctx context.Context, day time.Time, f domain.BankOfferFilter,
) ([]domain.BankOffer, error) {
	return result[[]domain.BankOffer](m.Called(ctx, day, f))
}
func (m *MockBankOffers) Types(ctx context.Context) ([]string, error) {
	return result[[]string](m.Called(ctx))
}

type MockAdmins struct{ mock.Mock }

func (m *MockAdmins) Create(ctx context.Context, v domain.Admin) (domain.Admin, error) {
	return result[domain.Admin](m.Called(ctx, v))
}
func (m *MockAdmins) Get(ctx context.Context, id int64) (domain.Admin, error) {
	return result[domain.Admin](m.Called(ctx, id))
}
func (m *MockAdmins) ByLogin(ctx context.Context, login string) (domain.Admin, error) {
	return result[domain.Admin](m.Called(ctx, login))
}

type MockCustomers struct{ mock.Mock }

func (m *MockCustomers) Create(ctx context.Context, v domain.Customer) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, v))
}
func (m *MockCustomers) Update(ctx context.Context, v domain.Customer) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, v))
}
func (m *MockCustomers) Get(ctx context.Context, id int64) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, id))
}
func (m *MockCustomers) ByMobile(ctx context.Context, mobile string) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, mobile))
}
func (m *MockCustomers) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, email))
}

type MockAddresses struct{ mock.Mock }

func (m *MockAddresses) Create(ctx context.Context, v domain.Address) (domain.Address, error) {
	return result[domain.Address](m.Called(ctx, v))
}
func (m *MockAddresses) Get(ctx context.Context, customerID, id int64) (domain.Address, error) {
	return result[domain.Address](m.Called(ctx, customerID, id))
}
func (m *MockAddresses) ListByCustomer(ctx context.Context, id int64) ([]domain.Address, error) {
	return result[[]domain.Address](m.Called(ctx, id))
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) CreateBatch(ctx context.Context, v []domain.Order) ([]domain.Order, error) {
	return result[[]domain.Order](m.Called(ctx, v))
}
func (m *MockOrders) ListByCustomer(ctx context.Context, id int64) ([]domain.Order, error) {
	return result[[]domain.Order](m.Called(ctx, id))
}

type MockCatalogEvents struct{ mock.Mock }

func (m *MockCatalogEvents) PublishCatalogEvent(ctx context.Context, e domain.CatalogEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockOrderEvents struct{ mock.Mock }

func (m *MockOrderEvents) PublishOrderPlaced(
	ctx context.Context, e []domain.OrderPlacedEvent,
) error {
	return m.Called(ctx, e).Error(0)
}

type MockPopularity struct{ mock.Mock }

func (m *MockPopularity) Popularity(ctx context.Context, id int64) (int64, error) {
	return result[int64](m.Called(ctx, id))
}

type MockTokens struct{ mock.Mock }

func (m *MockTokens) Issue(s domain.Session, ttl time.Duration) (string, error) {
	return result[string](m.Called(s, ttl))
}
func (m *MockTokens) Verify(token string) (domain.Session, error) {
	return result[domain.Session](m.Called(token))
}

type MockOTPStore struct{ mock.Mock }

func (m *MockOTPStore) Save(ctx context.Context, mobile, code string, ttl time.Duration) error {
	return m.Called(ctx, mobile, code, ttl).Error(0)
}
func (m *MockOTPStore) Consume(ctx context.Context, mobile string) (string, error) {
	return result[string](m.Called(ctx, mobile))
}

type MockOTPSender struct{ mock.Mock }

func (m *MockOTPSender) Send(ctx context.Context, mobile, code string) error {
	return m.Called(ctx, mobile, code).Error(0)
}
