package httphandler

import (
	"context"
	"mime/multipart"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/mock"
)

func result[T any](args mock.Arguments) (T, error) {
	v, _ := args.Get(0).(T)
	return v, args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) CreateCategory(ctx context.Context, v domain.Category) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, v))
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, v domain.Category) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, v))
}
func (m *MockCategoryService) SetCategoryIcon(
	ctx context.Context, id int64, icon, by string,
) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id, icon, by))
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, id int64) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id))
}
func (m *MockCategoryService) Category(ctx context.Context, id int64) (domain.Category, error) {
	return result[domain.Category](m.Called(ctx, id))
}
func (m *MockCategoryService) Categories(ctx context.Context) ([]domain.Category, error) {
	return result[[]domain.Category](m.Called(ctx))
}
func (m *MockCategoryService) SubcategoriesByCategory(
	ctx context.Context, id int64,
) ([]domain.Subcategory, error) {
	return result[[]domain.Subcategory](m.Called(ctx, id))
}

type MockStorefront struct{ mock.Mock }

func (m *MockStorefront) Menu(ctx context.Context) ([]domain.MenuCategory, error) {
	return result[[]domain.MenuCategory](m.Called(ctx))
}
func (m *MockStorefront) Banners(ctx context.Context) ([]domain.Banner, error) {
	return result[[]domain.Banner](m.Called(ctx))
}
func (m *MockStorefront) BankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	return result[domain.BankOfferPage](m.Called(ctx, f))
}
func (m *MockStorefront) BankOfferTypes(ctx context.Context) ([]string, error) {
	return result[[]string](m.Called(ctx))
}
func (m *MockStorefront) AdOffers(ctx context.Context, f domain.AdOfferFilter) ([]domain.AdOffer, error) {
	return result[[]domain.AdOffer](m.Called(ctx, f))
}
func (m *MockStorefront) ProductDetails(ctx context.Context, status string) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, status))
}
func (m *MockStorefront) ProductDetailsBySubcategory(
	ctx context.Context, id int64,
) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockStorefront) ProductDetailsByProduct(
	ctx context.Context, id int64,
) ([]domain.ProductDetail, error) {
	return result[[]domain.ProductDetail](m.Called(ctx, id))
}
func (m *MockStorefront) Pictures(ctx context.Context, id int64) ([]domain.ProductPictures, error) {
	return result[[]domain.ProductPictures](m.Called(ctx, id))
}
func (m *MockStorefront) BrandsBySubcategory(ctx context.Context, id int64) ([]domain.Brand, error) {
	return result[[]domain.Brand](m.Called(ctx, id))
}
func (m *MockStorefront) Popularity(ctx context.Context, id int64) (int64, error) {
	return result[int64](m.Called(ctx, id))
}

type MockPromoService struct{ mock.Mock }

func (m *MockPromoService) CreateBanner(ctx context.Context, v domain.Banner) (domain.Banner, error) {
	return result[domain.Banner](m.Called(ctx, v))
}
func (m *MockPromoService) DeleteBanner(ctx context.Context, id int64) (domain.Banner, error) {
	return result[domain.Banner](m.Called(ctx, id))
}
func (m *MockPromoService) Banners(ctx context.Context) ([]domain.Banner, error) {
	return result[[]domain.Banner](m.Called(ctx))
}
func (m *MockPromoService) CreateAdOffer(ctx context.Context, v domain.AdOffer) (domain.AdOffer, error) {
	return result[domain.AdOffer](m.Called(ctx, v))
}
func (m *MockPromoService) DeleteAdOffer(ctx context.Context, id int64) (domain.AdOffer, error) {
	return result[domain.AdOffer](m.Called(ctx, id))
}
func (m *MockPromoService) AdOffer(ctx context.Context, id int64) (domain.AdOffer, error) {
	return result[domain.AdOffer](m.Called(ctx, id))
}
func (m *MockPromoService) AdOffers(ctx context.Context, f domain.AdOfferFilter) ([]domain.AdOffer, error) {
	return result[[]domain.AdOffer](m.Called(ctx, f))
}
func (m *MockPromoService) CreateBankOffer(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, v))
}
func (m *MockPromoService) UpdateBankOffer(
	ctx context.Context, v domain.BankOffer,
) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, v))
}
func (m *MockPromoService) DeleteBankOffer(ctx context.Context, id int64) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, id))
}
func (m *MockPromoService) BankOffer(ctx context.Context, id int64) (domain.BankOffer, error) {
	return result[domain.BankOffer](m.Called(ctx, id))
}
func (m *MockPromoService) BankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) (domain.BankOfferPage, error) {
	return result[domain.BankOfferPage](m.Called(ctx, f))
}
func (m *MockPromoService) ActiveBankOffers(
	ctx context.Context, f domain.BankOfferFilter,
) ([]domain.BankOffer, error) {
	return result[[]domain.BankOffer](m.Called(ctx, f))
}

type MockCheckout struct{ mock.Mock }

func (m *MockCheckout) Cart(s domain.Session) domain.Cart {
	return m.Called(s).Get(0).(domain.Cart)
}
func (m *MockCheckout) SetItem(
	ctx context.Context, s domain.Session, id int64, qty int,
) (domain.Cart, error) {
	return result[domain.Cart](m.Called(ctx, s, id, qty))
}
func (m *MockCheckout) RemoveItem(s domain.Session, id int64) domain.Cart {
	return m.Called(s, id).Get(0).(domain.Cart)
}
func (m *MockCheckout) Clear(s domain.Session) domain.Cart {
	return m.Called(s).Get(0).(domain.Cart)
}
func (m *MockCheckout) PlaceOrder(
	ctx context.Context, s domain.Session, addressID int64,
) ([]domain.Order, error) {
	return result[[]domain.Order](m.Called(ctx, s, addressID))
}

type MockAccount struct{ mock.Mock }

func (m *MockAccount) RequestOTP(ctx context.Context, mobile string) error {
	return m.Called(ctx, mobile).Error(0)
}
func (m *MockAccount) VerifyOTP(ctx context.Context, mobile, code string) (service.Verification, error) {
	return result[service.Verification](m.Called(ctx, mobile, code))
}
func (m *MockAccount) Register(
	ctx context.Context, s domain.Session, c domain.Customer,
) (string, domain.Customer, error) {
	args := m.Called(ctx, s, c)
	return args.String(0), args.Get(1).(domain.Customer), args.Error(2)
}
func (m *MockAccount) Profile(ctx context.Context, s domain.Session) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, s))
}
func (m *MockAccount) UpdateProfile(
	ctx context.Context, s domain.Session, c domain.Customer,
) (domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, s, c))
}
func (m *MockAccount) Addresses(ctx context.Context, s domain.Session) ([]domain.Address, error) {
	return result[[]domain.Address](m.Called(ctx, s))
}
func (m *MockAccount) AddAddress(
	ctx context.Context, s domain.Session, a domain.Address,
) (domain.Address, error) {
	return result[domain.Address](m.Called(ctx, s, a))
}
func (m *MockAccount) Orders(ctx context.Context, s domain.Session) ([]domain.Order, error) {
	return result[[]domain.Order](m.Called(ctx, s))
}

// fakeFiles records stored names without touching the disk.
type fakeFiles struct {
	saved   []string
	removed []string
}

func (f *fakeFiles) Save(fh *multipart.FileHeader) (string, error) {
	name := "stored-" + fh.Filename
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeFiles) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		name, _ := f.Save(fh)
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeFiles) Remove(names ...string) {
	f.removed = append(f.removed, names...)
}
