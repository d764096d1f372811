package httphandler

import (
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type catalogService interface {
	categoryService
	subcategoryService
	brandService
	productService
	productDetailService
	promoService
}

type authService interface {
	adminAuthService
	customerAuthService
}

type RouterDeps struct {
	Catalog    catalogService
	Storefront storefrontService
	Auth       authService
	Checkout   checkoutService
	Tokens     port.TokenIssuer
	Files      fileStore
	DB         port.HealthChecker

	AllowedOrigin string
	PublicPrefix  string
	UploadDir     string
	MaxMemory     int64
}

// NewRouter mounts every route and wraps the mux with the common
// middleware.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	up := NewUploads(d.Files, d.MaxMemory)
	admin := RequireRole(d.Tokens, domain.RoleAdmin)
	customer := RequireRole(d.Tokens, domain.RoleCustomer)

	RegisterAdmin(mux, d.Auth, admin)
	RegisterCategories(mux, d.Catalog, up, admin)
	RegisterSubcategories(mux, d.Catalog, up, admin)
	RegisterBrands(mux, d.Catalog, up, admin)
	RegisterProducts(mux, d.Catalog, up, admin)
	RegisterProductDetails(mux, d.Catalog, up, admin)
	RegisterPromo(mux, d.Catalog, up, admin)

	RegisterStore(mux, d.Storefront)
	RegisterAccount(mux, d.Auth, customer)
	RegisterCart(mux, d.Checkout, customer)

	RegisterInfra(mux, d.DB, d.PublicPrefix, d.UploadDir)

	return Chain(mux, Instrument, CORS(d.AllowedOrigin), AllowJSON)
}
