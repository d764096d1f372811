package httphandler

import (
	"context"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

type storefrontService interface {
	Menu(context.Context) ([]domain.MenuCategory, error)
	Banners(context.Context) ([]domain.Banner, error)
	BankOffers(context.Context, domain.BankOfferFilter) (domain.BankOfferPage, error)
	BankOfferTypes(context.Context) ([]string, error)
	AdOffers(context.Context, domain.AdOfferFilter) ([]domain.AdOffer, error)
	ProductDetails(ctx context.Context, status string) ([]domain.ProductDetail, error)
	ProductDetailsBySubcategory(ctx context.Context, id int64) ([]domain.ProductDetail, error)
	ProductDetailsByProduct(ctx context.Context, id int64) ([]domain.ProductDetail, error)
	Pictures(ctx context.Context, detailID int64) ([]domain.ProductPictures, error)
	BrandsBySubcategory(ctx context.Context, id int64) ([]domain.Brand, error)
	Popularity(ctx context.Context, detailID int64) (int64, error)
}

type popularity struct {
	ProductDetailID int64 `json:"productdetailid"`
	Quantity        int64 `json:"quantity"`
}

// StoreHandler serves the public catalog.
type StoreHandler struct {
	svc storefrontService
}

func RegisterStore(mux *http.ServeMux, svc storefrontService) {
	h := StoreHandler{svc}
	handle(mux, "GET /v1/store/menu", h.Menu)
	handle(mux, "GET /v1/store/banners", h.Banners)
	handle(mux, "GET /v1/store/bank-offers", h.BankOffers)
	handle(mux, "GET /v1/store/bank-offers/types", h.BankOfferTypes)
	handle(mux, "GET /v1/store/ad-offers", h.AdOffers)
	handle(mux, "GET /v1/store/product-details", h.ProductDetails)
	handle(mux, "GET /v1/store/subcategories/{id}/product-details", h.SubcategoryDetails)
	handle(mux, "GET /v1/store/subcategories/{id}/brands", h.SubcategoryBrands)
	handle(mux, "GET /v1/store/products/{id}/details", h.ProductDetailsOf)
	handle(mux, "GET /v1/store/product-details/{id}/pictures", h.Pictures)
	handle(mux, "GET /v1/store/product-details/{id}/popularity", h.Popularity)
}

func (h StoreHandler) Menu(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.Menu"
	res, err := h.svc.Menu(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) Banners(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.Banners"
	res, err := h.svc.Banners(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) BankOffers(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.BankOffers"
	f, err := bankOfferFilter(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	res, err := h.svc.BankOffers(r.Context(), f)
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) BankOfferTypes(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.BankOfferTypes"
	res, err := h.svc.BankOfferTypes(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) AdOffers(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.AdOffers"
	f, err := adOfferFilter(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	res, err := h.svc.AdOffers(r.Context(), f)
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) ProductDetails(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.ProductDetails"
	res, err := h.svc.ProductDetails(r.Context(), r.URL.Query().Get("status"))
	reply(w, op, http.StatusOK, "", res, err)
}

func (h StoreHandler) SubcategoryDetails(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "StoreHandler.SubcategoryDetails", "", h.svc.ProductDetailsBySubcategory)
}

func (h StoreHandler) SubcategoryBrands(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "StoreHandler.SubcategoryBrands", "", h.svc.BrandsBySubcategory)
}

func (h StoreHandler) ProductDetailsOf(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "StoreHandler.ProductDetailsOf", "", h.svc.ProductDetailsByProduct)
}

func (h StoreHandler) Pictures(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "StoreHandler.Pictures", "", h.svc.Pictures)
}

func (h StoreHandler) Popularity(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "StoreHandler.Popularity", "",
		func(ctx context.Context, id int64) (popularity, error) {
			n, err := h.svc.Popularity(ctx, id)
			return popularity{id, n}, err
		})
}

type checkoutService interface {
	Cart(domain.Session) domain.Cart
	SetItem(ctx context.Context, s domain.Session, detailID int64, qty int) (domain.Cart, error)
	RemoveItem(s domain.Session, detailID int64) domain.Cart
	Clear(domain.Session) domain.Cart
	PlaceOrder(ctx context.Context, s domain.Session, addressID int64) ([]domain.Order, error)
}

type CartHandler struct {
	svc checkoutService
}

func RegisterCart(mux *http.ServeMux, svc checkoutService, customer Middleware) {
	h := CartHandler{svc}
	handle(mux, "GET /v1/store/cart", h.Cart, customer)
	handle(mux, "PUT /v1/store/cart/items/{id}", h.SetItem, customer)
	handle(mux, "DELETE /v1/store/cart/items/{id}", h.RemoveItem, customer)
	handle(mux, "DELETE /v1/store/cart", h.Clear, customer)
	handle(mux, "POST /v1/store/checkout", h.Checkout, customer)
}

func (h CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", h.svc.Cart(session(r)))
}

func (h CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetItem"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in CartItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetItem(r.Context(), session(r), id, in.Quantity)
	reply(w, op, http.StatusOK, "cart updated", res, err)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeData(w, http.StatusOK, "item removed", h.svc.RemoveItem(session(r), id))
}

func (h CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "cart cleared", h.svc.Clear(session(r)))
}

func (h CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Checkout"

	var in CheckoutInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.PlaceOrder(r.Context(), session(r), in.AddressID)
	reply(w, op, http.StatusCreated, "order placed", res, err)
}
