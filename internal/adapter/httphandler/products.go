package httphandler

import (
	"context"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

type productService interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	SetProductPicture(ctx context.Context, id int64, picture, updatedBy string) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (domain.Product, error)
	Product(ctx context.Context, id int64) (domain.Product, error)
	Products(context.Context) ([]domain.Product, error)
	ProductDetailsByProduct(ctx context.Context, id int64) ([]domain.ProductDetail, error)
}

type ProductsHandler struct {
	svc productService
	up  Uploads
}

func RegisterProducts(mux *http.ServeMux, svc productService, up Uploads, admin Middleware) {
	h := ProductsHandler{svc, up}
	handle(mux, "POST /v1/products", h.Create, admin)
	handle(mux, "GET /v1/products", h.List, admin)
	handle(mux, "GET /v1/products/{id}", h.Get, admin)
	handle(mux, "PUT /v1/products/{id}", h.Update, admin)
	handle(mux, "PUT /v1/products/{id}/picture", h.SetPicture, admin)
	handle(mux, "DELETE /v1/products/{id}", h.Delete, admin)
	handle(mux, "GET /v1/products/{id}/details", h.Details, admin)
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Create"

	var in ProductInput
	pic, err := h.up.one(r, "picture", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Picture = pic
	v.UpdatedBy = actor(r)
	res, err := h.svc.CreateProduct(r.Context(), v)
	if err != nil {
		h.up.discard(pic)
	}
	reply(w, op, http.StatusCreated, "product created", res, err)
}

func (h ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Update"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	v.UpdatedBy = actor(r)
	res, err := h.svc.UpdateProduct(r.Context(), v)
	reply(w, op, http.StatusOK, "product updated", res, err)
}

func (h ProductsHandler) SetPicture(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.SetPicture"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	pic, err := h.up.one(r, "picture", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetProductPicture(r.Context(), id, pic, actor(r))
	if err != nil {
		h.up.discard(pic)
	}
	reply(w, op, http.StatusOK, "product picture updated", res, err)
}

func (h ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductsHandler.Delete", "product deleted", h.svc.DeleteProduct)
}

func (h ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductsHandler.Get", "", h.svc.Product)
}

func (h ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.List"
	res, err := h.svc.Products(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h ProductsHandler) Details(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductsHandler.Details", "", h.svc.ProductDetailsByProduct)
}

type productDetailService interface {
	CreateProductDetail(context.Context, domain.ProductDetail) (domain.ProductDetail, error)
	UpdateProductDetail(context.Context, domain.ProductDetail) (domain.ProductDetail, error)
	SetProductDetailPicture(ctx context.Context, id int64, picture, updatedBy string) (domain.ProductDetail, error)
	DeleteProductDetail(ctx context.Context, id int64) (domain.ProductDetail, error)
	ProductDetail(ctx context.Context, id int64) (domain.ProductDetail, error)
	ProductDetails(context.Context) ([]domain.ProductDetail, error)

	AddPictures(ctx context.Context, detailID int64, filenames []string, updatedBy string) (domain.ProductPictures, error)
	ReplacePictures(ctx context.Context, detailID int64, filenames []string, updatedBy string) (domain.ProductPictures, error)
	DeletePictures(ctx context.Context, id int64) (domain.ProductPictures, error)
	Pictures(ctx context.Context, detailID int64) ([]domain.ProductPictures, error)
}

type ProductDetailsHandler struct {
	svc productDetailService
	up  Uploads
}

func RegisterProductDetails(
	mux *http.ServeMux, svc productDetailService, up Uploads, admin Middleware,
) {
	h := ProductDetailsHandler{svc, up}
	handle(mux, "POST /v1/product-details", h.Create, admin)
	handle(mux, "GET /v1/product-details", h.List, admin)
	handle(mux, "GET /v1/product-details/{id}", h.Get, admin)
	handle(mux, "PUT /v1/product-details/{id}", h.Update, admin)
	handle(mux, "PUT /v1/product-details/{id}/picture", h.SetPicture, admin)
	handle(mux, "DELETE /v1/product-details/{id}", h.Delete, admin)

	handle(mux, "POST /v1/product-details/{id}/pictures", h.AddPictures, admin)
	handle(mux, "GET /v1/product-details/{id}/pictures", h.Pictures, admin)
	handle(mux, "PUT /v1/product-details/{id}/pictures", h.ReplacePictures, admin)
	handle(mux, "DELETE /v1/product-pictures/{id}", h.DeletePictures, admin)
}

func (h ProductDetailsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductDetailsHandler.Create"

	var in ProductDetailInput
	pic, err := h.up.one(r, "picture", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Picture = pic
	v.UpdatedBy = actor(r)
	res, err := h.svc.CreateProductDetail(r.Context(), v)
	if err != nil {
		h.up.discard(pic)
	}
	reply(w, op, http.StatusCreated, "product detail created", res, err)
}

func (h ProductDetailsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "ProductDetailsHandler.Update"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in ProductDetailInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	v.UpdatedBy = actor(r)
	res, err := h.svc.UpdateProductDetail(r.Context(), v)
	reply(w, op, http.StatusOK, "product detail updated", res, err)
}

func (h ProductDetailsHandler) SetPicture(w http.ResponseWriter, r *http.Request) {
	const op = "ProductDetailsHandler.SetPicture"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	pic, err := h.up.one(r, "picture", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetProductDetailPicture(r.Context(), id, pic, actor(r))
	if err != nil {
		h.up.discard(pic)
	}
	reply(w, op, http.StatusOK, "product detail picture updated", res, err)
}

func (h ProductDetailsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductDetailsHandler.Delete", "product detail deleted",
		h.svc.DeleteProductDetail)
}

func (h ProductDetailsHandler) Get(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductDetailsHandler.Get", "", h.svc.ProductDetail)
}

func (h ProductDetailsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ProductDetailsHandler.List"
	res, err := h.svc.ProductDetails(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h ProductDetailsHandler) AddPictures(w http.ResponseWriter, r *http.Request) {
	h.storePictures(w, r, "ProductDetailsHandler.AddPictures",
		http.StatusCreated, "pictures added", h.svc.AddPictures)
}

func (h ProductDetailsHandler) ReplacePictures(w http.ResponseWriter, r *http.Request) {
	h.storePictures(w, r, "ProductDetailsHandler.ReplacePictures",
		http.StatusOK, "pictures replaced", h.svc.ReplacePictures)
}

func (h ProductDetailsHandler) storePictures(
	w http.ResponseWriter, r *http.Request, op string, status int, msg string,
	fn func(context.Context, int64, []string, string) (domain.ProductPictures, error),
) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	names, err := h.up.many(r, "filenames", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := fn(r.Context(), id, names, actor(r))
	if err != nil {
		h.up.discard(names...)
	}
	reply(w, op, status, msg, res, err)
}

func (h ProductDetailsHandler) Pictures(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductDetailsHandler.Pictures", "", h.svc.Pictures)
}

func (h ProductDetailsHandler) DeletePictures(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "ProductDetailsHandler.DeletePictures", "pictures deleted",
		h.svc.DeletePictures)
}
