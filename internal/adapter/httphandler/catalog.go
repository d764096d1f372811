package httphandler

import (
	"context"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

func handle(mux *http.ServeMux, pattern string, hf http.HandlerFunc, mws ...Middleware) {
	mux.Handle(pattern, Chain(hf, mws...))
}

func reply[T any](w http.ResponseWriter, op string, status int, msg string, v T, err error) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeData(w, status, msg, v)
}

// byID runs fn with the {id} path value.
func byID[T any](
	w http.ResponseWriter, r *http.Request, op, msg string,
	fn func(context.Context, int64) (T, error),
) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	v, err := fn(r.Context(), id)
	reply(w, op, http.StatusOK, msg, v, err)
}

type categoryService interface {
	CreateCategory(context.Context, domain.Category) (domain.Category, error)
	UpdateCategory(context.Context, domain.Category) (domain.Category, error)
	SetCategoryIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (domain.Category, error)
	Category(ctx context.Context, id int64) (domain.Category, error)
	Categories(context.Context) ([]domain.Category, error)
	SubcategoriesByCategory(ctx context.Context, id int64) ([]domain.Subcategory, error)
}

type CategoriesHandler struct {
	svc categoryService
	up  Uploads
}

func RegisterCategories(
	mux *http.ServeMux, svc categoryService, up Uploads, admin Middleware,
) {
	h := CategoriesHandler{svc, up}
	handle(mux, "POST /v1/categories", h.Create, admin)
	handle(mux, "GET /v1/categories", h.List, admin)
	handle(mux, "GET /v1/categories/{id}", h.Get, admin)
	handle(mux, "PUT /v1/categories/{id}", h.Update, admin)
	handle(mux, "PUT /v1/categories/{id}/icon", h.SetIcon, admin)
	handle(mux, "DELETE /v1/categories/{id}", h.Delete, admin)
	handle(mux, "GET /v1/categories/{id}/subcategories", h.Subcategories, admin)
}

func (h CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.Create"

	var in CategoryInput
	icon, err := h.up.one(r, "categoryicon", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Icon = icon
	v.UpdatedBy = actor(r)
	res, err := h.svc.CreateCategory(r.Context(), v)
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusCreated, "category created", res, err)
}

func (h CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.Update"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	v.UpdatedBy = actor(r)
	res, err := h.svc.UpdateCategory(r.Context(), v)
	reply(w, op, http.StatusOK, "category updated", res, err)
}

func (h CategoriesHandler) SetIcon(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.SetIcon"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	icon, err := h.up.one(r, "categoryicon", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetCategoryIcon(r.Context(), id, icon, actor(r))
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusOK, "category icon updated", res, err)
}

func (h CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "CategoriesHandler.Delete", "category deleted", h.svc.DeleteCategory)
}

func (h CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "CategoriesHandler.Get", "", h.svc.Category)
}

func (h CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.List"
	res, err := h.svc.Categories(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h CategoriesHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "CategoriesHandler.Subcategories", "", h.svc.SubcategoriesByCategory)
}

type subcategoryService interface {
	CreateSubcategory(context.Context, domain.Subcategory) (domain.Subcategory, error)
	UpdateSubcategory(context.Context, domain.Subcategory) (domain.Subcategory, error)
	SetSubcategoryIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) (domain.Subcategory, error)
	Subcategory(ctx context.Context, id int64) (domain.Subcategory, error)
	Subcategories(context.Context) ([]domain.Subcategory, error)
	BrandsBySubcategory(ctx context.Context, id int64) ([]domain.Brand, error)
}

type SubcategoriesHandler struct {
	svc subcategoryService
	up  Uploads
}

func RegisterSubcategories(
	mux *http.ServeMux, svc subcategoryService, up Uploads, admin Middleware,
) {
	h := SubcategoriesHandler{svc, up}
	handle(mux, "POST /v1/subcategories", h.Create, admin)
	handle(mux, "GET /v1/subcategories", h.List, admin)
	handle(mux, "GET /v1/subcategories/{id}", h.Get, admin)
	handle(mux, "PUT /v1/subcategories/{id}", h.Update, admin)
	handle(mux, "PUT /v1/subcategories/{id}/icon", h.SetIcon, admin)
	handle(mux, "DELETE /v1/subcategories/{id}", h.Delete, admin)
	handle(mux, "GET /v1/subcategories/{id}/brands", h.Brands, admin)
}

func (h SubcategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "SubcategoriesHandler.Create"

	var in SubcategoryInput
	icon, err := h.up.one(r, "subcategoryicon", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Icon = icon
	v.UpdatedBy = actor(r)
	res, err := h.svc.CreateSubcategory(r.Context(), v)
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusCreated, "subcategory created", res, err)
}

func (h SubcategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "SubcategoriesHandler.Update"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in SubcategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	v.UpdatedBy = actor(r)
	res, err := h.svc.UpdateSubcategory(r.Context(), v)
	reply(w, op, http.StatusOK, "subcategory updated", res, err)
}

func (h SubcategoriesHandler) SetIcon(w http.ResponseWriter, r *http.Request) {
	const op = "SubcategoriesHandler.SetIcon"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	icon, err := h.up.one(r, "subcategoryicon", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetSubcategoryIcon(r.Context(), id, icon, actor(r))
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusOK, "subcategory icon updated", res, err)
}

func (h SubcategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "SubcategoriesHandler.Delete", "subcategory deleted", h.svc.DeleteSubcategory)
}

func (h SubcategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "SubcategoriesHandler.Get", "", h.svc.Subcategory)
}

func (h SubcategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "SubcategoriesHandler.List"
	res, err := h.svc.Subcategories(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h SubcategoriesHandler) Brands(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "SubcategoriesHandler.Brands", "", h.svc.BrandsBySubcategory)
}

type brandService interface {
	CreateBrand(context.Context, domain.Brand) (domain.Brand, error)
	UpdateBrand(context.Context, domain.Brand) (domain.Brand, error)
	SetBrandIcon(ctx context.Context, id int64, icon, updatedBy string) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id int64) (domain.Brand, error)
	Brand(ctx context.Context, id int64) (domain.Brand, error)
	Brands(context.Context) ([]domain.Brand, error)
	ProductsByBrand(ctx context.Context, id int64) ([]domain.Product, error)
}

type BrandsHandler struct {
	svc brandService
	up  Uploads
}

func RegisterBrands(mux *http.ServeMux, svc brandService, up Uploads, admin Middleware) {
	h := BrandsHandler{svc, up}
	handle(mux, "POST /v1/brands", h.Create, admin)
	handle(mux, "GET /v1/brands", h.List, admin)
	handle(mux, "GET /v1/brands/{id}", h.Get, admin)
	handle(mux, "PUT /v1/brands/{id}", h.Update, admin)
	handle(mux, "PUT /v1/brands/{id}/icon", h.SetIcon, admin)
	handle(mux, "DELETE /v1/brands/{id}", h.Delete, admin)
	handle(mux, "GET /v1/brands/{id}/products", h.Products, admin)
}

func (h BrandsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "BrandsHandler.Create"

	var in BrandInput
	icon, err := h.up.one(r, "brandicon", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Icon = icon
	v.UpdatedBy = actor(r)
	res, err := h.svc.CreateBrand(r.Context(), v)
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusCreated, "brand created", res, err)
}

func (h BrandsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "BrandsHandler.Update"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in BrandInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	v.UpdatedBy = actor(r)
	res, err := h.svc.UpdateBrand(r.Context(), v)
	reply(w, op, http.StatusOK, "brand updated", res, err)
}

func (h BrandsHandler) SetIcon(w http.ResponseWriter, r *http.Request) {
	const op = "BrandsHandler.SetIcon"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	icon, err := h.up.one(r, "brandicon", nil)
	if err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.SetBrandIcon(r.Context(), id, icon, actor(r))
	if err != nil {
		h.up.discard(icon)
	}
	reply(w, op, http.StatusOK, "brand icon updated", res, err)
}

func (h BrandsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "BrandsHandler.Delete", "brand deleted", h.svc.DeleteBrand)
}

func (h BrandsHandler) Get(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "BrandsHandler.Get", "", h.svc.Brand)
}

func (h BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "BrandsHandler.List"
	res, err := h.svc.Brands(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h BrandsHandler) Products(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "BrandsHandler.Products", "", h.svc.ProductsByBrand)
}
