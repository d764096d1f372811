package httphandler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

// adOfferFilter reads the optional catalog reference filters.
func adOfferFilter(r *http.Request) (domain.AdOfferFilter, error) {
	var (
		f   domain.AdOfferFilter
		err error
	)
	for name, dst := range map[string]*int64{
		"categoryid":    &f.CategoryID,
		"subcategoryid": &f.SubcategoryID,
		"brandid":       &f.BrandID,
		"productid":     &f.ProductID,
	} {
		if *dst, err = queryInt64(r, name); err != nil {
			return domain.AdOfferFilter{}, err
		}
	}
	return f, nil
}

// bankOfferFilter reads paging and sorting. Defaults are applied by the
// service.
func bankOfferFilter(r *http.Request) (domain.BankOfferFilter, error) {
	q := r.URL.Query()
	f := domain.BankOfferFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		SortBy: q.Get("sort"),
	}

	switch order := q.Get("order"); order {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		return f, badRequest(fmt.Errorf("order %q is not asc or desc", order))
	}

	var err error
	if f.Page, err = queryInt(r, "page"); err != nil {
		return f, err
	}
	if f.Limit, err = queryInt(r, "limit"); err != nil {
		return f, err
	}
	return f, nil
}

type promoService interface {
	CreateBanner(context.Context, domain.Banner) (domain.Banner, error)
	DeleteBanner(ctx context.Context, id int64) (domain.Banner, error)
	Banners(context.Context) ([]domain.Banner, error)

	CreateAdOffer(context.Context, domain.AdOffer) (domain.AdOffer, error)
	DeleteAdOffer(ctx context.Context, id int64) (domain.AdOffer, error)
	AdOffer(ctx context.Context, id int64) (domain.AdOffer, error)
	AdOffers(context.Context, domain.AdOfferFilter) ([]domain.AdOffer, error)

	CreateBankOffer(context.Context, domain.BankOffer) (domain.BankOffer, error)
	UpdateBankOffer(context.Context, domain.BankOffer) (domain.BankOffer, error)
	DeleteBankOffer(ctx context.Context, id int64) (domain.BankOffer, error)
	BankOffer(ctx context.Context, id int64) (domain.BankOffer, error)
	BankOffers(context.Context, domain.BankOfferFilter) (domain.BankOfferPage, error)
	ActiveBankOffers(context.Context, domain.BankOfferFilter) ([]domain.BankOffer, error)
}

type PromoHandler struct {
	svc promoService
	up  Uploads
}

func RegisterPromo(mux *http.ServeMux, svc promoService, up Uploads, admin Middleware) {
	h := PromoHandler{svc, up}
	handle(mux, "POST /v1/banners", h.CreateBanner, admin)
	handle(mux, "GET /v1/banners", h.Banners, admin)
	handle(mux, "DELETE /v1/banners/{id}", h.DeleteBanner, admin)

	handle(mux, "POST /v1/ad-offers", h.CreateAdOffer, admin)
	handle(mux, "GET /v1/ad-offers", h.AdOffers, admin)
	handle(mux, "GET /v1/ad-offers/{id}", h.AdOffer, admin)
	handle(mux, "DELETE /v1/ad-offers/{id}", h.DeleteAdOffer, admin)

	handle(mux, "POST /v1/bank-offers", h.CreateBankOffer, admin)
	handle(mux, "GET /v1/bank-offers", h.BankOffers, admin)
	handle(mux, "GET /v1/bank-offers/active", h.ActiveBankOffers, admin)
	handle(mux, "GET /v1/bank-offers/{id}", h.BankOffer, admin)
	handle(mux, "PUT /v1/bank-offers/{id}", h.UpdateBankOffer, admin)
	handle(mux, "DELETE /v1/bank-offers/{id}", h.DeleteBankOffer, admin)
}

func (h PromoHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.CreateBanner"

	var in BannerInput
	names, err := h.up.many(r, "filenames", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Filenames = names
	res, err := h.svc.CreateBanner(r.Context(), v)
	if err != nil {
		h.up.discard(names...)
	}
	reply(w, op, http.StatusCreated, "banner created", res, err)
}

func (h PromoHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "PromoHandler.DeleteBanner", "banner deleted", h.svc.DeleteBanner)
}

func (h PromoHandler) Banners(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.Banners"
	res, err := h.svc.Banners(r.Context())
	reply(w, op, http.StatusOK, "", res, err)
}

func (h PromoHandler) CreateAdOffer(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.CreateAdOffer"

	var in AdOfferInput
	names, err := h.up.many(r, "filenames", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Filenames = names
	res, err := h.svc.CreateAdOffer(r.Context(), v)
	if err != nil {
		h.up.discard(names...)
	}
	reply(w, op, http.StatusCreated, "ad offer created", res, err)
}

func (h PromoHandler) DeleteAdOffer(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "PromoHandler.DeleteAdOffer", "ad offer deleted", h.svc.DeleteAdOffer)
}

func (h PromoHandler) AdOffer(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "PromoHandler.AdOffer", "", h.svc.AdOffer)
}

func (h PromoHandler) AdOffers(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.AdOffers"
	f, err := adOfferFilter(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	res, err := h.svc.AdOffers(r.Context(), f)
	reply(w, op, http.StatusOK, "", res, err)
}

func (h PromoHandler) CreateBankOffer(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.CreateBankOffer"

	var in BankOfferInput
	names, err := h.up.many(r, "filenames", &in)
	if err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.Filenames = names
	res, err := h.svc.CreateBankOffer(r.Context(), v)
	if err != nil {
		h.up.discard(names...)
	}
	reply(w, op, http.StatusCreated, "bank offer created", res, err)
}

// UpdateBankOffer changes the text fields. Stored pictures are kept.
func (h PromoHandler) UpdateBankOffer(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.UpdateBankOffer"

	id, err := pathID(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	var in BankOfferInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	v := in.toDomain()
	v.ID = id
	res, err := h.svc.UpdateBankOffer(r.Context(), v)
	reply(w, op, http.StatusOK, "bank offer updated", res, err)
}

func (h PromoHandler) DeleteBankOffer(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "PromoHandler.DeleteBankOffer", "bank offer deleted", h.svc.DeleteBankOffer)
}

func (h PromoHandler) BankOffer(w http.ResponseWriter, r *http.Request) {
	byID(w, r, "PromoHandler.BankOffer", "", h.svc.BankOffer)
}

func (h PromoHandler) BankOffers(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.BankOffers"
	f, err := bankOfferFilter(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	res, err := h.svc.BankOffers(r.Context(), f)
	reply(w, op, http.StatusOK, "", res, err)
}

func (h PromoHandler) ActiveBankOffers(w http.ResponseWriter, r *http.Request) {
	const op = "PromoHandler.ActiveBankOffers"
	f, err := bankOfferFilter(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	res, err := h.svc.ActiveBankOffers(r.Context(), f)
	reply(w, op, http.StatusOK, "", res, err)
}
