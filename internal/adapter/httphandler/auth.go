package httphandler

import (
	"context"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type adminAuthService interface {
	AdminLogin(ctx context.Context, login, password string) (string, domain.Admin, error)
	AdminRegister(ctx context.Context, v domain.Admin, password string) (domain.Admin, error)
	AdminProfile(context.Context, domain.Session) (domain.Admin, error)
}

type loginResult struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

type AdminHandler struct {
	svc adminAuthService
}

func RegisterAdmin(mux *http.ServeMux, svc adminAuthService, admin Middleware) {
	h := AdminHandler{svc}
	handle(mux, "POST /v1/admin/login", h.Login)
	handle(mux, "POST /v1/admin/register", h.Register)
	handle(mux, "GET /v1/admin/me", h.Me, admin)
}

func (h AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Login"

	var in AdminLoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	token, admin, err := h.svc.AdminLogin(r.Context(), in.Login, in.Password)
	reply(w, op, http.StatusOK, "login successful", loginResult{token, admin}, err)
}

func (h AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Register"

	var in AdminRegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.AdminRegister(r.Context(), in.toDomain(), in.Password)
	reply(w, op, http.StatusCreated, "admin registered", res, err)
}

func (h AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Me"
	res, err := h.svc.AdminProfile(r.Context(), session(r))
	reply(w, op, http.StatusOK, "", res, err)
}

type customerAuthService interface {
	RequestOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, code string) (service.Verification, error)
	Register(context.Context, domain.Session, domain.Customer) (string, domain.Customer, error)
	Profile(context.Context, domain.Session) (domain.Customer, error)
	UpdateProfile(context.Context, domain.Session, domain.Customer) (domain.Customer, error)
	Addresses(context.Context, domain.Session) ([]domain.Address, error)
	AddAddress(context.Context, domain.Session, domain.Address) (domain.Address, error)
	Orders(context.Context, domain.Session) ([]domain.Order, error)
}

type registerResult struct {
	Token    string          `json:"token"`
	Customer domain.Customer `json:"customer"`
}

// AccountHandler serves customer sign-in and the customer's own records.
type AccountHandler struct {
	svc customerAuthService
}

func RegisterAccount(mux *http.ServeMux, svc customerAuthService, customer Middleware) {
	h := AccountHandler{svc}
	handle(mux, "POST /v1/store/otp", h.RequestOTP)
	handle(mux, "POST /v1/store/otp/verify", h.VerifyOTP)
	handle(mux, "POST /v1/store/register", h.Register, customer)
	handle(mux, "GET /v1/store/me", h.Profile, customer)
	handle(mux, "PUT /v1/store/me", h.UpdateProfile, customer)
	handle(mux, "GET /v1/store/me/addresses", h.Addresses, customer)
	handle(mux, "POST /v1/store/me/addresses", h.AddAddress, customer)
	handle(mux, "GET /v1/store/me/orders", h.Orders, customer)
}

func (h AccountHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.RequestOTP"

	var in OTPRequestInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	if err := h.svc.RequestOTP(r.Context(), in.Mobile); err != nil {
		writeError(w, op, err)
		return
	}
	writeMessage(w, http.StatusOK, "otp sent")
}

func (h AccountHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.VerifyOTP"

	var in OTPVerifyInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), in.Mobile, in.Code)
	reply(w, op, http.StatusOK, "otp verified", res, err)
}

func (h AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Register"

	var in CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	token, c, err := h.svc.Register(r.Context(), session(r), in.toDomain())
	reply(w, op, http.StatusCreated, "customer registered", registerResult{token, c}, err)
}

func (h AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Profile"
	res, err := h.svc.Profile(r.Context(), session(r))
	reply(w, op, http.StatusOK, "", res, err)
}

func (h AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.UpdateProfile"

	var in CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.UpdateProfile(r.Context(), session(r), in.toDomain())
	reply(w, op, http.StatusOK, "profile updated", res, err)
}

func (h AccountHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Addresses"
	res, err := h.svc.Addresses(r.Context(), session(r))
	reply(w, op, http.StatusOK, "", res, err)
}

func (h AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.AddAddress"

	var in AddressInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, op, err)
		return
	}

	res, err := h.svc.AddAddress(r.Context(), session(r), in.toDomain())
	reply(w, op, http.StatusCreated, "address added", res, err)
}

func (h AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Orders"
	res, err := h.svc.Orders(r.Context(), session(r))
	reply(w, op, http.StatusOK, "", res, err)
}
