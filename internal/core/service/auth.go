package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminTTL    = 24 * time.Hour
	defaultCustomerTTL = 72 * time.Hour
	defaultOTPTTL      = 5 * time.Minute
	defaultOTPLength   = 4
)

type AuthConfig struct {
	AdminTokenTTL      time.Duration
	CustomerTokenTTL   time.Duration
	AllowAdminRegister bool
	OTPTTL             time.Duration
	OTPLength          int
}

func (c *AuthConfig) normalize() {
	if c.AdminTokenTTL <= 0 {
		c.AdminTokenTTL = defaultAdminTTL
	}
	if c.CustomerTokenTTL <= 0 {
		c.CustomerTokenTTL = defaultCustomerTTL
	}
	if c.OTPTTL <= 0 {
		c.OTPTTL = defaultOTPTTL
	}
	if c.OTPLength <= 0 {
		c.OTPLength = defaultOTPLength
	}
}

type AuthDeps struct {
	Admins    port.AdminRepository
	Customers port.CustomerRepository
	Addresses port.AddressRepository
	Orders    port.OrderRepository
	Tokens    port.TokenIssuer
	OTPStore  port.OTPStore
	OTPSender port.OTPSender
	Carts     *cart.Store
}

// Auth covers admin accounts, customer sign-in and customer profile data.
type Auth struct {
	deps AuthDeps
	cfg  AuthConfig
	code func(n int) (string, error)
}

func NewAuth(deps AuthDeps, cfg AuthConfig) Auth {
	cfg.normalize()
	return Auth{deps: deps, cfg: cfg, code: randomDigits}
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// AdminLogin accepts an email or a mobile number as login.
func (a Auth) AdminLogin(
	ctx context.Context, login, password string,
) (string, domain.Admin, error) {
	const op = "Auth.AdminLogin"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return "", domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	admin, err := a.deps.Admins.ByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Admin{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		log.Info("password mismatch", "adminID", admin.ID)
		return "", domain.Admin{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.deps.Tokens.Issue(
		domain.Session{Subject: admin.ID, Role: domain.RoleAdmin, Mobile: admin.Mobile},
		a.cfg.AdminTokenTTL,
	)
	if err != nil {
		return "", domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, admin, nil
}

func (a Auth) AdminRegister(
	ctx context.Context, v domain.Admin, password string,
) (domain.Admin, error) {
	const op = "Auth.AdminRegister"

	if !a.cfg.AllowAdminRegister {
		return domain.Admin{}, fmt.Errorf("%s: %w: admin registration is disabled",
			op, ErrForbidden)
	}
	if err := ctx.Err(); err != nil {
		return domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("%s: %w", op, invalidArg("%v", err))
	}

	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	v.Mobile = strings.TrimSpace(v.Mobile)
	v.PasswordHash = string(hash)
	v.Status = defaultStatus(v.Status, domain.StatusActive)

	admin, err := a.deps.Admins.Create(ctx, v)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Admin{}, fmt.Errorf("%s: %w: email or mobile", op, ErrUserExists)
		}
		return domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}
	return admin, nil
}

func (a Auth) AdminProfile(ctx context.Context, s domain.Session) (domain.Admin, error) {
	const op = "Auth.AdminProfile"
	return read(ctx, op, func(ctx context.Context) (domain.Admin, error) {
		return a.deps.Admins.Get(ctx, s.Subject)
	})
}

// RequestOTP replaces any pending code for mobile and sends a new one.
func (a Auth) RequestOTP(ctx context.Context, mobile string) error {
	const op = "Auth.RequestOTP"

	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return fmt.Errorf("%s: %w", op, invalidArg("mobile is required"))
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := a.code(a.cfg.OTPLength)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := a.deps.OTPStore.Save(ctx, mobile, code, a.cfg.OTPTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := a.deps.OTPSender.Send(ctx, mobile, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type Verification struct {
	Token    string           `json:"token"`
	Exists   bool             `json:"exists"`
	Customer *domain.Customer `json:"customer,omitempty"`
}

// VerifyOTP consumes the pending code. A known mobile gets a customer
// token; an unknown one gets a pending token that only allows Register.
func (a Auth) VerifyOTP(ctx context.Context, mobile, code string) (Verification, error) {
	const op = "Auth.VerifyOTP"

	mobile = strings.TrimSpace(mobile)
	if err := ctx.Err(); err != nil {
		return Verification{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := a.deps.OTPStore.Consume(ctx, mobile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Verification{}, fmt.Errorf("%s: %w", op, ErrInvalidOTP)
		}
		return Verification{}, fmt.Errorf("%s: %w", op, err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return Verification{}, fmt.Errorf("%s: %w", op, ErrInvalidOTP)
	}

	session := domain.Session{Role: domain.RoleCustomer, Mobile: mobile}
	var v Verification

	customer, err := a.deps.Customers.ByMobile(ctx, mobile)
	switch {
	case err == nil:
		session.Subject = customer.ID
		v.Exists = true
		v.Customer = &customer
	case errors.Is(err, domain.ErrNotFound):
	default:
		return Verification{}, fmt.Errorf("%s: %w", op, err)
	}

	v.Token, err = a.deps.Tokens.Issue(session, a.cfg.CustomerTokenTTL)
	if err != nil {
		return Verification{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// Register stores the customer behind a pending session. The mobile
// number comes from the verified session.
func (a Auth) Register(
	ctx context.Context, s domain.Session, c domain.Customer,
) (string, domain.Customer, error) {
	const op = "Auth.Register"

	if s.Registered() {
		return "", domain.Customer{}, fmt.Errorf("%s: %w: already registered",
			op, ErrUserExists)
	}
	if err := ctx.Err(); err != nil {
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	c.ID = 0
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Mobile = strings.TrimSpace(s.Mobile)
	if c.Mobile == "" {
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op,
			invalidArg("session has no mobile number"))
	}

	if err := a.ensureFree(ctx, "email", c.Email, a.deps.Customers.ByEmail); err != nil {
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := a.ensureFree(ctx, "mobile", c.Mobile, a.deps.Customers.ByMobile); err != nil {
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	customer, err := a.deps.Customers.Create(ctx, c)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = ErrUserExists
		}
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	registered := domain.Session{
		Subject: customer.ID,
		Role:    domain.RoleCustomer,
		Mobile:  customer.Mobile,
	}
	if a.deps.Carts != nil {
		a.deps.Carts.Move(s.CartKey(), registered.CartKey())
	}

	token, err := a.deps.Tokens.Issue(registered, a.cfg.CustomerTokenTTL)
	if err != nil {
		return "", domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, customer, nil
}

func (a Auth) ensureFree(
	ctx context.Context,
	field, value string,
	lookup func(context.Context, string) (domain.Customer, error),
) error {
	if value == "" {
		return nil
	}
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s %q is taken", ErrUserExists, field, value)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (a Auth) Profile(ctx context.Context, s domain.Session) (domain.Customer, error) {
	const op = "Auth.Profile"
	if !s.Registered() {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}
	return read(ctx, op, func(ctx context.Context) (domain.Customer, error) {
		return a.deps.Customers.Get(ctx, s.Subject)
	})
}

// UpdateProfile changes personal details. Mobile stays bound to the session.
func (a Auth) UpdateProfile(
	ctx context.Context, s domain.Session, c domain.Customer,
) (domain.Customer, error) {
	const op = "Auth.UpdateProfile"
	if !s.Registered() {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}

	c.ID = s.Subject
	c.Mobile = s.Mobile
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	return read(ctx, op, func(ctx context.Context) (domain.Customer, error) {
		if c.Email != "" {
			other, err := a.deps.Customers.ByEmail(ctx, c.Email)
			switch {
			case err == nil && other.ID != c.ID:
				return domain.Customer{}, fmt.Errorf("%w: email %q is taken",
					ErrUserExists, c.Email)
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return domain.Customer{}, err
			}
		}
		return a.deps.Customers.Update(ctx, c)
	})
}

func (a Auth) Addresses(ctx context.Context, s domain.Session) ([]domain.Address, error) {
	const op = "Auth.Addresses"
	if !s.Registered() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}
	return read(ctx, op, func(ctx context.Context) ([]domain.Address, error) {
		return a.deps.Addresses.ListByCustomer(ctx, s.Subject)
	})
}

func (a Auth) AddAddress(
	ctx context.Context, s domain.Session, addr domain.Address,
) (domain.Address, error) {
	const op = "Auth.AddAddress"
	if !s.Registered() {
		return domain.Address{}, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}
	addr.ID = 0
	addr.CustomerID = s.Subject
	return read(ctx, op, func(ctx context.Context) (domain.Address, error) {
		return a.deps.Addresses.Create(ctx, addr)
	})
}

func (a Auth) Orders(ctx context.Context, s domain.Session) ([]domain.Order, error) {
	const op = "Auth.Orders"
	if !s.Registered() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}
	return read(ctx, op, func(ctx context.Context) ([]domain.Order, error) {
		return a.deps.Orders.ListByCustomer(ctx, s.Subject)
	})
}
