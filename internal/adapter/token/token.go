package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.TokenIssuer = (*Issuer)(nil)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

type claims struct {
	Role   string `json:"role"`
	Mobile string `json:"mobile,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) (Issuer, error) {
	const op = "token.NewIssuer"
	if secret == "" {
		return Issuer{}, fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}
	return Issuer{secret: []byte(secret), now: time.Now}, nil
}

func (i Issuer) Issue(s domain.Session, ttl time.Duration) (string, error) {
	const op = "Issuer.Issue"

	now := i.now()
	c := claims{
		Role:   s.Role,
		Mobile: s.Mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.Subject != 0 {
		c.Subject = strconv.FormatInt(s.Subject, 10)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

func (i Issuer) Verify(token string) (domain.Session, error) {
	const op = "Issuer.Verify"

	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	s := domain.Session{Role: c.Role, Mobile: c.Mobile}
	if c.Subject != "" {
		s.Subject, err = strconv.ParseInt(c.Subject, 10, 64)
		if err != nil {
			return domain.Session{}, fmt.Errorf("%s: %w: subject", op, ErrInvalidToken)
		}
	}

	if s.Role != domain.RoleAdmin && s.Role != domain.RoleCustomer {
		return domain.Session{}, fmt.Errorf("%s: %w: role %q", op, ErrInvalidToken, s.Role)
	}
	return s, nil
}
