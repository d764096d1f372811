package httphandler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/metrics"
	"github.com/niksmo/storefront/internal/adapter/token"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T) token.Issuer {
	t.Helper()
	iss, err := token.NewIssuer("test-secret")
	require.NoError(t, err)
	return iss
}

func issue(t *testing.T, iss token.Issuer, s domain.Session) string {
	t.Helper()
	tok, err := iss.Issue(s, time.Hour)
	require.NoError(t, err)
	return tok
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler, mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestAllowJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"NoBody", "", "", http.StatusOK},
		{"JSON", "application/json; charset=utf-8", "{}", http.StatusOK},
		{"Multipart", "multipart/form-data; boundary=x", "--x--", http.StatusOK},
		{"PlainText", "text/plain", "hello", http.StatusUnsupportedMediaType},
		{"Missing", "", "hello", http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			AllowJSON(okHandler).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS("http://shop.test")(okHandler)

	t.Run("Preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/store/menu", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("Request", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/store/menu", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequireRole(t *testing.T) {
	iss := newIssuer(t)

	var got domain.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session(r)
		w.WriteHeader(http.StatusOK)
	})
	h := RequireRole(iss, domain.RoleAdmin)(next)

	serve := func(auth string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
		if auth != "" {
			r.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("MissingToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer garbage").Code)
	})

	t.Run("WrongRole", func(t *testing.T) {
		tok := issue(t, iss, domain.Session{Subject: 3, Role: domain.RoleCustomer})
		assert.Equal(t, http.StatusForbidden, serve("Bearer "+tok).Code)
	})

	t.Run("Admitted", func(t *testing.T) {
		tok := issue(t, iss, domain.Session{Subject: 7, Role: domain.RoleAdmin})
		w := serve("Bearer " + tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 7, got.Subject)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})
}

func TestInstrumentKeepsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	Instrument(mux).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/things/1", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestInstrumentCountsRejectedRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/instrumented", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := Chain(mux, Instrument, CORS("*"), AllowJSON)

	counter := func(method, pattern string, code int) float64 {
		return testutil.ToFloat64(
			metrics.HTTPRequests.WithLabelValues(method, pattern, strconv.Itoa(code)))
	}
	preflight := counter(http.MethodOptions, "unmatched", http.StatusNoContent)
	unsupported := counter(http.MethodPost, "unmatched", http.StatusUnsupportedMediaType)
	routed := counter(http.MethodPost, "POST /v1/instrumented", http.StatusCreated)

	do := func(r *http.Request) int {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent,
		do(httptest.NewRequest(http.MethodOptions, "/v1/instrumented", nil)))

	r := httptest.NewRequest(http.MethodPost, "/v1/instrumented", strings.NewReader("x"))
	r.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, do(r))

	r = httptest.NewRequest(http.MethodPost, "/v1/instrumented", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusCreated, do(r))

	assert.Equal(t, preflight+1, counter(http.MethodOptions, "unmatched", http.StatusNoContent))
	assert.Equal(t, unsupported+1,
		counter(http.MethodPost, "unmatched", http.StatusUnsupportedMediaType))
	assert.Equal(t, routed+1, counter(http.MethodPost, "POST /v1/instrumented", http.StatusCreated))
}
