package httphandler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// multipartBody writes fields and one file per entry of files.
func multipartBody(
	t *testing.T, fields map[string]string, fileField string, files ...string,
) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range files {
		fw, err := mw.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func request(method, target, token string, body io.Reader, contentType string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCategoriesHandler(t *testing.T) {
	iss := newIssuer(t)
	adminToken := issue(t, iss, domain.Session{Subject: 7, Role: domain.RoleAdmin})

	setup := func() (*http.ServeMux, *MockCategoryService, *fakeFiles) {
		svc := &MockCategoryService{}
		files := &fakeFiles{}
		mux := http.NewServeMux()
		RegisterCategories(mux, svc, NewUploads(files, 1<<20),
			RequireRole(iss, domain.RoleAdmin))
		return mux, svc, files
	}

	t.Run("Create", func(t *testing.T) {
		mux, svc, files := setup()
		want := domain.Category{
			Name:      "Fruits",
			Status:    domain.StatusActive,
			Icon:      "stored-fruits.png",
			UpdatedBy: "admin:7",
		}
		created := want
		created.ID = 1
		svc.On("CreateCategory", mock.Anything, want).Return(created, nil).Once()

		body, ct := multipartBody(t,
			map[string]string{"categoryname": "Fruits", "status": "active"},
			"categoryicon", "fruits.png")
		w := serve(mux, request(http.MethodPost, "/v1/categories", adminToken, body, ct))

		assert.Equal(t, http.StatusCreated, w.Code)
		b := decodeBody(t, w)
		assert.True(t, b.Success)
		assert.Equal(t, "category created", b.Message)
		assert.Contains(t, string(b.Data), `"categoryid":1`)
		assert.Empty(t, files.removed)
		svc.AssertExpectations(t)
	})

	t.Run("CreateConflictDiscardsIcon", func(t *testing.T) {
		mux, svc, files := setup()
		svc.On("CreateCategory", mock.Anything, mock.Anything).
			Return(domain.Category{}, fmt.Errorf("Repo.Create: category %w", domain.ErrConflict)).
			Once()

		body, ct := multipartBody(t,
			map[string]string{"categoryname": "Fruits"}, "categoryicon", "fruits.png")
		w := serve(mux, request(http.MethodPost, "/v1/categories", adminToken, body, ct))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, []string{"stored-fruits.png"}, files.removed)
	})

	t.Run("CreateWithoutIcon", func(t *testing.T) {
		mux, svc, _ := setup()
		body, ct := multipartBody(t, map[string]string{"categoryname": "Fruits"}, "")
		w := serve(mux, request(http.MethodPost, "/v1/categories", adminToken, body, ct))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w).Message, "categoryicon")
		svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("CreateInvalidFields", func(t *testing.T) {
		mux, svc, _ := setup()
		body, ct := multipartBody(t,
			map[string]string{"status": "archived"}, "categoryicon", "fruits.png")
		w := serve(mux, request(http.MethodPost, "/v1/categories", adminToken, body, ct))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("Update", func(t *testing.T) {
		mux, svc, _ := setup()
		want := domain.Category{ID: 4, Name: "Dairy", UpdatedBy: "admin:7"}
		svc.On("UpdateCategory", mock.Anything, want).Return(want, nil).Once()

		w := serve(mux, request(http.MethodPut, "/v1/categories/4", adminToken,
			strings.NewReader(`{"categoryname":"Dairy"}`), "application/json"))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownJSONField", func(t *testing.T) {
		mux, _, _ := setup()
		w := serve(mux, request(http.MethodPut, "/v1/categories/4", adminToken,
			strings.NewReader(`{"categoryname":"Dairy","colour":"red"}`), "application/json"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetInvalidID", func(t *testing.T) {
		mux, _, _ := setup()
		w := serve(mux, request(http.MethodGet, "/v1/categories/abc", adminToken, nil, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetMissing", func(t *testing.T) {
		mux, svc, _ := setup()
		svc.On("Category", mock.Anything, int64(9)).
			Return(domain.Category{}, fmt.Errorf("category %w", domain.ErrNotFound)).Once()

		w := serve(mux, request(http.MethodGet, "/v1/categories/9", adminToken, nil, ""))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListCounts", func(t *testing.T) {
		mux, svc, _ := setup()
		svc.On("Categories", mock.Anything).
			Return([]domain.Category{{ID: 1}, {ID: 2}}, nil).Once()

		w := serve(mux, request(http.MethodGet, "/v1/categories", adminToken, nil, ""))
		require.Equal(t, http.StatusOK, w.Code)
		b := decodeBody(t, w)
		require.NotNil(t, b.Count)
		assert.Equal(t, 2, *b.Count)
	})

	t.Run("RequiresAdmin", func(t *testing.T) {
		mux, _, _ := setup()
		w := serve(mux, request(http.MethodGet, "/v1/categories", "", nil, ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStoreHandler(t *testing.T) {
	setup := func() (*http.ServeMux, *MockStorefront) {
		svc := &MockStorefront{}
		mux := http.NewServeMux()
		RegisterStore(mux, svc)
		return mux, svc
	}

	t.Run("Popularity", func(t *testing.T) {
		mux, svc := setup()
		svc.On("Popularity", mock.Anything, int64(5)).Return(int64(12), nil).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/product-details/5/popularity", "", nil, ""))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"productdetailid":5,"quantity":12}`, string(decodeBody(t, w).Data))
	})

	t.Run("PopularityUnknownDetail", func(t *testing.T) {
		mux, svc := setup()
		svc.On("Popularity", mock.Anything, int64(5)).
			Return(int64(0), fmt.Errorf("product detail %w", domain.ErrNotFound)).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/product-details/5/popularity", "", nil, ""))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("BankOffersQuery", func(t *testing.T) {
		mux, svc := setup()
		want := domain.BankOfferFilter{
			Status: "active", Type: "card", Page: 2, Limit: 5, SortBy: "title", Desc: true,
		}
		svc.On("BankOffers", mock.Anything, want).
			Return(domain.BankOfferPage{Page: 2, Limit: 5}, nil).Once()

		w := serve(mux, request(http.MethodGet,
			"/v1/store/bank-offers?status=active&type=card&page=2&limit=5&sort=title&order=desc",
			"", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("BankOffersBadQuery", func(t *testing.T) {
		mux, svc := setup()
		for _, q := range []string{"order=sideways", "page=two"} {
			w := serve(mux, request(http.MethodGet, "/v1/store/bank-offers?"+q, "", nil, ""))
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
		svc.AssertNotCalled(t, "BankOffers", mock.Anything, mock.Anything)
	})

	t.Run("BankOffersRejectedByService", func(t *testing.T) {
		mux, svc := setup()
		svc.On("BankOffers", mock.Anything, mock.Anything).
			Return(domain.BankOfferPage{}, fmt.Errorf("%w: limit", service.ErrInvalidArgument)).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/bank-offers?limit=500", "", nil, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BankOfferTypes", func(t *testing.T) {
		mux, svc := setup()
		svc.On("BankOfferTypes", mock.Anything).Return([]string{"bank", "loan"}, nil).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/bank-offers/types", "", nil, ""))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `["bank","loan"]`, string(decodeBody(t, w).Data))
		svc.AssertNotCalled(t, "BankOffers", mock.Anything, mock.Anything)
	})

	t.Run("AdOffersFilter", func(t *testing.T) {
		mux, svc := setup()
		svc.On("AdOffers", mock.Anything, domain.AdOfferFilter{CategoryID: 3, BrandID: 8}).
			Return([]domain.AdOffer{}, nil).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/ad-offers?categoryid=3&brandid=8", "", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ProductDetailsStatus", func(t *testing.T) {
		mux, svc := setup()
		svc.On("ProductDetails", mock.Anything, "inactive").
			Return([]domain.ProductDetail{{ID: 1}}, nil).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/product-details?status=inactive", "", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("UnavailableStorage", func(t *testing.T) {
		mux, svc := setup()
		svc.On("Menu", mock.Anything).
			Return(nil, errors.New("retries exhausted: conn refused")).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/menu", "", nil, ""))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCartHandler(t *testing.T) {
	iss := newIssuer(t)
	s := domain.Session{Subject: 9, Role: domain.RoleCustomer, Mobile: "9876543210"}
	customerToken := issue(t, iss, s)

	setup := func() (*http.ServeMux, *MockCheckout) {
		svc := &MockCheckout{}
		mux := http.NewServeMux()
		RegisterCart(mux, svc, RequireRole(iss, domain.RoleCustomer))
		return mux, svc
	}

	t.Run("RequiresCustomer", func(t *testing.T) {
		mux, _ := setup()
		adminToken := issue(t, iss, domain.Session{Subject: 1, Role: domain.RoleAdmin})

		w := serve(mux, request(http.MethodGet, "/v1/store/cart", adminToken, nil, ""))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("SetItem", func(t *testing.T) {
		mux, svc := setup()
		svc.On("SetItem", mock.Anything, s, int64(11), 3).
			Return(domain.Cart{Items: []domain.CartItem{{ProductDetailID: 11, Quantity: 3}}}, nil).
			Once()

		w := serve(mux, request(http.MethodPut, "/v1/store/cart/items/11", customerToken,
			strings.NewReader(`{"qty":3}`), "application/json"))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("RemoveItem", func(t *testing.T) {
		mux, svc := setup()
		svc.On("RemoveItem", s, int64(11)).Return(domain.Cart{}).Once()

		w := serve(mux, request(http.MethodDelete, "/v1/store/cart/items/11", customerToken, nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "item removed", decodeBody(t, w).Message)
	})

	t.Run("CheckoutEmptyCart", func(t *testing.T) {
		mux, svc := setup()
		svc.On("PlaceOrder", mock.Anything, s, int64(2)).
			Return(nil, fmt.Errorf("Checkout.PlaceOrder: %w", service.ErrEmptyCart)).Once()

		w := serve(mux, request(http.MethodPost, "/v1/store/checkout", customerToken,
			strings.NewReader(`{"addressid":2}`), "application/json"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "cart is empty", decodeBody(t, w).Message)
	})

	t.Run("Checkout", func(t *testing.T) {
		mux, svc := setup()
		svc.On("PlaceOrder", mock.Anything, s, int64(2)).
			Return([]domain.Order{{OrderNo: "o-1"}, {OrderNo: "o-1"}}, nil).Once()

		w := serve(mux, request(http.MethodPost, "/v1/store/checkout", customerToken,
			strings.NewReader(`{"addressid":2}`), "application/json"))
		require.Equal(t, http.StatusCreated, w.Code)
		b := decodeBody(t, w)
		require.NotNil(t, b.Count)
		assert.Equal(t, 2, *b.Count)
	})
}

func TestAccountHandler(t *testing.T) {
	iss := newIssuer(t)

	setup := func() (*http.ServeMux, *MockAccount) {
		svc := &MockAccount{}
		mux := http.NewServeMux()
		RegisterAccount(mux, svc, RequireRole(iss, domain.RoleCustomer))
		return mux, svc
	}

	t.Run("VerifyOTP", func(t *testing.T) {
		mux, svc := setup()
		svc.On("VerifyOTP", mock.Anything, "9876543210", "1234").
			Return(service.Verification{Token: "tok"}, nil).Once()

		w := serve(mux, request(http.MethodPost, "/v1/store/otp/verify", "",
			strings.NewReader(`{"mobileno":"9876543210","otp":"1234"}`), "application/json"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"tok","exists":false}`, string(decodeBody(t, w).Data))
	})

	t.Run("VerifyWrongOTP", func(t *testing.T) {
		mux, svc := setup()
		svc.On("VerifyOTP", mock.Anything, mock.Anything, mock.Anything).
			Return(service.Verification{}, service.ErrInvalidOTP).Once()

		w := serve(mux, request(http.MethodPost, "/v1/store/otp/verify", "",
			strings.NewReader(`{"mobileno":"9876543210","otp":"0000"}`), "application/json"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("RegisterUsesPendingSession", func(t *testing.T) {
		mux, svc := setup()
		pending := domain.Session{Role: domain.RoleCustomer, Mobile: "9876543210"}
		in := domain.Customer{FirstName: "Asha", Email: "asha@example.com"}
		svc.On("Register", mock.Anything, pending, in).
			Return("new-token", domain.Customer{ID: 5, FirstName: "Asha"}, nil).Once()

		w := serve(mux, request(http.MethodPost, "/v1/store/register", issue(t, iss, pending),
			strings.NewReader(`{"firstname":"Asha","emailaddress":"asha@example.com"}`),
			"application/json"))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decodeBody(t, w).Data), `"token":"new-token"`)
	})

	t.Run("ProfileNotRegistered", func(t *testing.T) {
		mux, svc := setup()
		pending := domain.Session{Role: domain.RoleCustomer, Mobile: "9876543210"}
		svc.On("Profile", mock.Anything, pending).
			Return(domain.Customer{}, service.ErrNotRegistered).Once()

		w := serve(mux, request(http.MethodGet, "/v1/store/me", issue(t, iss, pending), nil, ""))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	t.Run("Connected", func(t *testing.T) {
		w := serve(Health(pingFunc(func(context.Context) error { return nil })),
			httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"db":"connected"}`, string(decodeBody(t, w).Data))
	})

	t.Run("Down", func(t *testing.T) {
		w := serve(Health(pingFunc(func(context.Context) error { return errors.New("refused") })),
			httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, decodeBody(t, w).Success)
	})
}
