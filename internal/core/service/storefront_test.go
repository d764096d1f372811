package service

import (
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorefrontMenu(t *testing.T) {
	cats := new(MockCategories)
	subs := new(MockSubcategories)
	s := NewStorefront(CatalogRepos{Categories: cats, Subcategories: subs}, nil)

	cats.On("ListByStatus", mock.Anything, domain.StatusActive).Return([]domain.Category{
		{ID: 1, Name: "Fruits"},
		{ID: 2, Name: "Dairy"},
	}, nil).Once()
	subs.On("List", mock.Anything).Return([]domain.Subcategory{
		{ID: 10, CategoryID: 1, Name: "Apples", Status: domain.StatusActive},
		{ID: 11, CategoryID: 1, Name: "Pears", Status: domain.StatusInactive},
		{ID: 12, CategoryID: 3, Name: "Orphan", Status: domain.StatusActive},
	}, nil).Once()

	menu, err := s.Menu(t.Context())
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, "Fruits", menu[0].Name)
	require.Len(t, menu[0].Subcategories, 1)
	assert.Equal(t, "Apples", menu[0].Subcategories[0].Name)

	assert.Equal(t, "Dairy", menu[1].Name)
	assert.NotNil(t, menu[1].Subcategories)
	assert.Empty(t, menu[1].Subcategories)
}

func TestStorefrontBanners(t *testing.T) {
	banners := new(MockBanners)
	s := NewStorefront(CatalogRepos{Banners: banners}, nil)
	banners.On("ListByStatus", mock.Anything, domain.StatusShow).
		Return([]domain.Banner{{ID: 1}}, nil).Once()

	got, err := s.Banners(t.Context())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	banners.AssertExpectations(t)
}

func TestStorefrontActiveBankOffers(t *testing.T) {
	offers := new(MockBankOffers)
	s := NewStorefront(CatalogRepos{BankOffers: offers}, nil)
	s.now = func() time.Time { return fixedNow }

	want := domain.BankOfferFilter{Page: 1, Limit: 10, SortBy: "created_at"}
	offers.On("ListActive", mock.Anything, fixedNow, want).
		Return([]domain.BankOffer{{ID: 4}}, nil).Once()

	got, err := s.ActiveBankOffers(t.Context(), domain.BankOfferFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	offers.AssertExpectations(t)
}

func TestStorefrontBankOffersInvalidFilter(t *testing.T) {
	offers := new(MockBankOffers)
	s := NewStorefront(CatalogRepos{BankOffers: offers}, nil)

	_, err := s.BankOffers(t.Context(), domain.BankOfferFilter{Limit: 500})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	offers.AssertNotCalled(t, "Page", mock.Anything, mock.Anything)
}

func TestStorefrontBankOfferTypes(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		offers := new(MockBankOffers)
		s := NewStorefront(CatalogRepos{BankOffers: offers}, nil)
		offers.On("Types", mock.Anything).Return([]string{"cashback", "loan"}, nil).Once()

		got, err := s.BankOfferTypes(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"cashback", "loan"}, got)
	})

	t.Run("Defaults", func(t *testing.T) {
		offers := new(MockBankOffers)
		s := NewStorefront(CatalogRepos{BankOffers: offers}, nil)
		offers.On("Types", mock.Anything).Return([]string{}, nil).Once()

		got, err := s.BankOfferTypes(t.Context())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBankOfferTypes, got)

		got[0] = "changed"
		assert.Equal(t, "bank", domain.DefaultBankOfferTypes[0])
	})

	t.Run("Error", func(t *testing.T) {
		offers := new(MockBankOffers)
		s := NewStorefront(CatalogRepos{BankOffers: offers}, nil)
		offers.On("Types", mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := s.BankOfferTypes(t.Context())
		assert.ErrorContains(t, err, "Storefront.BankOfferTypes: db down")
	})
}

func TestStorefrontProductDetailsDefaultStatus(t *testing.T) {
	details := new(MockDetails)
	s := NewStorefront(CatalogRepos{Details: details}, nil)
	details.On("ListByStatus", mock.Anything, domain.StatusActive).
		Return([]domain.ProductDetail{}, nil).Once()

	_, err := s.ProductDetails(t.Context(), "")
	require.NoError(t, err)
	details.AssertExpectations(t)
}

func TestStorefrontPopularity(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		details := new(MockDetails)
		pop := new(MockPopularity)
		s := NewStorefront(CatalogRepos{Details: details}, pop)

		details.On("Get", mock.Anything, int64(8)).
			Return(domain.ProductDetail{ID: 8}, nil).Once()
		pop.On("Popularity", mock.Anything, int64(8)).Return(int64(42), nil).Once()

		n, err := s.Popularity(t.Context(), 8)
		require.NoError(t, err)
		assert.EqualValues(t, 42, n)
	})

	t.Run("UnknownDetail", func(t *testing.T) {
		details := new(MockDetails)
		pop := new(MockPopularity)
		s := NewStorefront(CatalogRepos{Details: details}, pop)

		details.On("Get", mock.Anything, int64(9)).
			Return(domain.ProductDetail{}, domain.ErrNotFound).Once()

		_, err := s.Popularity(t.Context(), 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		pop.AssertNotCalled(t, "Popularity", mock.Anything, mock.Anything)
	})
}
