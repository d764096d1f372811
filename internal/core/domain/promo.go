package domain

import "time"

type (
	Banner struct {
		ID          int64     `json:"id" db:"id"`
		Title       string    `json:"title" db:"title"`
		Description string    `json:"description" db:"description"`
		Status      string    `json:"status" db:"status"`
		Filenames   []string  `json:"filenames" db:"-"`
		CreatedAt   time.Time `json:"created_at" db:"created_at"`
		UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	}

	AdOffer struct {
		ID            int64     `json:"id" db:"id"`
		CategoryID    *int64    `json:"categoryid" db:"categoryid"`
		SubcategoryID *int64    `json:"subcategoryid" db:"subcategoryid"`
		BrandID       *int64    `json:"brandid" db:"brandid"`
		ProductID     *int64    `json:"productid" db:"productid"`
		Status        string    `json:"status" db:"status"`
		Filenames     []string  `json:"filenames" db:"-"`
		CreatedAt     time.Time `json:"created_at" db:"created_at"`
		UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	}

	BankOffer struct {
		ID          int64      `json:"id" db:"id"`
		Title       string     `json:"title" db:"title"`
		Description string     `json:"description" db:"description"`
		OfferType   string     `json:"offer_type" db:"offer_type"`
		Status      string     `json:"status" db:"status"`
		ValidUntil  *time.Time `json:"valid_until" db:"valid_until"`
		Filenames   []string   `json:"filenames" db:"-"`
		CreatedAt   time.Time  `json:"created_at" db:"created_at"`
		UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	}
)

type AdOfferFilter struct {
	CategoryID    int64
	SubcategoryID int64
	BrandID       int64
	ProductID     int64
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

var BankOfferSortFields = []string{"created_at", "title", "valid_until"}

// DefaultBankOfferTypes is served when no stored offer carries a type.
var DefaultBankOfferTypes = []string{"bank", "credit_card", "loan", "investment"}

type BankOfferFilter struct {
	Status string
	Type   string
	Page   int
	Limit  int
	SortBy string
	Desc   bool
}

// Offset is the number of rows skipped before the page.
func (f BankOfferFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type BankOfferPage struct {
	Items      []BankOffer `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}
