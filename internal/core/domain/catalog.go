package domain

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusShow     = "show"
	StatusHide     = "hide"
)

type (
	Category struct {
		ID        int64     `json:"categoryid" db:"categoryid"`
		Name      string    `json:"categoryname" db:"categoryname"`
		Icon      string    `json:"categoryicon" db:"categoryicon"`
		Status    string    `json:"status" db:"status"`
		UpdatedBy string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
		UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	}

	Subcategory struct {
		ID           int64     `json:"subcategoryid" db:"subcategoryid"`
		CategoryID   int64     `json:"categoryid" db:"categoryid"`
		Name         string    `json:"subcategoryname" db:"subcategoryname"`
		Icon         string    `json:"subcategoryicon" db:"subcategoryicon"`
		Status       string    `json:"status" db:"status"`
		UpdatedBy    string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt    time.Time `json:"created_at" db:"created_at"`
		UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
		CategoryName string    `json:"categoryname" db:"-"`
	}

	Brand struct {
		ID              int64     `json:"brandid" db:"brandid"`
		CategoryID      int64     `json:"categoryid" db:"categoryid"`
		SubcategoryID   int64     `json:"subcategoryid" db:"subcategoryid"`
		Name            string    `json:"brandname" db:"brandname"`
		Icon            string    `json:"brandicon" db:"brandicon"`
		Status          string    `json:"status" db:"status"`
		UpdatedBy       string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt       time.Time `json:"created_at" db:"created_at"`
		UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
		CategoryName    string    `json:"categoryname" db:"-"`
		SubcategoryName string    `json:"subcategoryname" db:"-"`
	}

	Product struct {
		ID              int64     `json:"productid" db:"productid"`
		CategoryID      int64     `json:"categoryid" db:"categoryid"`
		SubcategoryID   int64     `json:"subcategoryid" db:"subcategoryid"`
		BrandID         int64     `json:"brandid" db:"brandid"`
		Name            string    `json:"productname" db:"productname"`
		Description     string    `json:"productdescription" db:"productdescription"`
		Picture         string    `json:"picture" db:"picture"`
		Status          string    `json:"status" db:"status"`
		UpdatedBy       string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt       time.Time `json:"created_at" db:"created_at"`
		UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
		CategoryName    string    `json:"categoryname" db:"-"`
		SubcategoryName string    `json:"subcategoryname" db:"-"`
		BrandName       string    `json:"brandname" db:"-"`
	}

	ProductDetail struct {
		ID              int64     `json:"productdetailid" db:"productdetailid"`
		CategoryID      int64     `json:"categoryid" db:"categoryid"`
		SubcategoryID   int64     `json:"subcategoryid" db:"subcategoryid"`
		BrandID         int64     `json:"brandid" db:"brandid"`
		ProductID       int64     `json:"productid" db:"productid"`
		Name            string    `json:"productdetailname" db:"productdetailname"`
		Weight          float64   `json:"weight" db:"weight"`
		WeightType      string    `json:"weighttype" db:"weighttype"`
		PackagingType   string    `json:"packagingtype" db:"packagingtype"`
		Quantity        int       `json:"noofqty" db:"noofqty"`
		Stock           int       `json:"stock" db:"stock"`
		Price           float64   `json:"price" db:"price"`
		OfferPrice      float64   `json:"offerprice" db:"offerprice"`
		OfferType       string    `json:"offertype" db:"offertype"`
		Status          string    `json:"productstatus" db:"productstatus"`
		Description     string    `json:"productdetaildescription" db:"productdetaildescription"`
		Picture         string    `json:"picture" db:"picture"`
		UpdatedBy       string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt       time.Time `json:"created_at" db:"created_at"`
		UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
		CategoryName    string    `json:"categoryname" db:"-"`
		SubcategoryName string    `json:"subcategoryname" db:"-"`
		BrandName       string    `json:"brandname" db:"-"`
		ProductName     string    `json:"productname" db:"-"`
	}

	ProductPictures struct {
		ID              int64     `json:"id" db:"id"`
		CategoryID      int64     `json:"categoryid" db:"categoryid"`
		SubcategoryID   int64     `json:"subcategoryid" db:"subcategoryid"`
		BrandID         int64     `json:"brandid" db:"brandid"`
		ProductID       int64     `json:"productid" db:"productid"`
		ProductDetailID int64     `json:"productdetailid" db:"productdetailid"`
		Filenames       []string  `json:"filenames" db:"-"`
		UpdatedBy       string    `json:"user_admin,omitempty" db:"user_admin"`
		CreatedAt       time.Time `json:"created_at" db:"created_at"`
		UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	}
)

// SalePrice is the offer price when one is set.
func (d ProductDetail) SalePrice() float64 {
	if d.OfferPrice > 0 {
		return d.OfferPrice
	}
	return d.Price
}

// Names holds display names for referenced catalog ids.
type Names struct {
	Categories    map[int64]string
	Subcategories map[int64]string
	Brands        map[int64]string
	Products      map[int64]string
}

// MenuCategory is a category with its subcategories.
type MenuCategory struct {
	Category
	Subcategories []Subcategory `json:"subcategories"`
}
