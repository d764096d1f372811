package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

const dateLayout = "2006-01-02"

type (
	CategoryInput struct {
		Name   string `json:"categoryname" validate:"required,max=100"`
		Status string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	SubcategoryInput struct {
		CategoryID int64  `json:"categoryid" validate:"required,gt=0"`
		Name       string `json:"subcategoryname" validate:"required,max=100"`
		Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	BrandInput struct {
		CategoryID    int64  `json:"categoryid" validate:"required,gt=0"`
		SubcategoryID int64  `json:"subcategoryid" validate:"required,gt=0"`
		Name          string `json:"brandname" validate:"required,max=100"`
		Status        string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	ProductInput struct {
		CategoryID    int64  `json:"categoryid" validate:"required,gt=0"`
		SubcategoryID int64  `json:"subcategoryid" validate:"required,gt=0"`
		BrandID       int64  `json:"brandid" validate:"required,gt=0"`
		Name          string `json:"productname" validate:"required,max=200"`
		Description   string `json:"productdescription" validate:"max=2000"`
		Status        string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	ProductDetailInput struct {
		CategoryID    int64   `json:"categoryid" validate:"required,gt=0"`
		SubcategoryID int64   `json:"subcategoryid" validate:"required,gt=0"`
		BrandID       int64   `json:"brandid" validate:"required,gt=0"`
		ProductID     int64   `json:"productid" validate:"required,gt=0"`
		Name          string  `json:"productdetailname" validate:"required,max=200"`
		Weight        float64 `json:"weight" validate:"gte=0"`
		WeightType    string  `json:"weighttype" validate:"max=20"`
		PackagingType string  `json:"packagingtype" validate:"max=50"`
		Quantity      int     `json:"noofqty" validate:"gte=0"`
		Stock         int     `json:"stock" validate:"gte=0"`
		Price         float64 `json:"price" validate:"gt=0"`
		OfferPrice    float64 `json:"offerprice" validate:"gte=0,ltefield=Price"`
		OfferType     string  `json:"offertype" validate:"max=50"`
		Status        string  `json:"productstatus" validate:"omitempty,oneof=active inactive"`
		Description   string  `json:"productdetaildescription" validate:"max=2000"`
	}

	BannerInput struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"max=2000"`
		Status      string `json:"status" validate:"omitempty,oneof=show hide"`
	}

	AdOfferInput struct {
		CategoryID    int64  `json:"categoryid" validate:"gte=0"`
		SubcategoryID int64  `json:"subcategoryid" validate:"gte=0"`
		BrandID       int64  `json:"brandid" validate:"gte=0"`
		ProductID     int64  `json:"productid" validate:"gte=0"`
		Status        string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	BankOfferInput struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"max=2000"`
		OfferType   string `json:"offer_type" validate:"required,max=50"`
		Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
		ValidUntil  string `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	}
)

func (in CategoryInput) toDomain() domain.Category {
	return domain.Category{Name: in.Name, Status: in.Status}
}

func (in SubcategoryInput) toDomain() domain.Subcategory {
	return domain.Subcategory{CategoryID: in.CategoryID, Name: in.Name, Status: in.Status}
}

func (in BrandInput) toDomain() domain.Brand {
	return domain.Brand{
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		Name:          in.Name,
		Status:        in.Status,
	}
}

func (in ProductInput) toDomain() domain.Product {
	return domain.Product{
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		BrandID:       in.BrandID,
		Name:          in.Name,
		Description:   in.Description,
		Status:        in.Status,
	}
}

func (in ProductDetailInput) toDomain() domain.ProductDetail {
	return domain.ProductDetail{
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		BrandID:       in.BrandID,
		ProductID:     in.ProductID,
		Name:          in.Name,
		Weight:        in.Weight,
		WeightType:    in.WeightType,
		PackagingType: in.PackagingType,
		Quantity:      in.Quantity,
		Stock:         in.Stock,
		Price:         in.Price,
		OfferPrice:    in.OfferPrice,
		OfferType:     in.OfferType,
		Status:        in.Status,
		Description:   in.Description,
	}
}

func (in BannerInput) toDomain() domain.Banner {
	return domain.Banner{Title: in.Title, Description: in.Description, Status: in.Status}
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func (in AdOfferInput) toDomain() domain.AdOffer {
	return domain.AdOffer{
		CategoryID:    optionalID(in.CategoryID),
		SubcategoryID: optionalID(in.SubcategoryID),
		BrandID:       optionalID(in.BrandID),
		ProductID:     optionalID(in.ProductID),
		Status:        in.Status,
	}
}

// toDomain expects ValidUntil to have passed validation.
func (in BankOfferInput) toDomain() domain.BankOffer {
	v := domain.BankOffer{
		Title:       in.Title,
		Description: in.Description,
		OfferType:   in.OfferType,
		Status:      in.Status,
	}
	if in.ValidUntil != "" {
		if t, err := time.Parse(dateLayout, in.ValidUntil); err == nil {
			v.ValidUntil = &t
		}
	}
	return v
}

type (
	AdminLoginInput struct {
		Login    string `json:"login" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	AdminRegisterInput struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"emailid" validate:"required,email"`
		Mobile   string `json:"mobileno" validate:"required,numeric,min=6,max=15"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	OTPRequestInput struct {
		Mobile string `json:"mobileno" validate:"required,numeric,min=6,max=15"`
	}

	OTPVerifyInput struct {
		Mobile string `json:"mobileno" validate:"required,numeric,min=6,max=15"`
		Code   string `json:"otp" validate:"required,numeric"`
	}

	CustomerInput struct {
		FirstName string `json:"firstname" validate:"required,max=100"`
		LastName  string `json:"lastname" validate:"max=100"`
		Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
		Email     string `json:"emailaddress" validate:"required,email"`
		DOB       string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	}

	AddressInput struct {
		Pincode  string `json:"pincode" validate:"required,max=12"`
		HouseNo  string `json:"houseno" validate:"max=50"`
		FloorNo  string `json:"floorno" validate:"max=50"`
		TowerNo  string `json:"towerno" validate:"max=50"`
		Building string `json:"building" validate:"max=100"`
		Address  string `json:"address" validate:"required,max=300"`
		Landmark string `json:"landmark" validate:"max=100"`
		City     string `json:"city" validate:"required,max=100"`
		State    string `json:"state" validate:"required,max=100"`
	}

	CartItemInput struct {
		Quantity int `json:"qty" validate:"gte=0,lte=1000"`
	}

	CheckoutInput struct {
		AddressID int64 `json:"addressid" validate:"required,gt=0"`
	}
)

func (in AdminRegisterInput) toDomain() domain.Admin {
	return domain.Admin{Name: in.Name, Email: in.Email, Mobile: in.Mobile}
}

func (in CustomerInput) toDomain() domain.Customer {
	return domain.Customer{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Gender:    in.Gender,
		Email:     in.Email,
		DOB:       in.DOB,
	}
}

func (in AddressInput) toDomain() domain.Address {
	return domain.Address{
		Pincode:  in.Pincode,
		HouseNo:  in.HouseNo,
		FloorNo:  in.FloorNo,
		TowerNo:  in.TowerNo,
		Building: in.Building,
		Address:  in.Address,
		Landmark: in.Landmark,
		City:     in.City,
		State:    in.State,
	}
}
