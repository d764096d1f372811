package domain

import "time"

const (
	PaymentPending = "pending"
	DeliveryPlaced = "placed"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type (
	CartItem struct {
		ProductDetailID int64   `json:"productdetailid"`
		ProductID       int64   `json:"productid"`
		Name            string  `json:"productdetailname"`
		Picture         string  `json:"picture"`
		Price           float64 `json:"price"`
		OfferPrice      float64 `json:"offerprice"`
		Quantity        int     `json:"qty"`
	}

	Cart struct {
		Items []CartItem        `json:"items"`
		User  map[string]string `json:"user"`
		Total float64           `json:"total"`
	}

	Order struct {
		ID              int64     `json:"id" db:"id"`
		OrderNo         string    `json:"orderno" db:"orderno"`
		OrderDate       time.Time `json:"orderdate" db:"orderdate"`
		CustomerID      int64     `json:"userid" db:"userid"`
		ProductDetailID int64     `json:"productdetailsid" db:"productdetailsid"`
		Quantity        int       `json:"quantity" db:"quantity"`
		Amount          float64   `json:"amount" db:"amount"`
		PaymentStatus   string    `json:"paymentstatus" db:"paymentstatus"`
		DeliveryStatus  string    `json:"deliverystatus" db:"deliverystatus"`
		Mobile          string    `json:"mobileno" db:"mobileno"`
		Email           string    `json:"emailaddress" db:"emailaddress"`
		Address         string    `json:"address" db:"address"`
		Username        string    `json:"username" db:"username"`
	}
)

// LineTotal is the sale price times quantity.
func (i CartItem) LineTotal() float64 {
	price := i.Price
	if i.OfferPrice > 0 {
		price = i.OfferPrice
	}
	return price * float64(i.Quantity)
}

type CatalogEvent struct {
	Entity     string
	EntityID   int64
	Action     string
	OccurredAt time.Time
}

type OrderPlacedEvent struct {
	OrderNo         string
	ProductDetailID int64
	CustomerID      int64
	Quantity        int
	OccurredAt      time.Time
}
