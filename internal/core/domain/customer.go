package domain

import (
	"strconv"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type (
	Admin struct {
		ID           int64     `json:"id" db:"id"`
		Name         string    `json:"name" db:"name"`
		Email        string    `json:"emailid" db:"emailid"`
		Mobile       string    `json:"mobileno" db:"mobileno"`
		PasswordHash string    `json:"-" db:"password"`
		Status       string    `json:"status" db:"status"`
		CreatedAt    time.Time `json:"created_at" db:"created_at"`
		UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	}

	Customer struct {
		ID        int64     `json:"userid" db:"userid"`
		FirstName string    `json:"firstname" db:"firstname"`
		LastName  string    `json:"lastname" db:"lastname"`
		Gender    string    `json:"gender" db:"gender"`
		Email     string    `json:"emailaddress" db:"emailaddress"`
		DOB       string    `json:"dob" db:"dob"`
		Mobile    string    `json:"mobileno" db:"mobileno"`
		CreatedAt time.Time `json:"createdat" db:"createdat"`
		UpdatedAt time.Time `json:"updatedat" db:"updatedat"`
	}

	Address struct {
		ID         int64  `json:"id" db:"id"`
		CustomerID int64  `json:"userid" db:"userid"`
		Pincode    string `json:"pincode" db:"pincode"`
		HouseNo    string `json:"houseno" db:"houseno"`
		FloorNo    string `json:"floorno" db:"floorno"`
		TowerNo    string `json:"towerno" db:"towerno"`
		Building   string `json:"building" db:"building"`
		Address    string `json:"address" db:"address"`
		Landmark   string `json:"landmark" db:"landmark"`
		City       string `json:"city" db:"city"`
		State      string `json:"state" db:"state"`
	}
)

// FullName joins first and last name.
func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Line is a single-line rendering used on orders.
func (a Address) Line() string {
	parts := []string{a.HouseNo, a.FloorNo, a.TowerNo, a.Building, a.Address,
		a.Landmark, a.City, a.State, a.Pincode}
	line := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if line != "" {
			line += ", "
		}
		line += p
	}
	return line
}

// Session is the authenticated principal of a request.
type Session struct {
	Subject int64
	Role    string
	Mobile  string
}

// Registered reports whether a customer session belongs to a stored customer.
func (s Session) Registered() bool {
	return s.Subject != 0
}

// CartKey identifies the session cart. Pending sessions are keyed by mobile.
func (s Session) CartKey() string {
	if s.Registered() {
		return "c:" + strconv.FormatInt(s.Subject, 10)
	}
	return "m:" + s.Mobile
}
