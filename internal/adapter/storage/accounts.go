package storage

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.AdminRepository    = (*Admins)(nil)
	_ port.CustomerRepository = (*Customers)(nil)
	_ port.AddressRepository  = (*Addresses)(nil)
)

type Admins struct {
	s Storage
}

func NewAdmins(s Storage) Admins {
	return Admins{s}
}

func (r Admins) Create(ctx context.Context, v domain.Admin) (domain.Admin, error) {
	const op = "Admins.Create"
	query := `
		INSERT INTO admins (name, emailid, mobileno, password, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *;`
	return getOne[domain.Admin](ctx, r.s, op, query,
		v.Name, v.Email, v.Mobile, v.PasswordHash, v.Status)
}

func (r Admins) Get(ctx context.Context, id int64) (domain.Admin, error) {
	const op = "Admins.Get"
	query := `SELECT * FROM admins WHERE id = $1;`
	return getOne[domain.Admin](ctx, r.s, op, query, id)
}

// ByLogin finds an admin by email or mobile number.
func (r Admins) ByLogin(ctx context.Context, login string) (domain.Admin, error) {
	const op = "Admins.ByLogin"
	query := `
		SELECT * FROM admins
		WHERE lower(emailid) = lower($1) OR mobileno = $1
		LIMIT 1;`
	return getOne[domain.Admin](ctx, r.s, op, query, login)
}

type Customers struct {
	s Storage
}

func NewCustomers(s Storage) Customers {
	return Customers{s}
}

func (r Customers) Create(
	ctx context.Context, v domain.Customer,
) (domain.Customer, error) {
	const op = "Customers.Create"
	query := `
		INSERT INTO userdata (
			firstname, lastname, gender, emailaddress, dob, mobileno
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *;`
	return getOne[domain.Customer](ctx, r.s, op, query,
		v.FirstName, v.LastName, v.Gender, v.Email, v.DOB, v.Mobile)
}

func (r Customers) Update(
	ctx context.Context, v domain.Customer,
) (domain.Customer, error) {
	const op = "Customers.Update"
	query := `
		UPDATE userdata
		SET firstname = $2, lastname = $3, gender = $4, emailaddress = $5,
			dob = $6, updatedat = now()
		WHERE userid = $1
		RETURNING *;`
	return getOne[domain.Customer](ctx, r.s, op, query,
		v.ID, v.FirstName, v.LastName, v.Gender, v.Email, v.DOB)
}

func (r Customers) Get(ctx context.Context, id int64) (domain.Customer, error) {
	const op = "Customers.Get"
	query := `SELECT * FROM userdata WHERE userid = $1;`
	return getOne[domain.Customer](ctx, r.s, op, query, id)
}

func (r Customers) ByMobile(
	ctx context.Context, mobile string,
) (domain.Customer, error) {
	const op = "Customers.ByMobile"
	query := `SELECT * FROM userdata WHERE mobileno = $1;`
	return getOne[domain.Customer](ctx, r.s, op, query, mobile)
}

func (r Customers) ByEmail(
	ctx context.Context, email string,
) (domain.Customer, error) {
	const op = "Customers.ByEmail"
	query := `SELECT * FROM userdata WHERE emailaddress = $1;`
	return getOne[domain.Customer](ctx, r.s, op, query, email)
}

type Addresses struct {
	s Storage
}

func NewAddresses(s Storage) Addresses {
	return Addresses{s}
}

func (r Addresses) Create(
	ctx context.Context, v domain.Address,
) (domain.Address, error) {
	const op = "Addresses.Create"
	query := `
		INSERT INTO useraddress (
			userid, pincode, houseno, floorno, towerno, building,
			address, landmark, city, state
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *;`
	return getOne[domain.Address](ctx, r.s, op, query,
		v.CustomerID, v.Pincode, v.HouseNo, v.FloorNo, v.TowerNo, v.Building,
		v.Address, v.Landmark, v.City, v.State)
}

func (r Addresses) Get(
	ctx context.Context, customerID, id int64,
) (domain.Address, error) {
	const op = "Addresses.Get"
	query := `SELECT * FROM useraddress WHERE userid = $1 AND id = $2;`
	return getOne[domain.Address](ctx, r.s, op, query, customerID, id)
}

func (r Addresses) ListByCustomer(
	ctx context.Context, customerID int64,
) ([]domain.Address, error) {
	const op = "Addresses.ListByCustomer"
	query := `SELECT * FROM useraddress WHERE userid = $1 ORDER BY id;`
	return selectAll[domain.Address](ctx, r.s, op, query, customerID)
}
