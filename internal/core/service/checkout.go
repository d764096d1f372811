package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type CheckoutDeps struct {
	Carts     *cart.Store
	Details   port.ProductDetailRepository
	Customers port.CustomerRepository
	Addresses port.AddressRepository
	Orders    port.OrderRepository
	Events    port.OrderEventPublisher
}

// Checkout owns the session carts and turns them into orders.
type Checkout struct {
	deps    CheckoutDeps
	now     func() time.Time
	orderNo func() string
}

func NewCheckout(deps CheckoutDeps) Checkout {
	return Checkout{deps: deps, now: time.Now, orderNo: uuid.NewString}
}

func (c Checkout) Cart(s domain.Session) domain.Cart {
	return c.deps.Carts.Snapshot(s.CartKey())
}

// SetItem puts qty units of a product detail into the cart. A quantity of
// zero removes the line.
func (c Checkout) SetItem(
	ctx context.Context, s domain.Session, detailID int64, qty int,
) (domain.Cart, error) {
	const op = "Checkout.SetItem"

	if qty < 0 {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, invalidArg("quantity must not be negative"))
	}
	key := s.CartKey()
	if qty == 0 {
		c.deps.Carts.RemoveItem(key, detailID)
		return c.deps.Carts.Snapshot(key), nil
	}

	d, err := read(ctx, op, func(ctx context.Context) (domain.ProductDetail, error) {
		return c.deps.Details.Get(ctx, detailID)
	})
	if err != nil {
		return domain.Cart{}, err
	}
	if d.Status != domain.StatusActive {
		return domain.Cart{}, fmt.Errorf("%s: %w", op,
			invalidArg("product detail %d is not on sale", detailID))
	}
	if qty > d.Stock {
		return domain.Cart{}, fmt.Errorf("%s: %w", op,
			invalidArg("only %d of product detail %d in stock", d.Stock, detailID))
	}

	c.deps.Carts.AddItem(key, domain.CartItem{
		ProductDetailID: d.ID,
		ProductID:       d.ProductID,
		Name:            d.Name,
		Picture:         d.Picture,
		Price:           d.Price,
		OfferPrice:      d.OfferPrice,
		Quantity:        qty,
	})
	c.deps.Carts.AddUser(key, "mobileno", s.Mobile)
	return c.deps.Carts.Snapshot(key), nil
}

func (c Checkout) RemoveItem(s domain.Session, detailID int64) domain.Cart {
	key := s.CartKey()
	c.deps.Carts.RemoveItem(key, detailID)
	return c.deps.Carts.Snapshot(key)
}

func (c Checkout) Clear(s domain.Session) domain.Cart {
	key := s.CartKey()
	c.deps.Carts.Clear(key)
	return c.deps.Carts.Snapshot(key)
}

// PlaceOrder writes one order row per cart line under a shared order
// number and empties the cart.
func (c Checkout) PlaceOrder(
	ctx context.Context, s domain.Session, addressID int64,
) ([]domain.Order, error) {
	const op = "Checkout.PlaceOrder"
	log := slog.With("op", op)

	if !s.Registered() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotRegistered)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := s.CartKey()
	snapshot := c.deps.Carts.Snapshot(key)
	if len(snapshot.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	customer, err := c.deps.Customers.Get(ctx, s.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	addr, err := c.deps.Addresses.Get(ctx, s.Subject, addressID)
	if err != nil {
		return nil, fmt.Errorf("%s: address: %w", op, err)
	}

	orderNo := c.orderNo()
	now := c.now()
	rows := make([]domain.Order, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		rows = append(rows, domain.Order{
			OrderNo:         orderNo,
			OrderDate:       now,
			CustomerID:      customer.ID,
			ProductDetailID: item.ProductDetailID,
			Quantity:        item.Quantity,
			Amount:          item.LineTotal(),
			PaymentStatus:   domain.PaymentPending,
			DeliveryStatus:  domain.DeliveryPlaced,
			Mobile:          customer.Mobile,
			Email:           customer.Email,
			Address:         addr.Line(),
			Username:        customer.FullName(),
		})
	}

	orders, err := c.deps.Orders.CreateBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.deps.Carts.Clear(key)
	log.Info("order placed", "orderNo", orderNo, "lines", len(orders),
		"total", snapshot.Total)

	events := make([]domain.OrderPlacedEvent, 0, len(orders))
	for _, o := range orders {
		events = append(events, domain.OrderPlacedEvent{
			OrderNo:         o.OrderNo,
			ProductDetailID: o.ProductDetailID,
			CustomerID:      o.CustomerID,
			Quantity:        o.Quantity,
			OccurredAt:      now,
		})
	}
	err = c.deps.Events.PublishOrderPlaced(ctx, events)
	logPublishErr(op, err, "orderNo", orderNo)

	return orders, nil
}
