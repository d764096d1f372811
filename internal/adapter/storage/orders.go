package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderRepository = (*Orders)(nil)

type Orders struct {
	s Storage
}

func NewOrders(s Storage) Orders {
	return Orders{s}
}

// CreateBatch inserts all order lines in one transaction.
func (r Orders) CreateBatch(
	ctx context.Context, vs []domain.Order,
) ([]domain.Order, error) {
	const op = "Orders.CreateBatch"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return call(ctx, r.s, op, func() ([]domain.Order, error) {
		return r.insertTx(ctx, vs)
	})
}

func (r Orders) insertTx(
	ctx context.Context, vs []domain.Order,
) (out []domain.Order, txErr error) {
	const op = "Orders.insertTx"
	log := slog.With("op", op)

	tx, err := r.s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}

	defer func() {
		if txErr == nil {
			if err := tx.Commit(); err != nil {
				out, txErr = nil, fmt.Errorf("failed to commit: %w", err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO orders (
			orderno, orderdate, userid, productdetailsid, quantity, amount,
			paymentstatus, deliverystatus, mobileno, emailaddress, address,
			username
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *;`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare stmt: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	out = make([]domain.Order, 0, len(vs))
	for _, v := range vs {
		var o domain.Order
		err := stmt.GetContext(ctx, &o,
			v.OrderNo, v.OrderDate, v.CustomerID, v.ProductDetailID,
			v.Quantity, v.Amount, v.PaymentStatus, v.DeliveryStatus,
			v.Mobile, v.Email, v.Address, v.Username,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r Orders) ListByCustomer(
	ctx context.Context, customerID int64,
) ([]domain.Order, error) {
	const op = "Orders.ListByCustomer"
	query := `
		SELECT * FROM orders
		WHERE userid = $1
		ORDER BY orderdate DESC, id;`
	return selectAll[domain.Order](ctx, r.s, op, query, customerID)
}
