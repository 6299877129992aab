package repository

import (
	"context"
	"errors"
	"time"

	"shop-service/internal/domain"
)

var (
	ErrAlreadyFinalized = errors.New("order already finalized")
	ErrUnknownProduct   = errors.New("product does not exist")
)

// LineFilter selects order lines either by order id or by customer and
// order status.
type LineFilter struct {
	OrderID    uint64
	CustomerID uint64
	Status     domain.OrderStatus
}

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID uint64, status domain.OrderStatus) ([]domain.Order, error)
	FindHistory(ctx context.Context, customerID uint64, limit int) ([]domain.Order, error)
	FindUnfinalized(ctx context.Context, orderedBefore time.Time, limit int) ([]domain.Order, error)

	Lines(ctx context.Context, w domain.Window, f LineFilter) ([]domain.OrderLine, error)
	FindLine(ctx context.Context, orderID, productID uint64) (*domain.OrderDetail, error)
	// AddLine and SetLineQty return ErrUnknownProduct when the line's
	// product is not in the catalog.
	AddLine(ctx context.Context, line *domain.OrderDetail) (int64, error)
	SetLineQty(ctx context.Context, line *domain.OrderDetail) (int64, error)
	DeleteLine(ctx context.Context, orderID, productID uint64) (int64, error)

	// Checkout writes addresses, payment and the order update atomically and
	// returns the number of order rows moved out of Basket.
	Checkout(ctx context.Context, c *domain.Checkout) (int64, error)
	// Finalize claims the order and applies the plan in one transaction.
	// It returns ErrAlreadyFinalized if another run got there first.
	Finalize(ctx context.Context, plan *domain.FinalizationPlan) error

	FindAddress(ctx context.Context, id uint64) (*domain.Address, error)
	FindPayment(ctx context.Context, id uint64) (*domain.Payment, error)
}
