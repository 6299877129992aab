package services

import (
	"context"
	"errors"
	"fmt"
	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNotBasket       = errors.New("order is no longer a basket")
	ErrNotOrdered      = errors.New("order has not been placed")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

const latestOrderLimit = 1

// OrderService drives a customer's order from Basket to Ordered and serves
// the order history.
type OrderService struct {
	repo     repository.OrderRepository
	receipts receiptBuilder
	now      Clock
	logger   *zap.Logger
}

func NewOrderService(r repository.OrderRepository, deliveries repository.DeliveryRepository, discounts repository.DiscountRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:     r,
		receipts: receiptBuilder{orders: r, deliveries: deliveries, discounts: discounts},
		now:      SystemClock,
		logger:   logger,
	}
}

func (u *OrderService) SetClock(c Clock) {
	u.now = c
}

func (u *OrderService) CreateBasket(ctx context.Context, customerID uint64) (*domain.Order, error) {
	order := &domain.Order{
		CustomerID: customerID,
		Status:     domain.StatusBasket,
	}
	if err := u.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("basket created", zap.Uint64("order_id", order.ID), zap.Uint64("customer_id", customerID))
	return order, nil
}

// EnsureBasket returns the customer's oldest open basket, creating one when
// there is none.
func (u *OrderService) EnsureBasket(ctx context.Context, customerID uint64) (*domain.Order, error) {
	baskets, err := u.repo.FindByCustomer(ctx, customerID, domain.StatusBasket)
	if err != nil {
		return nil, err
	}
	if len(baskets) > 0 {
		if len(baskets) > 1 {
			u.logger.Warn("customer has several baskets", zap.Uint64("customer_id", customerID), zap.Int("count", len(baskets)))
		}
		return &baskets[0], nil
	}
	return u.CreateBasket(ctx, customerID)
}

func (u *OrderService) FindOrders(ctx context.Context, customerID uint64, status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := u.repo.FindByCustomer(ctx, customerID, status)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// FindOrderForProduct lists the customer's baskets with the line for
// productID attached where the product is already in the basket.
func (u *OrderService) FindOrderForProduct(ctx context.Context, customerID, productID uint64) ([]domain.BasketProbe, error) {
	orders, err := u.repo.FindByCustomer(ctx, customerID, domain.StatusBasket)
	if err != nil {
		return nil, err
	}

	probes := make([]domain.BasketProbe, 0, len(orders))
	for _, o := range orders {
		line, err := u.repo.FindLine(ctx, o.ID, productID)
		if err != nil {
			return nil, err
		}
		probes = append(probes, domain.BasketProbe{Order: o, Line: line})
	}
	return probes, nil
}

// basketFor loads an order the customer owns and can still edit.
func (u *OrderService) basketFor(ctx context.Context, customerID, orderID uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	if o.Status != domain.StatusBasket {
		return nil, ErrNotBasket
	}
	return o, nil
}

// AddLine puts one unit of productID in the basket. Adding a product that is
// already there changes nothing and reports zero rows.
func (u *OrderService) AddLine(ctx context.Context, customerID, orderID, productID uint64) (int64, error) {
	if _, err := u.basketFor(ctx, customerID, orderID); err != nil {
		return 0, err
	}
	rows, err := u.repo.AddLine(ctx, &domain.OrderDetail{
		OrderID:   orderID,
		ProductID: productID,
		Qty:       1,
		DateAdded: u.now(),
	})
	return rows, lineError(err)
}

// SetLineQuantity sets the quantity of a basket line. Zero removes the line.
// Setting the same quantity twice leaves the same state.
func (u *OrderService) SetLineQuantity(ctx context.Context, customerID, orderID, productID uint64, qty int64) (int64, error) {
	if qty < 0 {
		return 0, ErrInvalidQuantity
	}
	if _, err := u.basketFor(ctx, customerID, orderID); err != nil {
		return 0, err
	}
	if qty == 0 {
		return u.repo.DeleteLine(ctx, orderID, productID)
	}
	rows, err := u.repo.SetLineQty(ctx, &domain.OrderDetail{
		OrderID:   orderID,
		ProductID: productID,
		Qty:       qty,
		DateAdded: u.now(),
	})
	return rows, lineError(err)
}

func lineError(err error) error {
	if errors.Is(err, repository.ErrUnknownProduct) {
		return ErrProductNotFound
	}
	return err
}

// ListBasket returns every line of the customer's orders in status, each
// tagged Active or Inactive by its own date_added against the current window.
func (u *OrderService) ListBasket(ctx context.Context, customerID uint64, status domain.OrderStatus) ([]domain.OrderLine, error) {
	if status == "" {
		status = domain.StatusBasket
	}
	w := domain.WindowAt(u.now())
	lines, err := u.repo.Lines(ctx, w, repository.LineFilter{CustomerID: customerID, Status: status})
	if err != nil {
		return nil, err
	}
	if lines == nil {
		return []domain.OrderLine{}, nil
	}
	for i := range lines {
		lines[i].VirtualStatus = w.Classify(lines[i].DateAdded)
	}
	return lines, nil
}

func (u *OrderService) PreviousOrders(ctx context.Context, customerID uint64) ([]domain.OrderSummary, error) {
	return u.history(ctx, customerID, 0)
}

// LatestOrder is the most recent placed order with its delivery address.
func (u *OrderService) LatestOrder(ctx context.Context, customerID uint64) (*domain.OrderSummary, error) {
	orders, err := u.history(ctx, customerID, latestOrderLimit)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	latest := &orders[0]
	if latest.DeliveryAddressID != nil {
		if latest.DeliveryAddress, err = u.repo.FindAddress(ctx, *latest.DeliveryAddressID); err != nil {
			return nil, err
		}
	}
	return latest, nil
}

func (u *OrderService) history(ctx context.Context, customerID uint64, limit int) ([]domain.OrderSummary, error) {
	orders, err := u.repo.FindHistory(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderSummary, 0, len(orders))
	for _, o := range orders {
		s := domain.OrderSummary{Order: o}
		if o.OrderDate != nil {
			s.OrderDateFormatted = domain.FormatDate(*o.OrderDate)
		}
		out = append(out, s)
	}
	return out, nil
}

// OrderDetails returns a placed order with its lines, each classified
// against the window that ended when the order was placed.
func (u *OrderService) OrderDetails(ctx context.Context, customerID, orderID uint64) (*domain.Receipt, error) {
	o, err := u.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}

	now := u.now()
	if o.OrderDate != nil {
		now = *o.OrderDate
	}
	w := domain.WindowAt(now)
	lines, err := u.repo.Lines(ctx, w, repository.LineFilter{OrderID: orderID})
	if err != nil {
		return nil, fmt.Errorf("order %d lines: %w", orderID, err)
	}
	for i := range lines {
		lines[i].VirtualStatus = w.Classify(lines[i].DateAdded)
	}
	return u.receipts.build(ctx, o, lines)
}
