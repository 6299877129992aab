package services

import (
	"context"
	"errors"
	"fmt"
	"shop-service/internal/domain"
	rabbit "shop-service/internal/infra/rabbitmq"
	"shop-service/internal/repository"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PatternEmail          = "notification.email"
	PatternOrderFinalized = "order.finalized"

	reconcileBatchSize   = 50
	reconcileConcurrency = 4
)

var (
	ErrCustomerRequired = errors.New("customer session required")
	ErrInvalidCheckout  = errors.New("invalid checkout")
)

// PlaceOrderResult is returned as soon as the order has left the basket.
type PlaceOrderResult struct {
	OrderDetail int64  `json:"orderDetail"`
	UserEmail   string `json:"userEmail"`
}

// CheckoutService turns a basket into an order and finalizes it: active
// lines are taken off stock, stale lines go to favourites, and the customer
// is emailed.
type CheckoutService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	discounts repository.DiscountRepository
	receipts  receiptBuilder
	publisher rabbit.PublisherInterface
	mail      MailSettings
	now       Clock
	grace     time.Duration
	dispatch  func(func())
	inflight  sync.WaitGroup
	logger    *zap.Logger
}

func NewCheckoutService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	deliveries repository.DeliveryRepository,
	discounts repository.DiscountRepository,
	pub rabbit.PublisherInterface,
	mail MailSettings,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		customers: customers,
		discounts: discounts,
		receipts:  receiptBuilder{orders: orders, deliveries: deliveries, discounts: discounts},
		publisher: pub,
		mail:      mail,
		now:       SystemClock,
		grace:     30 * time.Second,
		dispatch:  func(f func()) { go f() },
		logger:    logger,
	}
}

func (s *CheckoutService) SetClock(c Clock) {
	s.now = c
}

// SetDispatcher replaces how post-checkout work is started. The default runs
// it on a new goroutine.
func (s *CheckoutService) SetDispatcher(d func(func())) {
	s.dispatch = d
}

// Drain waits for post-checkout work that is still running, or for ctx to
// end. Orders it gives up on are left to the reconciler.
func (s *CheckoutService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetReconcileGrace sets how old an unfinalized order must be before the
// reconciler picks it up.
func (s *CheckoutService) SetReconcileGrace(d time.Duration) {
	s.grace = d
}

// PlaceOrder records addresses and payment and moves the order to Ordered in
// one transaction. Finalization and the confirmation email run afterwards
// and never affect the result.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID uint64, c *domain.Checkout) (*PlaceOrderResult, error) {
	if customerID == 0 {
		return nil, ErrCustomerRequired
	}
	if c.OrderID == 0 {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidCheckout)
	}
	if c.Payment.Total.IsNegative() {
		return nil, fmt.Errorf("%w: payment total must not be negative", ErrInvalidCheckout)
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if c.DiscountID != nil {
		d, err := s.discounts.FindByID(ctx, *c.DiscountID)
		if err != nil {
			return nil, err
		}
		if d == nil || !d.Active {
			return nil, ErrDiscountNotFound
		}
	}

	c.CustomerID = customerID
	c.OrderDate = s.now()
	rows, err := s.orders.Checkout(ctx, c)
	if err != nil {
		return nil, err
	}

	result := &PlaceOrderResult{OrderDetail: rows, UserEmail: customer.Email}
	if rows == 0 {
		return result, nil
	}

	s.logger.Info("order placed", zap.Uint64("order_id", c.OrderID), zap.Uint64("customer_id", customerID))
	orderID, email := c.OrderID, customer.Email
	s.inflight.Add(1)
	s.dispatch(func() {
		defer s.inflight.Done()
		if err := s.complete(context.Background(), orderID, email); err != nil && !errors.Is(err, repository.ErrAlreadyFinalized) {
			s.logger.Error("complete order", zap.Uint64("order_id", orderID), zap.Error(err))
		}
	})
	return result, nil
}

// Finalize partitions an ordered basket by the window that ended at its
// order date and applies the partition. It runs at most once per order; a
// second call returns repository.ErrAlreadyFinalized.
func (s *CheckoutService) Finalize(ctx context.Context, orderID uint64) (*domain.FinalizationPlan, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == domain.StatusBasket || order.OrderDate == nil {
		return nil, ErrNotOrdered
	}
	if order.FinalizedAt != nil {
		return nil, repository.ErrAlreadyFinalized
	}

	w := domain.WindowAt(*order.OrderDate)
	lines, err := s.orders.Lines(ctx, w, repository.LineFilter{OrderID: orderID})
	if err != nil {
		return nil, err
	}

	plan := &domain.FinalizationPlan{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		FinalizedAt: s.now(),
	}
	for _, l := range lines {
		l.VirtualStatus = w.Classify(l.DateAdded)
		if l.VirtualStatus == domain.LineActive {
			plan.Active = append(plan.Active, l)
		} else {
			plan.Inactive = append(plan.Inactive, l)
		}
	}
	if len(plan.Active) == 0 {
		s.logger.Warn("order finalized with no active lines", zap.Uint64("order_id", orderID), zap.Int("inactive", len(plan.Inactive)))
	}

	if err := s.orders.Finalize(ctx, plan); err != nil {
		return nil, err
	}

	demoted := make([]uint64, 0, len(plan.Inactive))
	for _, l := range plan.Inactive {
		demoted = append(demoted, l.ProductID)
	}
	s.logger.Info("order finalized",
		zap.Uint64("order_id", orderID),
		zap.Int("active", len(plan.Active)),
		zap.Int("inactive", len(plan.Inactive)))

	evt := domain.OrderFinalizedEvent{
		OrderID:     plan.OrderID,
		CustomerID:  plan.CustomerID,
		SoldLines:   len(plan.Active),
		Demoted:     demoted,
		FinalizedAt: plan.FinalizedAt,
	}
	if err := s.publisher.Publish(ctx, PatternOrderFinalized, evt); err != nil {
		s.logger.Warn("publish order finalized", zap.Uint64("order_id", orderID), zap.Error(err))
	}
	return plan, nil
}

// SendConfirmation emails the customer the sold lines of a finalized order.
// Failures are logged and returned but never undo the order.
func (s *CheckoutService) SendConfirmation(ctx context.Context, orderID uint64, email string, sold []domain.OrderLine) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	receipt, err := s.receipts.build(ctx, order, sold)
	if err != nil {
		return err
	}
	msg, err := renderConfirmation(s.mail, email, receipt)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, PatternEmail, msg); err != nil {
		s.logger.Error("send confirmation email", zap.Uint64("order_id", orderID), zap.String("to", email), zap.Error(err))
		return err
	}
	s.logger.Info("confirmation email sent", zap.Uint64("order_id", orderID))
	return nil
}

func (s *CheckoutService) complete(ctx context.Context, orderID uint64, email string) error {
	plan, err := s.Finalize(ctx, orderID)
	if err != nil {
		return err
	}
	if email == "" {
		customer, err := s.customers.FindByID(ctx, plan.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return ErrCustomerNotFound
		}
		email = customer.Email
	}
	// The order is already finalized; a failed email is only logged.
	_ = s.SendConfirmation(ctx, orderID, email, plan.Active)
	return nil
}

// Reconcile finalizes placed orders that were never finalized, for example
// because the process stopped right after checkout. It returns how many
// orders it completed.
func (s *CheckoutService) Reconcile(ctx context.Context) (int, error) {
	orders, err := s.orders.FindUnfinalized(ctx, s.now().Add(-s.grace), reconcileBatchSize)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	var done atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(reconcileConcurrency)
	for _, o := range orders {
		orderID := o.ID
		g.Go(func() error {
			err := s.complete(ctx, orderID, "")
			switch {
			case err == nil:
				done.Add(1)
				return nil
			case errors.Is(err, repository.ErrAlreadyFinalized):
				return nil
			default:
				return fmt.Errorf("order %d: %w", orderID, err)
			}
		})
	}
	err = g.Wait()

	n := int(done.Load())
	if n > 0 {
		s.logger.Info("reconciled orders", zap.Int("count", n))
	}
	return n, err
}

// RunReconciler reconciles once immediately and then every interval until
// ctx is cancelled.
func (s *CheckoutService) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Reconcile(ctx); err != nil {
			s.logger.Error("reconcile orders", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
