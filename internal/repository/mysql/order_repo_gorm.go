package mysql

import (
	"context"
	"errors"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errNoTransition rolls back a checkout whose order was not in Basket.
var errNoTransition = errors.New("order not in basket")

type orderRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOrderRepository(db *gorm.DB, logger *zap.Logger) repository.OrderRepository {
	return &orderRepo{db: db, logger: logger}
}

func doNothingOnConflict(columns ...string) clause.OnConflict {
	cols := make([]clause.Column, len(columns))
	for i, c := range columns {
		cols[i] = clause.Column{Name: c}
	}
	return clause.OnConflict{Columns: cols, DoNothing: true}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		r.logger.Error("save order", zap.Error(result.Error))
		return result.Error
	}

	if order.ID == 0 {
		r.logger.Warn("order saved without id", zap.Int64("rows", result.RowsAffected))
		return errors.New("failed to assign order ID")
	}

	r.logger.Debug("order saved", zap.Uint64("order_id", order.ID))
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("find order", zap.Uint64("order_id", id), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByCustomer(ctx context.Context, customerID uint64, status domain.OrderStatus) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND order_status = ?", customerID, status).
		Order("order_id").
		Find(&out).Error
	if err != nil {
		r.logger.Error("find orders by customer", zap.Uint64("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindHistory(ctx context.Context, customerID uint64, limit int) ([]domain.Order, error) {
	var out []domain.Order
	query := r.db.WithContext(ctx).
		Where("customer_id = ? AND order_status <> ?", customerID, domain.StatusBasket).
		Order("order_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		r.logger.Error("find order history", zap.Uint64("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindUnfinalized(ctx context.Context, orderedBefore time.Time, limit int) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("order_status <> ? AND finalized_at IS NULL AND order_date <= ?", domain.StatusBasket, orderedBefore).
		Order("order_id").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		r.logger.Error("find unfinalized orders", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) Lines(ctx context.Context, w domain.Window, f repository.LineFilter) ([]domain.OrderLine, error) {
	db := r.db.WithContext(ctx)
	query := db.Table("orders").
		Select(`orders.order_id, orders.customer_id, orders.order_status,
			order_details.product_id, order_details.product_qty, order_details.date_added,
			COALESCE(product.name, '') AS name, COALESCE(product.img, '') AS img,
			COALESCE(product.price, 0) AS price, COALESCE(product.discount_percent, 0) AS discount_percent,
			COALESCE(product.stock, 0) AS stock,
			COALESCE(reserved.reserved_qty, 0) AS virtual_stock_reserved`).
		Joins("JOIN order_details ON order_details.order_id = orders.order_id").
		Joins("LEFT JOIN product ON product.product_id = order_details.product_id").
		Joins("LEFT JOIN (?) AS reserved ON reserved.reserved_product_id = order_details.product_id", reservedQuantities(db.Session(&gorm.Session{NewDB: true}), w)).
		Order("orders.order_id, order_details.product_id")

	if f.OrderID != 0 {
		query = query.Where("orders.order_id = ?", f.OrderID)
	} else {
		query = query.Where("orders.customer_id = ? AND orders.order_status = ?", f.CustomerID, f.Status)
	}

	var out []domain.OrderLine
	if err := query.Scan(&out).Error; err != nil {
		r.logger.Error("list order lines", zap.Uint64("order_id", f.OrderID), zap.Uint64("customer_id", f.CustomerID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindLine(ctx context.Context, orderID, productID uint64) (*domain.OrderDetail, error) {
	var d domain.OrderDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("find order line", zap.Uint64("order_id", orderID), zap.Uint64("product_id", productID), zap.Error(err))
		return nil, err
	}
	return &d, nil
}

// requireProduct fails with ErrUnknownProduct when id is not in the catalog.
func requireProduct(tx *gorm.DB, id uint64) error {
	var n int64
	if err := tx.Model(&domain.Product{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrUnknownProduct
	}
	return nil
}

// writeLine runs an order line upsert after checking the product exists.
func (r *orderRepo) writeLine(ctx context.Context, op string, line *domain.OrderDetail, conflict clause.Expression) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProduct(tx, line.ProductID); err != nil {
			return err
		}
		res := tx.Clauses(conflict).Create(line)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil && !errors.Is(err, repository.ErrUnknownProduct) {
		r.logger.Error(op, zap.Uint64("order_id", line.OrderID), zap.Uint64("product_id", line.ProductID), zap.Error(err))
	}
	return rows, err
}

func (r *orderRepo) AddLine(ctx context.Context, line *domain.OrderDetail) (int64, error) {
	return r.writeLine(ctx, "add order line", line, doNothingOnConflict("order_id", "product_id"))
}

func (r *orderRepo) SetLineQty(ctx context.Context, line *domain.OrderDetail) (int64, error) {
	return r.writeLine(ctx, "set order line quantity", line, clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_qty"}),
	})
}

func (r *orderRepo) DeleteLine(ctx context.Context, orderID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&domain.OrderDetail{})
	if res.Error != nil {
		r.logger.Error("delete order line", zap.Uint64("order_id", orderID), zap.Uint64("product_id", productID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *orderRepo) Checkout(ctx context.Context, c *domain.Checkout) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c.Delivery).Error; err != nil {
			return err
		}
		billingID := c.Delivery.ID
		if c.Billing != nil {
			if err := tx.Create(c.Billing).Error; err != nil {
				return err
			}
			billingID = c.Billing.ID
		}

		c.Payment.BillingAddressID = billingID
		if err := tx.Create(&c.Payment).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Order{}).
			Where("order_id = ? AND customer_id = ? AND order_status = ?", c.OrderID, c.CustomerID, domain.StatusBasket).
			Updates(map[string]any{
				"delivery_address_id": c.Delivery.ID,
				"discount_id":         c.DiscountID,
				"delivery_method_id":  c.DeliveryMethodID,
				"payment_id":          c.Payment.ID,
				"order_status":        domain.StatusOrdered,
				"order_date":          c.OrderDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNoTransition
		}
		rows = res.RowsAffected
		return nil
	})
	if errors.Is(err, errNoTransition) {
		r.logger.Warn("checkout found no basket order", zap.Uint64("order_id", c.OrderID), zap.Uint64("customer_id", c.CustomerID))
		return 0, nil
	}
	if err != nil {
		r.logger.Error("checkout", zap.Uint64("order_id", c.OrderID), zap.Error(err))
		return 0, err
	}
	return rows, nil
}

func (r *orderRepo) Finalize(ctx context.Context, plan *domain.FinalizationPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&domain.Order{}).
			Where("order_id = ? AND finalized_at IS NULL", plan.OrderID).
			Update("finalized_at", plan.FinalizedAt)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return repository.ErrAlreadyFinalized
		}

		for _, line := range plan.Active {
			if _, err := adjustStock(tx, line.ProductID, -line.Qty); err != nil {
				return err
			}
		}

		for _, line := range plan.Inactive {
			fav := domain.Favourite{CustomerID: plan.CustomerID, ProductID: line.ProductID}
			if err := tx.Clauses(doNothingOnConflict("customer_id", "product_id")).Create(&fav).Error; err != nil {
				return err
			}
			err := tx.Where("order_id = ? AND product_id = ?", plan.OrderID, line.ProductID).
				Delete(&domain.OrderDetail{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrAlreadyFinalized) {
		r.logger.Error("finalize order", zap.Uint64("order_id", plan.OrderID), zap.Error(err))
	}
	return err
}

func (r *orderRepo) FindAddress(ctx context.Context, id uint64) (*domain.Address, error) {
	var a domain.Address
	if err := r.db.WithContext(ctx).First(&a, "address_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("find address", zap.Uint64("address_id", id), zap.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *orderRepo) FindPayment(ctx context.Context, id uint64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("find payment", zap.Uint64("payment_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}
