package services

import (
	"shop-service/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

var TestNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func CreateMockOrder(id, customerID uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:         id,
		CustomerID: customerID,
		Status:     status,
	}
}

func CreateMockPlacedOrder(id, customerID uint64, placed time.Time) *domain.Order {
	o := CreateMockOrder(id, customerID, domain.StatusOrdered)
	o.OrderDate = &placed
	return o
}

func CreateMockLine(orderID, productID uint64, qty int64, added time.Time) domain.OrderLine {
	return domain.OrderLine{
		OrderID:   orderID,
		ProductID: productID,
		Qty:       qty,
		DateAdded: added,
		Name:      TestProductName,
		Price:     decimal.RequireFromString(TestProductPrice),
		Stock:     TestProductStock,
	}
}

const (
	TestCustomerID   = uint64(7)
	TestOrderID      = uint64(1)
	TestProductID    = uint64(1)
	TestProductName  = "Test Product"
	TestProductPrice = "12.50"
	TestProductStock = int64(10)
	TestEmail        = "customer@example.com"
)
