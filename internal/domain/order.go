package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusBasket  OrderStatus = "Basket"
	StatusOrdered OrderStatus = "Ordered"
)

type Order struct {
	ID                uint64      `json:"orderId" gorm:"column:order_id;primaryKey;autoIncrement"`
	CustomerID        uint64      `json:"customerId" gorm:"column:customer_id;not null;index"`
	Status            OrderStatus `json:"orderStatus" gorm:"column:order_status;size:32;not null;index"`
	DeliveryAddressID *uint64     `json:"deliveryAddressId" gorm:"column:delivery_address_id"`
	DiscountID        *uint64     `json:"discountId" gorm:"column:discount_id"`
	DeliveryMethodID  *uint64     `json:"deliveryMethodId" gorm:"column:delivery_method_id"`
	PaymentID         *uint64     `json:"paymentId" gorm:"column:payment_id"`
	OrderDate         *time.Time  `json:"orderDate" gorm:"column:order_date"`
	FinalizedAt       *time.Time  `json:"finalizedAt,omitempty" gorm:"column:finalized_at;index"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is one basket line. The composite key allows a single row per
// (order, product) pair.
type OrderDetail struct {
	OrderID   uint64    `json:"orderId" gorm:"column:order_id;primaryKey;autoIncrement:false"`
	ProductID uint64    `json:"productId" gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Qty       int64     `json:"productQty" gorm:"column:product_qty;not null"`
	DateAdded time.Time `json:"dateAdded" gorm:"column:date_added;not null;index"`
}

func (OrderDetail) TableName() string { return "order_details" }

// OrderLine is an OrderDetail joined with its order header and a product
// snapshot, as returned by basket and order-detail reads.
type OrderLine struct {
	OrderID              uint64          `json:"orderId" gorm:"column:order_id"`
	CustomerID           uint64          `json:"customerId" gorm:"column:customer_id"`
	Status               OrderStatus     `json:"orderStatus" gorm:"column:order_status"`
	ProductID            uint64          `json:"productId" gorm:"column:product_id"`
	Qty                  int64           `json:"productQty" gorm:"column:product_qty"`
	DateAdded            time.Time       `json:"dateAdded" gorm:"column:date_added"`
	Name                 string          `json:"name" gorm:"column:name"`
	Img                  string          `json:"img" gorm:"column:img"`
	Price                decimal.Decimal `json:"price" gorm:"column:price"`
	DiscountPercent      int64           `json:"discountPercent" gorm:"column:discount_percent"`
	Stock                int64           `json:"stock" gorm:"column:stock"`
	VirtualStockReserved int64           `json:"virtualStockReserved" gorm:"column:virtual_stock_reserved"`
	VirtualStatus        LineStatus      `json:"virtualStatus" gorm:"-"`
}

// UnitPrice is the price after the product's percentage discount.
func (l OrderLine) UnitPrice() decimal.Decimal {
	return DiscountedPrice(l.Price, l.DiscountPercent)
}

func DiscountedPrice(price decimal.Decimal, percent int64) decimal.Decimal {
	if percent <= 0 {
		return price
	}
	factor := decimal.NewFromInt(100 - percent).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

// BasketProbe reports a customer's order together with its line for one
// product, if the product is already in it.
type BasketProbe struct {
	Order Order        `json:"order"`
	Line  *OrderDetail `json:"line"`
}

// Checkout carries everything written while turning a basket into an order.
// A nil Billing means the billing address is the delivery address.
type Checkout struct {
	OrderID          uint64
	CustomerID       uint64
	Delivery         Address
	Billing          *Address
	Payment          Payment
	DiscountID       *uint64
	DeliveryMethodID *uint64
	OrderDate        time.Time
}

// FinalizationPlan is the partition of an ordered basket into lines that are
// sold and lines handed back to the customer as favourites.
type FinalizationPlan struct {
	OrderID     uint64
	CustomerID  uint64
	Active      []OrderLine
	Inactive    []OrderLine
	FinalizedAt time.Time
}

type OrderFinalizedEvent struct {
	OrderID     uint64    `json:"orderId"`
	CustomerID  uint64    `json:"customerId"`
	SoldLines   int       `json:"soldLines"`
	Demoted     []uint64  `json:"demotedProductIds"`
	FinalizedAt time.Time `json:"finalizedAt"`
}

// OrderSummary is an order header as listed in order history.
type OrderSummary struct {
	Order
	OrderDateFormatted string   `json:"orderDateFormatted"`
	DeliveryAddress    *Address `json:"deliveryAddress,omitempty"`
}
