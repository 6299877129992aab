package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint64          `json:"productId" gorm:"column:product_id;primaryKey;autoIncrement"`
	Name            string          `json:"name" gorm:"column:name;size:255;not null"`
	CategoryID      uint64          `json:"categoryId" gorm:"column:category_id;index"`
	Description     string          `json:"description" gorm:"column:description;type:text"`
	Img             string          `json:"img" gorm:"column:img;size:255"`
	Stock           int64           `json:"stock" gorm:"column:stock;not null"`
	Price           decimal.Decimal `json:"price" gorm:"column:price;type:decimal(10,2);not null"`
	DiscountPercent int64           `json:"discountPercent" gorm:"column:discount_percent;not null"`
	Version         uint64          `json:"version" gorm:"column:version;not null;default:1"`
	CreatedOn       time.Time       `json:"createdOn" gorm:"column:created_on;autoCreateTime"`
}

func (Product) TableName() string { return "product" }

// ProductView is a product as shoppers see it: physical stock less what sits
// in recent baskets.
type ProductView struct {
	Product              `gorm:"embedded"`
	CategoryName         string `json:"categoryName" gorm:"column:category_name"`
	VirtualStockReserved int64  `json:"virtualStockReserved" gorm:"column:virtual_stock_reserved"`
	OrderedStock         int64  `json:"orderedStock,omitempty" gorm:"column:ordered_stock"`
	AvailableStock       int64  `json:"availableStock" gorm:"-"`
}

func (v *ProductView) ComputeAvailable() {
	v.AvailableStock = v.Stock - v.VirtualStockReserved
}

type FavouriteView struct {
	ProductView `gorm:"embedded"`
	CustomerID  uint64 `json:"customerId" gorm:"column:customer_id"`
}

type Favourite struct {
	CustomerID uint64 `json:"customerId" gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	ProductID  uint64 `json:"productId" gorm:"column:product_id;primaryKey;autoIncrement:false"`
}

func (Favourite) TableName() string { return "favourites" }
