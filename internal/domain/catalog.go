package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID           uint64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"column:name;size:128;not null;index"`
	Img          string `json:"img" gorm:"column:img;size:255"`
	StatusActive bool   `json:"statusActive" gorm:"column:status_active;not null"`
}

func (Category) TableName() string { return "categories" }

type DiscountCode struct {
	ID     uint64 `json:"discountId" gorm:"column:discount_id;primaryKey;autoIncrement"`
	Code   string `json:"discountCode" gorm:"column:discount_code;size:64;not null;uniqueIndex"`
	Value  int64  `json:"discountValue" gorm:"column:discount_value;not null"`
	Active bool   `json:"discountStatus" gorm:"column:discount_status;not null"`
}

func (DiscountCode) TableName() string { return "discount_code" }

type DeliveryMethod struct {
	ID                  uint64          `json:"deliveryMethodId" gorm:"column:delivery_method_id;primaryKey;autoIncrement"`
	Name                string          `json:"name" gorm:"column:name;size:128;not null"`
	DeliveryPrice       decimal.Decimal `json:"deliveryPrice" gorm:"column:delivery_price;type:decimal(10,2);not null"`
	EstimateWorkingDays int             `json:"estimateWorkingDays" gorm:"column:estimate_working_days;not null"`
	Active              bool            `json:"methodStatus" gorm:"column:method_status;not null"`
}

func (DeliveryMethod) TableName() string { return "delivery_method" }

type DeliveryOption struct {
	DeliveryMethod
	EstimatedDeliveryDate string `json:"estimatedDeliveryDate"`
}
