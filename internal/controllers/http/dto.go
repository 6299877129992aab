package http

import (
	"shop-service/internal/domain"

	"github.com/shopspring/decimal"
)

// writeResult reports how many rows a basket or favourites write touched.
type writeResult struct {
	AffectedRows int64  `json:"affectedRows"`
	InsertID     uint64 `json:"insertId,omitempty"`
}

type signUpRequest struct {
	Email     string `json:"userEmail" form:"userEmail" binding:"required"`
	Password  string `json:"userPassword" form:"userPassword" binding:"required"`
	FirstName string `json:"userFname" form:"userFname"`
	LastName  string `json:"userLname" form:"userLname"`
	Phone     string `json:"userPhone" form:"userPhone"`
}

type signInRequest struct {
	Email    string `json:"userEmail" form:"userEmail" binding:"required"`
	Password string `json:"userPassword" form:"userPassword" binding:"required"`
}

type placeOrderRequest struct {
	OrderID          uint64          `json:"orderId" binding:"required"`
	HouseDelivery    string          `json:"houseDelivery"`
	StreetDelivery   string          `json:"streetDelivery"`
	CityDelivery     string          `json:"cityDelivery"`
	CountyDelivery   string          `json:"countyDelivery"`
	PostcodeDelivery string          `json:"postcodeDelivery"`
	AddressesAreSame bool            `json:"addressesAreSame"`
	HouseBilling     string          `json:"houseBilling"`
	StreetBilling    string          `json:"streetBilling"`
	CityBilling      string          `json:"cityBilling"`
	CountyBilling    string          `json:"countyBilling"`
	PostcodeBilling  string          `json:"postcodeBilling"`
	CardNum          string          `json:"cardNum"`
	CardExpiry       string          `json:"cardExpiry"`
	CardSecurityCode string          `json:"cardSecurityCode"`
	PaymentType      string          `json:"paymentType"`
	PaymentTotal     decimal.Decimal `json:"paymentTotal"`
	DiscountID       *uint64         `json:"discountId"`
	DeliveryMethodID *uint64         `json:"deliveryMethodId"`
}

func (r placeOrderRequest) checkout() *domain.Checkout {
	c := &domain.Checkout{
		OrderID: r.OrderID,
		Delivery: domain.Address{
			House:    r.HouseDelivery,
			Street:   r.StreetDelivery,
			City:     r.CityDelivery,
			County:   r.CountyDelivery,
			Postcode: r.PostcodeDelivery,
		},
		Payment: domain.Payment{
			Type:         r.PaymentType,
			CardNumber:   r.CardNum,
			ExpiryDate:   r.CardExpiry,
			SecurityCode: r.CardSecurityCode,
			Total:        r.PaymentTotal,
		},
		DiscountID:       nonZero(r.DiscountID),
		DeliveryMethodID: nonZero(r.DeliveryMethodID),
	}
	if !r.AddressesAreSame {
		c.Billing = &domain.Address{
			House:    r.HouseBilling,
			Street:   r.StreetBilling,
			City:     r.CityBilling,
			County:   r.CountyBilling,
			Postcode: r.PostcodeBilling,
		}
	}
	return c
}

// nonZero treats an id of 0 the same as a missing one.
func nonZero(id *uint64) *uint64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

type productForm struct {
	ID          uint64          `json:"dbId" form:"dbId"`
	Name        string          `json:"productName" form:"productName"`
	CategoryID  uint64          `json:"category" form:"category"`
	Description string          `json:"productDescrip" form:"productDescrip"`
	Stock       int64           `json:"productQty" form:"productQty"`
	Price       decimal.Decimal `json:"productPrice" form:"productPrice"`
	Discount    int64           `json:"discountPerc" form:"discountPerc"`
	Version     uint64          `json:"version" form:"version"`
}

func (f productForm) product() *domain.Product {
	return &domain.Product{
		ID:              f.ID,
		Name:            f.Name,
		CategoryID:      f.CategoryID,
		Description:     f.Description,
		Stock:           f.Stock,
		Price:           f.Price,
		DiscountPercent: f.Discount,
		Version:         f.Version,
	}
}

type categoryForm struct {
	ID     uint64 `json:"dbId" form:"dbId"`
	Name   string `json:"categoryName" form:"categoryName"`
	Image  string `json:"categoryImage" form:"categoryImage"`
	Active bool   `json:"categoryStatus" form:"categoryStatus"`
}

type discountForm struct {
	ID     uint64 `json:"dbId" form:"dbId"`
	Code   string `json:"discountCode" form:"discountCode"`
	Value  int64  `json:"discountValue" form:"discountValue"`
	Active bool   `json:"discountStatus" form:"discountStatus"`
}

func (f discountForm) discount() *domain.DiscountCode {
	return &domain.DiscountCode{ID: f.ID, Code: f.Code, Value: f.Value, Active: f.Active}
}

type deleteRequest struct {
	ProductID  uint64 `json:"productId" form:"productId"`
	CategoryID uint64 `json:"categoryId" form:"categoryId"`
	DiscountID uint64 `json:"discountId" form:"discountId"`
}
