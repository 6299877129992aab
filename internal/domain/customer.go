package domain

import "github.com/shopspring/decimal"

type Customer struct {
	ID        uint64 `json:"customerId" gorm:"column:customer_id;primaryKey;autoIncrement"`
	Email     string `json:"email" gorm:"column:email;size:255;not null;uniqueIndex"`
	FirstName string `json:"firstName" gorm:"column:first_name;size:128"`
	LastName  string `json:"lastName" gorm:"column:last_name;size:128"`
	Phone     string `json:"phone" gorm:"column:phone;size:32"`
	Password  string `json:"-" gorm:"column:password;size:255;not null"`
	Admin     bool   `json:"admin" gorm:"column:admin;not null"`
}

func (Customer) TableName() string { return "customers" }

type Address struct {
	ID       uint64 `json:"addressId" gorm:"column:address_id;primaryKey;autoIncrement"`
	House    string `json:"addressHouse" gorm:"column:address_house;size:128"`
	Street   string `json:"street" gorm:"column:street;size:255"`
	City     string `json:"city" gorm:"column:city;size:128"`
	County   string `json:"county" gorm:"column:county;size:128"`
	Postcode string `json:"postcode" gorm:"column:postcode;size:16"`
}

func (Address) TableName() string { return "address" }

// Payment details are stored as captured; nothing here talks to a gateway.
type Payment struct {
	ID               uint64          `json:"paymentId" gorm:"column:payment_id;primaryKey;autoIncrement"`
	Type             string          `json:"paymentType" gorm:"column:payment_type;size:32"`
	CardNumber       string          `json:"-" gorm:"column:card_number;size:32"`
	ExpiryDate       string          `json:"-" gorm:"column:expiry_date;size:8"`
	SecurityCode     string          `json:"-" gorm:"column:security_code;size:8"`
	BillingAddressID uint64          `json:"billingAddressId" gorm:"column:billing_address_id;not null"`
	Total            decimal.Decimal `json:"totalPayment" gorm:"column:total_payment;type:decimal(10,2);not null"`
}

func (Payment) TableName() string { return "payment" }

// EmailMessage is what the notification sink receives.
type EmailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Cc      string `json:"cc,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Receipt is an order with everything needed to show or email it.
type Receipt struct {
	Order                 Order           `json:"order"`
	Lines                 []OrderLine     `json:"lines"`
	DeliveryMethod        *DeliveryMethod `json:"deliveryMethod,omitempty"`
	Discount              *DiscountCode   `json:"discount,omitempty"`
	DeliveryAddress       *Address        `json:"deliveryAddress,omitempty"`
	BillingAddress        *Address        `json:"billingAddress,omitempty"`
	Payment               *Payment        `json:"payment,omitempty"`
	OrderDateFormatted    string          `json:"orderDateFormatted"`
	EstimatedDeliveryDate string          `json:"estimatedDeliveryDate"`
}
