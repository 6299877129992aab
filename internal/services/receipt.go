package services

import (
	"context"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

// receiptBuilder resolves the references held by an order header.
type receiptBuilder struct {
	orders     repository.OrderRepository
	deliveries repository.DeliveryRepository
	discounts  repository.DiscountRepository
}

func (b receiptBuilder) build(ctx context.Context, order *domain.Order, lines []domain.OrderLine) (*domain.Receipt, error) {
	r := &domain.Receipt{Order: *order, Lines: lines}
	if r.Lines == nil {
		r.Lines = []domain.OrderLine{}
	}

	if order.OrderDate != nil {
		r.OrderDateFormatted = domain.FormatDate(*order.OrderDate)
	}

	var err error
	if order.DeliveryMethodID != nil {
		if r.DeliveryMethod, err = b.deliveries.FindByID(ctx, *order.DeliveryMethodID); err != nil {
			return nil, err
		}
		if r.DeliveryMethod != nil && order.OrderDate != nil {
			eta := domain.EstimatedDelivery(*order.OrderDate, r.DeliveryMethod.EstimateWorkingDays)
			r.EstimatedDeliveryDate = domain.FormatDate(eta)
		}
	}
	if order.DiscountID != nil {
		if r.Discount, err = b.discounts.FindByID(ctx, *order.DiscountID); err != nil {
			return nil, err
		}
	}
	if order.DeliveryAddressID != nil {
		if r.DeliveryAddress, err = b.orders.FindAddress(ctx, *order.DeliveryAddressID); err != nil {
			return nil, err
		}
	}
	if order.PaymentID != nil {
		if r.Payment, err = b.orders.FindPayment(ctx, *order.PaymentID); err != nil {
			return nil, err
		}
		if r.Payment != nil {
			r.BillingAddress = r.DeliveryAddress
			if r.DeliveryAddress == nil || r.Payment.BillingAddressID != r.DeliveryAddress.ID {
				if r.BillingAddress, err = b.orders.FindAddress(ctx, r.Payment.BillingAddressID); err != nil {
					return nil, err
				}
			}
		}
	}
	return r, nil
}
