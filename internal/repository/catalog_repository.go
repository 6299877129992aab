package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	FindByID(ctx context.Context, id uint64) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

type DiscountRepository interface {
	List(ctx context.Context) ([]domain.DiscountCode, error)
	FindByID(ctx context.Context, id uint64) (*domain.DiscountCode, error)
	FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
	FindActiveCode(ctx context.Context, code string) (*domain.DiscountCode, error)
	Create(ctx context.Context, d *domain.DiscountCode) error
	Update(ctx context.Context, d *domain.DiscountCode) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

type DeliveryRepository interface {
	ListActive(ctx context.Context) ([]domain.DeliveryMethod, error)
	FindByID(ctx context.Context, id uint64) (*domain.DeliveryMethod, error)
}

type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
	Save(ctx context.Context, c *domain.Customer) error
}
