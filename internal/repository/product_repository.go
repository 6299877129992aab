package repository

import (
	"context"

	"shop-service/internal/domain"
)

// ProductQuery narrows a catalog listing. The zero value lists everything,
// newest id first.
type ProductQuery struct {
	CategoryID  uint64
	OnSale      bool
	Search      string
	NewArrivals bool
	BestSellers bool
	Limit       int
}

// ProductRepository reads always carry the reservation window so the
// returned views include virtual reservations.
type ProductRepository interface {
	List(ctx context.Context, w domain.Window, q ProductQuery) ([]domain.ProductView, error)
	FindByID(ctx context.Context, w domain.Window, id uint64) (*domain.ProductView, error)
	Create(ctx context.Context, p *domain.Product) error
	// Update only applies when p.Version matches the stored version.
	Update(ctx context.Context, p *domain.Product) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	AdjustStock(ctx context.Context, id uint64, delta int64) (int64, error)
}

type FavouriteRepository interface {
	List(ctx context.Context, w domain.Window, customerID uint64) ([]domain.FavouriteView, error)
	Add(ctx context.Context, customerID, productID uint64) (int64, error)
	Remove(ctx context.Context, customerID, productID uint64) (int64, error)
}
