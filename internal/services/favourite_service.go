package services

import (
	"context"
	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"go.uber.org/zap"
)

type FavouriteService struct {
	repo   repository.FavouriteRepository
	now    Clock
	logger *zap.Logger
}

func NewFavouriteService(r repository.FavouriteRepository, logger *zap.Logger) *FavouriteService {
	return &FavouriteService{repo: r, now: SystemClock, logger: logger}
}

func (s *FavouriteService) SetClock(c Clock) {
	s.now = c
}

// List returns the customer's favourites with current availability.
func (s *FavouriteService) List(ctx context.Context, customerID uint64) ([]domain.FavouriteView, error) {
	favs, err := s.repo.List(ctx, domain.WindowAt(s.now()), customerID)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []domain.FavouriteView{}
	}
	return favs, nil
}

// Add is a no-op returning zero rows when the product is already a favourite.
func (s *FavouriteService) Add(ctx context.Context, customerID, productID uint64) (int64, error) {
	if customerID == 0 {
		return 0, ErrCustomerRequired
	}
	return s.repo.Add(ctx, customerID, productID)
}

func (s *FavouriteService) Remove(ctx context.Context, customerID, productID uint64) (int64, error) {
	if customerID == 0 {
		return 0, ErrCustomerRequired
	}
	return s.repo.Remove(ctx, customerID, productID)
}
