package services

import (
	"context"
	"errors"
	"fmt"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"strconv"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrStaleProduct    = errors.New("product was changed by someone else")
	ErrInvalidProduct  = errors.New("invalid product")
)

const showcaseSize = 6

// StockService owns physical stock and answers every stock-facing catalog
// read with virtual reservations applied.
type StockService struct {
	products repository.ProductRepository
	now      Clock
	imageDir string
	logger   *zap.Logger
}

func NewStockService(p repository.ProductRepository, logger *zap.Logger) *StockService {
	return &StockService{
		products: p,
		now:      SystemClock,
		logger:   logger,
	}
}

func (s *StockService) SetClock(c Clock) {
	s.now = c
}

func (s *StockService) SetImageDir(dir string) {
	s.imageDir = dir
}

func (s *StockService) window() domain.Window {
	return domain.WindowAt(s.now())
}

func (s *StockService) ListProducts(ctx context.Context, q repository.ProductQuery) ([]domain.ProductView, error) {
	return s.products.List(ctx, s.window(), q)
}

func (s *StockService) NewArrivals(ctx context.Context) ([]domain.ProductView, error) {
	return s.ListProducts(ctx, repository.ProductQuery{NewArrivals: true, Limit: showcaseSize})
}

func (s *StockService) BestSellers(ctx context.Context) ([]domain.ProductView, error) {
	return s.ListProducts(ctx, repository.ProductQuery{BestSellers: true, Limit: showcaseSize})
}

func (s *StockService) OnSale(ctx context.Context) ([]domain.ProductView, error) {
	return s.ListProducts(ctx, repository.ProductQuery{OnSale: true})
}

// InCategory lists a category by id. "all" lists every product and "sale"
// lists discounted ones. An optional search narrows by name.
func (s *StockService) InCategory(ctx context.Context, category, search string) ([]domain.ProductView, error) {
	q := repository.ProductQuery{Search: search}
	switch category {
	case "all", "":
	case "sale":
		q.OnSale = true
	default:
		id, err := strconv.ParseUint(category, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q", ErrCategoryNotFound, category)
		}
		q.CategoryID = id
	}
	return s.ListProducts(ctx, q)
}

func (s *StockService) GetProduct(ctx context.Context, id uint64) (*domain.ProductView, error) {
	p, err := s.products.FindByID(ctx, s.window(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// AvailableStock is physical stock less quantities reserved in baskets
// during the last hour.
func (s *StockService) AvailableStock(ctx context.Context, id uint64) (int64, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.AvailableStock, nil
}

// AdjustStock applies delta to physical stock. Stock may go negative.
func (s *StockService) AdjustStock(ctx context.Context, id uint64, delta int64) error {
	rows, err := s.products.AdjustStock(ctx, id, delta)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	s.logger.Info("stock adjusted", zap.Uint64("product_id", id), zap.Int64("delta", delta))
	return nil
}

func validateProduct(p *domain.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.DiscountPercent < 0 || p.DiscountPercent > 100:
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidProduct)
	}
	return nil
}

func (s *StockService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	p.ID = 0
	p.Version = 1
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info("product created", zap.Uint64("product_id", p.ID), zap.String("name", p.Name))
	return nil
}

// UpdateProduct applies an admin edit. p.Version must be the version the
// caller last read; otherwise ErrStaleProduct is returned and nothing changes.
func (s *StockService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	rows, err := s.products.Update(ctx, p)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	current, err := s.products.FindByID(ctx, s.window(), p.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrProductNotFound
	}
	if current.Version != p.Version {
		return ErrStaleProduct
	}
	// Same version and nothing changed.
	return nil
}

func (s *StockService) DeleteProduct(ctx context.Context, id uint64) error {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	rows, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	if err := removeImage(s.imageDir, current.Img); err != nil {
		s.logger.Warn("remove product image", zap.Uint64("product_id", id), zap.String("img", current.Img), zap.Error(err))
	}
	return nil
}
