package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrDiscountNotFound  = errors.New("discount code is not valid")
	ErrDuplicateDiscount = errors.New("discount code already exists")
	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrInvalidCategory   = errors.New("invalid category")
)

const (
	cacheKeyCategoriesAll    = "categories:all"
	cacheKeyCategoriesActive = "categories:active"
	cacheKeyDeliveryMethods  = "delivery:methods"
	catalogCacheTTL          = 5 * time.Minute
)

// CatalogService serves categories, discount codes and delivery methods.
// Category and delivery lists are cached in redis when a client is set.
type CatalogService struct {
	categories  repository.CategoryRepository
	discounts   repository.DiscountRepository
	deliveries  repository.DeliveryRepository
	redisClient *redis.Client
	now         Clock
	imageDir    string
	logger      *zap.Logger
}

func NewCatalogService(c repository.CategoryRepository, d repository.DiscountRepository, dm repository.DeliveryRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		categories: c,
		discounts:  d,
		deliveries: dm,
		now:        SystemClock,
		logger:     logger,
	}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) SetClock(c Clock) {
	s.now = c
}

func (s *CatalogService) SetImageDir(dir string) {
	s.imageDir = dir
}

func cached[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	if s.redisClient != nil {
		if b, err := s.redisClient.Get(ctx, key).Bytes(); err == nil {
			var out T
			if err := json.Unmarshal(b, &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.redisClient.Set(ctx, key, data, catalogCacheTTL).Err(); err != nil {
				s.logger.Debug("cache set", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return out, nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("cache invalidate", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *CatalogService) Categories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	key := cacheKeyCategoriesAll
	if activeOnly {
		key = cacheKeyCategoriesActive
	}
	return cached(ctx, s, key, func() ([]domain.Category, error) {
		out, err := s.categories.List(ctx, activeOnly)
		if out == nil && err == nil {
			out = []domain.Category{}
		}
		return out, err
	})
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	existing, err := s.categories.FindByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateCategory
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategoriesAll, cacheKeyCategoriesActive)
	s.logger.Info("category created", zap.Uint64("id", c.ID), zap.String("name", c.Name))
	return nil
}

// UpdateCategory keeps the stored image when c.Img is empty.
func (s *CatalogService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	current, err := s.categories.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrCategoryNotFound
	}
	clash, err := s.categories.FindByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if clash != nil && clash.ID != c.ID {
		return ErrDuplicateCategory
	}
	if c.Img == "" {
		c.Img = current.Img
	}
	if _, err := s.categories.Update(ctx, c); err != nil {
		return err
	}
	if c.Img != current.Img {
		if err := removeImage(s.imageDir, current.Img); err != nil {
			s.logger.Warn("remove category image", zap.Uint64("id", c.ID), zap.Error(err))
		}
	}
	s.invalidate(ctx, cacheKeyCategoriesAll, cacheKeyCategoriesActive)
	return nil
}

// DeleteCategory removes the category and its icon file.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	current, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrCategoryNotFound
	}
	if _, err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	if err := removeImage(s.imageDir, current.Img); err != nil {
		s.logger.Warn("remove category image", zap.Uint64("id", id), zap.Error(err))
	}
	s.invalidate(ctx, cacheKeyCategoriesAll, cacheKeyCategoriesActive)
	return nil
}

// CheckDiscount returns the active discount with the given code.
func (s *CatalogService) CheckDiscount(ctx context.Context, code string) (*domain.DiscountCode, error) {
	d, err := s.discounts.FindActiveCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDiscountNotFound
	}
	return d, nil
}

func (s *CatalogService) Discounts(ctx context.Context) ([]domain.DiscountCode, error) {
	out, err := s.discounts.List(ctx)
	if out == nil && err == nil {
		out = []domain.DiscountCode{}
	}
	return out, err
}

func validateDiscount(d *domain.DiscountCode) error {
	d.Code = strings.TrimSpace(d.Code)
	if d.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidDiscount)
	}
	if d.Value <= 0 || d.Value > 100 {
		return fmt.Errorf("%w: value must be between 1 and 100", ErrInvalidDiscount)
	}
	return nil
}

func (s *CatalogService) CreateDiscount(ctx context.Context, d *domain.DiscountCode) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	existing, err := s.discounts.FindByCode(ctx, d.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateDiscount
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		return err
	}
	s.logger.Info("discount created", zap.Uint64("discount_id", d.ID), zap.String("code", d.Code))
	return nil
}

func (s *CatalogService) UpdateDiscount(ctx context.Context, d *domain.DiscountCode) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	current, err := s.discounts.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrDiscountNotFound
	}
	clash, err := s.discounts.FindByCode(ctx, d.Code)
	if err != nil {
		return err
	}
	if clash != nil && clash.ID != d.ID {
		return ErrDuplicateDiscount
	}
	_, err = s.discounts.Update(ctx, d)
	return err
}

func (s *CatalogService) DeleteDiscount(ctx context.Context, id uint64) error {
	rows, err := s.discounts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDiscountNotFound
	}
	return nil
}

// DeliveryOptions lists active delivery methods with the date an order
// placed now would arrive.
func (s *CatalogService) DeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	methods, err := cached(ctx, s, cacheKeyDeliveryMethods, func() ([]domain.DeliveryMethod, error) {
		return s.deliveries.ListActive(ctx)
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]domain.DeliveryOption, 0, len(methods))
	for _, m := range methods {
		out = append(out, domain.DeliveryOption{
			DeliveryMethod:        m,
			EstimatedDeliveryDate: domain.FormatDate(domain.EstimatedDelivery(now, m.EstimateWorkingDays)),
		})
	}
	return out, nil
}

// Warmup loads the cached catalog lists into redis.
func (s *CatalogService) Warmup(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Categories(ctx, true)
		return err
	})
	g.Go(func() error {
		_, err := s.Categories(ctx, false)
		return err
	})
	g.Go(func() error {
		_, err := s.DeliveryOptions(ctx)
		return err
	})
	return g.Wait()
}
