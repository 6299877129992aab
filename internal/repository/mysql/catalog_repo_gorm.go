package mysql

import (
	"context"
	"errors"
	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// first loads a single row and maps "not found" to nil, nil.
func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

type categoryRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *gorm.DB, logger *zap.Logger) repository.CategoryRepository {
	return &categoryRepo{db: db, logger: logger}
}

func (r *categoryRepo) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	var out []domain.Category
	query := r.db.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("status_active = ?", true)
	}
	if err := query.Find(&out).Error; err != nil {
		r.logger.Error("list categories", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	return first[domain.Category](ctx, r.db, "id = ?", id)
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return first[domain.Category](ctx, r.db, "name = ?", name)
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.logger.Error("create category", zap.String("name", c.Name), zap.Error(err))
		return err
	}
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{"name": c.Name, "img": c.Img, "status_active": c.StatusActive})
	if res.Error != nil {
		r.logger.Error("update category", zap.Uint64("id", c.ID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *categoryRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{})
	if res.Error != nil {
		r.logger.Error("delete category", zap.Uint64("id", id), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

type discountRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDiscountRepository(db *gorm.DB, logger *zap.Logger) repository.DiscountRepository {
	return &discountRepo{db: db, logger: logger}
}

func (r *discountRepo) List(ctx context.Context) ([]domain.DiscountCode, error) {
	var out []domain.DiscountCode
	if err := r.db.WithContext(ctx).Order("discount_id").Find(&out).Error; err != nil {
		r.logger.Error("list discounts", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *discountRepo) FindByID(ctx context.Context, id uint64) (*domain.DiscountCode, error) {
	return first[domain.DiscountCode](ctx, r.db, "discount_id = ?", id)
}

func (r *discountRepo) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	return first[domain.DiscountCode](ctx, r.db, "discount_code = ?", code)
}

func (r *discountRepo) FindActiveCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	return first[domain.DiscountCode](ctx, r.db, "discount_code = ? AND discount_status = ?", code, true)
}

func (r *discountRepo) Create(ctx context.Context, d *domain.DiscountCode) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		r.logger.Error("create discount", zap.String("code", d.Code), zap.Error(err))
		return err
	}
	return nil
}

func (r *discountRepo) Update(ctx context.Context, d *domain.DiscountCode) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.DiscountCode{}).
		Where("discount_id = ?", d.ID).
		Updates(map[string]any{"discount_code": d.Code, "discount_value": d.Value, "discount_status": d.Active})
	if res.Error != nil {
		r.logger.Error("update discount", zap.Uint64("discount_id", d.ID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *discountRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("discount_id = ?", id).Delete(&domain.DiscountCode{})
	if res.Error != nil {
		r.logger.Error("delete discount", zap.Uint64("discount_id", id), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

type deliveryRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDeliveryRepository(db *gorm.DB, logger *zap.Logger) repository.DeliveryRepository {
	return &deliveryRepo{db: db, logger: logger}
}

func (r *deliveryRepo) ListActive(ctx context.Context) ([]domain.DeliveryMethod, error) {
	var out []domain.DeliveryMethod
	err := r.db.WithContext(ctx).Where("method_status = ?", true).Order("delivery_method_id").Find(&out).Error
	if err != nil {
		r.logger.Error("list delivery methods", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *deliveryRepo) FindByID(ctx context.Context, id uint64) (*domain.DeliveryMethod, error) {
	return first[domain.DeliveryMethod](ctx, r.db, "delivery_method_id = ?", id)
}

type customerRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCustomerRepository(db *gorm.DB, logger *zap.Logger) repository.CustomerRepository {
	return &customerRepo{db: db, logger: logger}
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return first[domain.Customer](ctx, r.db, "email = ?", email)
}

func (r *customerRepo) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	return first[domain.Customer](ctx, r.db, "customer_id = ?", id)
}

func (r *customerRepo) Save(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.logger.Error("save customer", zap.Error(err))
		return err
	}
	return nil
}
