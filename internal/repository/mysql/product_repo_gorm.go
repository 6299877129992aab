package mysql

import (
	"context"
	"errors"
	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// likeEscaper quotes LIKE wildcards with '!', which MySQL and SQLite both
// accept as an ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type productRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProductRepository(db *gorm.DB, logger *zap.Logger) repository.ProductRepository {
	return &productRepo{db: db, logger: logger}
}

func (r *productRepo) List(ctx context.Context, w domain.Window, q repository.ProductQuery) ([]domain.ProductView, error) {
	db := r.db.WithContext(ctx)
	query := productViews(db, w)
	columns := productViewColumns

	switch {
	case q.BestSellers:
		columns += ", COALESCE(ordered.ordered_qty, 0) AS ordered_stock"
		query = query.
			Joins("LEFT JOIN (?) AS ordered ON ordered.ordered_product_id = product.product_id", orderedQuantities(db.Session(&gorm.Session{NewDB: true}))).
			Order("ordered_stock DESC")
	case q.NewArrivals:
		query = query.Order("product.created_on DESC")
	default:
		query = query.Order("product.product_id DESC")
	}

	if q.CategoryID != 0 {
		query = query.Where("product.category_id = ?", q.CategoryID)
	}
	if q.OnSale {
		query = query.Where("product.discount_percent > 0")
	}
	if q.Search != "" {
		query = query.Where("product.name LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(q.Search)+"%")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var out []domain.ProductView
	if err := query.Select(columns).Scan(&out).Error; err != nil {
		r.logger.Error("list products", zap.Error(err))
		return nil, err
	}
	for i := range out {
		out[i].ComputeAvailable()
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, w domain.Window, id uint64) (*domain.ProductView, error) {
	var out []domain.ProductView
	err := productViews(r.db.WithContext(ctx), w).
		Select(productViewColumns).
		Where("product.product_id = ?", id).
		Limit(1).
		Scan(&out).Error
	if err != nil {
		r.logger.Error("find product", zap.Uint64("product_id", id), zap.Error(err))
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	out[0].ComputeAvailable()
	return &out[0], nil
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	result := r.db.WithContext(ctx).Create(p)
	if result.Error != nil {
		r.logger.Error("create product", zap.Error(result.Error))
		return result.Error
	}
	if p.ID == 0 {
		return errors.New("failed to assign product ID")
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]any{
			"name":             p.Name,
			"category_id":      p.CategoryID,
			"description":      p.Description,
			"stock":            p.Stock,
			"price":            p.Price,
			"discount_percent": p.DiscountPercent,
			"version":          gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		r.logger.Error("update product", zap.Uint64("product_id", p.ID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *productRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		r.logger.Error("delete product", zap.Uint64("product_id", id), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *productRepo) AdjustStock(ctx context.Context, id uint64, delta int64) (int64, error) {
	rows, err := adjustStock(r.db.WithContext(ctx), id, delta)
	if err != nil {
		r.logger.Error("adjust stock", zap.Uint64("product_id", id), zap.Int64("delta", delta), zap.Error(err))
	}
	return rows, err
}

type favouriteRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFavouriteRepository(db *gorm.DB, logger *zap.Logger) repository.FavouriteRepository {
	return &favouriteRepo{db: db, logger: logger}
}

func (r *favouriteRepo) List(ctx context.Context, w domain.Window, customerID uint64) ([]domain.FavouriteView, error) {
	var out []domain.FavouriteView
	err := productViews(r.db.WithContext(ctx), w).
		Select(productViewColumns+", favourites.customer_id").
		Joins("JOIN favourites ON favourites.product_id = product.product_id").
		Where("favourites.customer_id = ?", customerID).
		Order("product.product_id").
		Scan(&out).Error
	if err != nil {
		r.logger.Error("list favourites", zap.Uint64("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	for i := range out {
		out[i].ComputeAvailable()
	}
	return out, nil
}

func (r *favouriteRepo) Add(ctx context.Context, customerID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Clauses(doNothingOnConflict("customer_id", "product_id")).
		Create(&domain.Favourite{CustomerID: customerID, ProductID: productID})
	if res.Error != nil {
		r.logger.Error("add favourite", zap.Uint64("customer_id", customerID), zap.Uint64("product_id", productID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}

func (r *favouriteRepo) Remove(ctx context.Context, customerID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&domain.Favourite{})
	if res.Error != nil {
		r.logger.Error("remove favourite", zap.Uint64("customer_id", customerID), zap.Uint64("product_id", productID), zap.Error(res.Error))
	}
	return res.RowsAffected, res.Error
}
