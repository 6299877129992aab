package mysql

import (
	"shop-service/internal/domain"

	"gorm.io/gorm"
)

// reservedQuantities is the derived table of basket quantities per product
// added inside the window. Every stock-facing read joins it.
func reservedQuantities(db *gorm.DB, w domain.Window) *gorm.DB {
	return db.Table("order_details").
		Select("order_details.product_id AS reserved_product_id, SUM(order_details.product_qty) AS reserved_qty").
		Joins("JOIN orders ON orders.order_id = order_details.order_id").
		Where("orders.order_status = ?", domain.StatusBasket).
		Where("order_details.date_added BETWEEN ? AND ?", w.From, w.To).
		Group("order_details.product_id")
}

// orderedQuantities sums quantities of lines in orders that have left the
// basket.
func orderedQuantities(db *gorm.DB) *gorm.DB {
	return db.Table("order_details").
		Select("order_details.product_id AS ordered_product_id, SUM(order_details.product_qty) AS ordered_qty").
		Joins("JOIN orders ON orders.order_id = order_details.order_id").
		Where("orders.order_status <> ?", domain.StatusBasket).
		Group("order_details.product_id")
}

const productViewColumns = "product.*, COALESCE(categories.name, '') AS category_name, COALESCE(reserved.reserved_qty, 0) AS virtual_stock_reserved"

func productViews(db *gorm.DB, w domain.Window) *gorm.DB {
	return db.Table("product").
		Joins("LEFT JOIN (?) AS reserved ON reserved.reserved_product_id = product.product_id", reservedQuantities(db.Session(&gorm.Session{NewDB: true}), w)).
		Joins("LEFT JOIN categories ON categories.id = product.category_id")
}

func adjustStock(db *gorm.DB, productID uint64, delta int64) (int64, error) {
	res := db.Model(&domain.Product{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"stock":   gorm.Expr("stock + ?", delta),
			"version": gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}
