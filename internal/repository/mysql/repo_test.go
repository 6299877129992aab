package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shop-service/internal/domain"
	schema "shop-service/internal/infra/mysql"
	"shop-service/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, schema.Migrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	orders   repository.OrderRepository
	products repository.ProductRepository
	favs     repository.FavouriteRepository
	customer domain.Customer
	product  domain.Product
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	f := &fixture{
		db:       db,
		orders:   NewOrderRepository(db, zap.NewNop()),
		products: NewProductRepository(db, zap.NewNop()),
		favs:     NewFavouriteRepository(db, zap.NewNop()),
		ctx:      context.Background(),
	}
	f.customer = domain.Customer{Email: "a@example.com", Password: "x"}
	require.NoError(t, db.Create(&f.customer).Error)
	f.product = f.createProduct(t, "Fern", 10, now.Add(-48*time.Hour))
	return f
}

func (f *fixture) createProduct(t *testing.T, name string, stock int64, created time.Time) domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Stock: stock, Price: decimal.RequireFromString("12.50"), Version: 1, CreatedOn: created}
	require.NoError(t, f.products.Create(f.ctx, &p))
	return p
}

func (f *fixture) basket(t *testing.T) domain.Order {
	t.Helper()
	o := domain.Order{CustomerID: f.customer.ID, Status: domain.StatusBasket}
	require.NoError(t, f.orders.Save(f.ctx, &o))
	return o
}

func (f *fixture) line(t *testing.T, orderID, productID uint64, qty int64, added time.Time) {
	t.Helper()
	rows, err := f.orders.AddLine(f.ctx, &domain.OrderDetail{OrderID: orderID, ProductID: productID, Qty: qty, DateAdded: added})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
}

func (f *fixture) place(t *testing.T, orderID uint64, at time.Time) {
	t.Helper()
	rows, err := f.orders.Checkout(f.ctx, &domain.Checkout{
		OrderID:    orderID,
		CustomerID: f.customer.ID,
		Delivery:   domain.Address{House: "1", Street: "High Street"},
		Payment:    domain.Payment{Type: "card", Total: decimal.RequireFromString("25.00")},
		OrderDate:  at,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
}

func TestVirtualReservation(t *testing.T) {
	f := newFixture(t)
	pid := f.product.ID

	recent := f.basket(t)
	f.line(t, recent.ID, pid, 2, now.Add(-10*time.Minute))

	boundary := f.basket(t)
	f.line(t, boundary.ID, pid, 1, now.Add(-time.Hour))

	stale := f.basket(t)
	f.line(t, stale.ID, pid, 5, now.Add(-time.Hour-time.Second))

	placed := f.basket(t)
	f.line(t, placed.ID, pid, 4, now.Add(-5*time.Minute))
	f.place(t, placed.ID, now.Add(-4*time.Minute))

	view, err := f.products.FindByID(f.ctx, domain.WindowAt(now), pid)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, int64(3), view.VirtualStockReserved)
	assert.Equal(t, int64(10), view.Stock)
	assert.Equal(t, int64(7), view.AvailableStock)

	list, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, view.AvailableStock, list[0].AvailableStock)

	later, err := f.products.FindByID(f.ctx, domain.WindowAt(now.Add(2*time.Hour)), pid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), later.VirtualStockReserved)
	assert.Equal(t, int64(10), later.AvailableStock)
}

func TestProductFindByID_Missing(t *testing.T) {
	f := newFixture(t)
	view, err := f.products.FindByID(f.ctx, domain.WindowAt(now), 999)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestAddLine_Idempotent(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)

	f.line(t, o.ID, f.product.ID, 1, now)
	rows, err := f.orders.AddLine(f.ctx, &domain.OrderDetail{OrderID: o.ID, ProductID: f.product.ID, Qty: 1, DateAdded: now})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	line, err := f.orders.FindLine(f.ctx, o.ID, f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(1), line.Qty)
}

func TestSetLineQty(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)
	pid := f.product.ID

	for i := 0; i < 2; i++ {
		_, err := f.orders.SetLineQty(f.ctx, &domain.OrderDetail{OrderID: o.ID, ProductID: pid, Qty: 3, DateAdded: now})
		require.NoError(t, err)
	}
	line, err := f.orders.FindLine(f.ctx, o.ID, pid)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(3), line.Qty)

	var count int64
	require.NoError(t, f.db.Model(&domain.OrderDetail{}).Where("order_id = ?", o.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rows, err := f.orders.DeleteLine(f.ctx, o.ID, pid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	line, err = f.orders.FindLine(f.ctx, o.ID, pid)
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestLines_ByCustomerAndStatus(t *testing.T) {
	f := newFixture(t)
	other := f.createProduct(t, "Cactus", 3, now)
	o := f.basket(t)
	f.line(t, o.ID, f.product.ID, 2, now.Add(-time.Minute))
	f.line(t, o.ID, other.ID, 1, now.Add(-3*time.Hour))

	f.basket(t)

	lines, err := f.orders.Lines(f.ctx, domain.WindowAt(now), repository.LineFilter{CustomerID: f.customer.ID, Status: domain.StatusBasket})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, f.product.ID, lines[0].ProductID)
	assert.Equal(t, "Fern", lines[0].Name)
	assert.Equal(t, int64(2), lines[0].VirtualStockReserved)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, lines[0].DateAdded.Equal(now.Add(-time.Minute)))

	assert.Equal(t, other.ID, lines[1].ProductID)
	assert.Equal(t, int64(0), lines[1].VirtualStockReserved)

	ordered, err := f.orders.Lines(f.ctx, domain.WindowAt(now), repository.LineFilter{CustomerID: f.customer.ID, Status: domain.StatusOrdered})
	require.NoError(t, err)
	assert.Empty(t, ordered)
}

func TestCheckout_TransitionsOnce(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)
	f.line(t, o.ID, f.product.ID, 1, now)

	f.place(t, o.ID, now)

	stored, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOrdered, stored.Status)
	require.NotNil(t, stored.OrderDate)
	assert.True(t, stored.OrderDate.Equal(now))
	require.NotNil(t, stored.PaymentID)
	require.NotNil(t, stored.DeliveryAddressID)
	assert.Nil(t, stored.DiscountID)
	assert.Nil(t, stored.FinalizedAt)

	payment, err := f.orders.FindPayment(f.ctx, *stored.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, *stored.DeliveryAddressID, payment.BillingAddressID)

	rows, err := f.orders.Checkout(f.ctx, &domain.Checkout{OrderID: o.ID, CustomerID: f.customer.ID, OrderDate: now})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	var addresses int64
	require.NoError(t, f.db.Model(&domain.Address{}).Count(&addresses).Error)
	assert.Equal(t, int64(1), addresses, "rolled back checkout must not leave an address behind")
}

func TestCheckout_SeparateBilling(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)

	rows, err := f.orders.Checkout(f.ctx, &domain.Checkout{
		OrderID:    o.ID,
		CustomerID: f.customer.ID,
		Delivery:   domain.Address{House: "1"},
		Billing:    &domain.Address{House: "2"},
		OrderDate:  now,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	stored, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	payment, err := f.orders.FindPayment(f.ctx, *stored.PaymentID)
	require.NoError(t, err)
	assert.NotEqual(t, *stored.DeliveryAddressID, payment.BillingAddressID)

	billing, err := f.orders.FindAddress(f.ctx, payment.BillingAddressID)
	require.NoError(t, err)
	assert.Equal(t, "2", billing.House)
}

func TestCheckout_WrongCustomer(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)

	rows, err := f.orders.Checkout(f.ctx, &domain.Checkout{OrderID: o.ID, CustomerID: f.customer.ID + 1, OrderDate: now})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	stored, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBasket, stored.Status)
}

func TestFinalize_RunsOnce(t *testing.T) {
	f := newFixture(t)
	stale := f.createProduct(t, "Cactus", 3, now)
	o := f.basket(t)
	f.line(t, o.ID, f.product.ID, 2, now.Add(-time.Minute))
	f.line(t, o.ID, stale.ID, 1, now.Add(-2*time.Hour))
	f.place(t, o.ID, now)

	w := domain.WindowAt(now)
	lines, err := f.orders.Lines(f.ctx, w, repository.LineFilter{OrderID: o.ID})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	plan := &domain.FinalizationPlan{OrderID: o.ID, CustomerID: f.customer.ID, FinalizedAt: now}
	for _, l := range lines {
		if w.Classify(l.DateAdded) == domain.LineActive {
			plan.Active = append(plan.Active, l)
		} else {
			plan.Inactive = append(plan.Inactive, l)
		}
	}
	require.Len(t, plan.Active, 1)
	require.Len(t, plan.Inactive, 1)

	require.NoError(t, f.orders.Finalize(f.ctx, plan))
	assert.ErrorIs(t, f.orders.Finalize(f.ctx, plan), repository.ErrAlreadyFinalized)

	fern, err := f.products.FindByID(f.ctx, w, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), fern.Stock)
	assert.Equal(t, uint64(2), fern.Version)

	cactus, err := f.products.FindByID(f.ctx, w, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cactus.Stock)

	remaining, err := f.orders.Lines(f.ctx, w, repository.LineFilter{OrderID: o.ID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, f.product.ID, remaining[0].ProductID)

	favs, err := f.favs.List(f.ctx, w, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, stale.ID, favs[0].ID)

	stored, err := f.orders.FindByID(f.ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.FinalizedAt)
}

func TestFindUnfinalized(t *testing.T) {
	f := newFixture(t)
	early := f.basket(t)
	f.place(t, early.ID, now.Add(-10*time.Minute))
	fresh := f.basket(t)
	f.place(t, fresh.ID, now)
	f.basket(t)

	orders, err := f.orders.FindUnfinalized(f.ctx, now.Add(-time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, early.ID, orders[0].ID)

	require.NoError(t, f.orders.Finalize(f.ctx, &domain.FinalizationPlan{OrderID: early.ID, CustomerID: f.customer.ID, FinalizedAt: now}))
	orders, err = f.orders.FindUnfinalized(f.ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, fresh.ID, orders[0].ID)
}

func TestFindHistory(t *testing.T) {
	f := newFixture(t)
	first := f.basket(t)
	f.place(t, first.ID, now.Add(-time.Hour))
	second := f.basket(t)
	f.place(t, second.ID, now)
	f.basket(t)

	all, err := f.orders.FindHistory(f.ctx, f.customer.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	latest, err := f.orders.FindHistory(f.ctx, f.customer.ID, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, second.ID, latest[0].ID)
}

func TestProductUpdate_VersionChecked(t *testing.T) {
	f := newFixture(t)
	edit := f.product
	edit.Name = "Boston Fern"

	rows, err := f.products.Update(f.ctx, &edit)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	edit.Name = "Stale edit"
	rows, err = f.products.Update(f.ctx, &edit)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = f.products.AdjustStock(f.ctx, f.product.ID, -15)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	view, err := f.products.FindByID(f.ctx, domain.WindowAt(now), f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boston Fern", view.Name)
	assert.Equal(t, int64(-5), view.Stock)
	assert.Equal(t, uint64(3), view.Version)
}

func TestProductList_Queries(t *testing.T) {
	f := newFixture(t)
	cat := domain.Category{Name: "Cacti", StatusActive: true}
	require.NoError(t, f.db.Create(&cat).Error)

	cactus := domain.Product{Name: "Barrel Cactus", CategoryID: cat.ID, Stock: 5, Price: decimal.NewFromInt(8), DiscountPercent: 25, Version: 1, CreatedOn: now}
	require.NoError(t, f.products.Create(f.ctx, &cactus))

	o := f.basket(t)
	f.line(t, o.ID, cactus.ID, 3, now)
	f.place(t, o.ID, now)

	sale, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{OnSale: true})
	require.NoError(t, err)
	require.Len(t, sale, 1)
	assert.Equal(t, "Cacti", sale[0].CategoryName)

	byCategory, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	search, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{Search: "ern"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, f.product.ID, search[0].ID)

	newest, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{NewArrivals: true, Limit: 6})
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, cactus.ID, newest[0].ID)

	best, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{BestSellers: true, Limit: 6})
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, cactus.ID, best[0].ID)
	assert.Equal(t, int64(3), best[0].OrderedStock)
}

func TestFavourites(t *testing.T) {
	f := newFixture(t)

	rows, err := f.favs.Add(f.ctx, f.customer.ID, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = f.favs.Add(f.ctx, f.customer.ID, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	favs, err := f.favs.List(f.ctx, domain.WindowAt(now), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, f.customer.ID, favs[0].CustomerID)
	assert.Equal(t, int64(10), favs[0].AvailableStock)

	rows, err = f.favs.Remove(f.ctx, f.customer.ID, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestCatalogRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db, zap.NewNop())
	discounts := NewDiscountRepository(db, zap.NewNop())
	deliveries := NewDeliveryRepository(db, zap.NewNop())
	customers := NewCustomerRepository(db, zap.NewNop())

	missing, err := categories.FindByName(ctx, "Ferns")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := &domain.Category{Name: "Ferns", StatusActive: true}
	require.NoError(t, categories.Create(ctx, c))
	require.NoError(t, categories.Create(ctx, &domain.Category{Name: "Hidden"}))

	active, err := categories.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)

	c.StatusActive = false
	_, err = categories.Update(ctx, c)
	require.NoError(t, err)
	active, err = categories.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, discounts.Create(ctx, &domain.DiscountCode{Code: "SPRING10", Value: 10, Active: true}))
	require.NoError(t, discounts.Create(ctx, &domain.DiscountCode{Code: "OLD", Value: 5}))
	d, err := discounts.FindActiveCode(ctx, "SPRING10")
	require.NoError(t, err)
	require.NotNil(t, d)
	d, err = discounts.FindActiveCode(ctx, "OLD")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Error(t, discounts.Create(ctx, &domain.DiscountCode{Code: "SPRING10", Value: 20}))

	require.NoError(t, db.Create(&domain.DeliveryMethod{Name: "Standard", EstimateWorkingDays: 3, Active: true}).Error)
	require.NoError(t, db.Create(&domain.DeliveryMethod{Name: "Retired", EstimateWorkingDays: 1}).Error)
	methods, err := deliveries.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "Standard", methods[0].Name)

	require.NoError(t, customers.Save(ctx, &domain.Customer{Email: "b@example.com", Password: "hash"}))
	found, err := customers.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	none, err := customers.FindByID(ctx, found.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestProductList_SearchIsLiteral(t *testing.T) {
	f := newFixture(t)
	f.createProduct(t, "Fern_XL", 2, now)
	f.createProduct(t, "100% Moss", 2, now)

	tests := []struct {
		search   string
		expected []string
	}{
		{search: "_", expected: []string{"Fern_XL"}},
		{search: "%", expected: []string{"100% Moss"}},
		{search: "!", expected: nil},
		{search: "fern", expected: []string{"Fern_XL", "Fern"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			found, err := f.products.List(f.ctx, domain.WindowAt(now), repository.ProductQuery{Search: tt.search})
			require.NoError(t, err)
			var names []string
			for _, p := range found {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestAddLine_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	o := f.basket(t)

	rows, err := f.orders.AddLine(f.ctx, &domain.OrderDetail{OrderID: o.ID, ProductID: 404, Qty: 1, DateAdded: now})
	assert.ErrorIs(t, err, repository.ErrUnknownProduct)
	assert.Zero(t, rows)

	rows, err = f.orders.SetLineQty(f.ctx, &domain.OrderDetail{OrderID: o.ID, ProductID: 404, Qty: 2, DateAdded: now})
	assert.ErrorIs(t, err, repository.ErrUnknownProduct)
	assert.Zero(t, rows)

	var count int64
	require.NoError(t, f.db.Model(&domain.OrderDetail{}).Where("order_id = ?", o.ID).Count(&count).Error)
	assert.Zero(t, count)
}
