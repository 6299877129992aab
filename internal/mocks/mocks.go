package mocks

import (
	"context"
	"shop-service/internal/domain"
	"shop-service/internal/infra/session"
	"shop-service/internal/repository"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockProductRepository struct {
	mock.Mock
}

type MockFavouriteRepository struct {
	mock.Mock
}

type MockCategoryRepository struct {
	mock.Mock
}

type MockDiscountRepository struct {
	mock.Mock
}

type MockDeliveryRepository struct {
	mock.Mock
}

type MockCustomerRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockSessionStore struct {
	mock.Mock
}

var (
	_ repository.OrderRepository     = (*MockOrderRepository)(nil)
	_ repository.ProductRepository   = (*MockProductRepository)(nil)
	_ repository.FavouriteRepository = (*MockFavouriteRepository)(nil)
	_ repository.CategoryRepository  = (*MockCategoryRepository)(nil)
	_ repository.DiscountRepository  = (*MockDiscountRepository)(nil)
	_ repository.DeliveryRepository  = (*MockDeliveryRepository)(nil)
	_ repository.CustomerRepository  = (*MockCustomerRepository)(nil)
	_ session.StoreInterface         = (*MockSessionStore)(nil)
)

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

// Orders

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uint64, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, customerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindHistory(ctx context.Context, customerID uint64, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindUnfinalized(ctx context.Context, orderedBefore time.Time, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, orderedBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Lines(ctx context.Context, w domain.Window, f repository.LineFilter) ([]domain.OrderLine, error) {
	args := m.Called(ctx, w, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) FindLine(ctx context.Context, orderID, productID uint64) (*domain.OrderDetail, error) {
	args := m.Called(ctx, orderID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) AddLine(ctx context.Context, line *domain.OrderDetail) (int64, error) {
	args := m.Called(ctx, line)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SetLineQty(ctx context.Context, line *domain.OrderDetail) (int64, error) {
	args := m.Called(ctx, line)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) DeleteLine(ctx context.Context, orderID, productID uint64) (int64, error) {
	args := m.Called(ctx, orderID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Checkout(ctx context.Context, c *domain.Checkout) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Finalize(ctx context.Context, plan *domain.FinalizationPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockOrderRepository) FindAddress(ctx context.Context, id uint64) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *MockOrderRepository) FindPayment(ctx context.Context, id uint64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// Products

func (m *MockProductRepository) List(ctx context.Context, w domain.Window, q repository.ProductQuery) ([]domain.ProductView, error) {
	args := m.Called(ctx, w, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductView), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, w domain.Window, id uint64) (*domain.ProductView, error) {
	args := m.Called(ctx, w, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductView), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uint64, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

// Favourites

func (m *MockFavouriteRepository) List(ctx context.Context, w domain.Window, customerID uint64) ([]domain.FavouriteView, error) {
	args := m.Called(ctx, w, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavouriteView), args.Error(1)
}

func (m *MockFavouriteRepository) Add(ctx context.Context, customerID, productID uint64) (int64, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavouriteRepository) Remove(ctx context.Context, customerID, productID uint64) (int64, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Get(0).(int64), args.Error(1)
}

// Categories

func (m *MockCategoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *domain.Category) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// Discounts

func (m *MockDiscountRepository) List(ctx context.Context) ([]domain.DiscountCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) FindByID(ctx context.Context, id uint64) (*domain.DiscountCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) FindActiveCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) Create(ctx context.Context, d *domain.DiscountCode) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) Update(ctx context.Context, d *domain.DiscountCode) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiscountRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// Delivery methods

func (m *MockDeliveryRepository) ListActive(ctx context.Context) ([]domain.DeliveryMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryMethod), args.Error(1)
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uint64) (*domain.DeliveryMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryMethod), args.Error(1)
}

// Customers

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// Sessions

func (m *MockSessionStore) Create(ctx context.Context, s *session.Session) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
