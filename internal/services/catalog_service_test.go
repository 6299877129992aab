package services

import (
	"context"
	"errors"
	"shop-service/internal/domain"
	"shop-service/internal/mocks"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalogService(c *mocks.MockCategoryRepository, d *mocks.MockDiscountRepository, dm *mocks.MockDeliveryRepository) *CatalogService {
	s := NewCatalogService(c, d, dm, zap.NewNop())
	s.SetClock(FixedClock(TestNow))
	return s
}

func TestCatalogService_CreateDiscount(t *testing.T) {
	tests := []struct {
		name          string
		discount      *domain.DiscountCode
		setupMocks    func(*mocks.MockDiscountRepository)
		expectedError error
	}{
		{
			name:     "new code",
			discount: &domain.DiscountCode{Code: "SPRING10", Value: 10, Active: true},
			setupMocks: func(mockRepo *mocks.MockDiscountRepository) {
				mockRepo.On("FindByCode", mock.Anything, "SPRING10").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DiscountCode")).Return(nil)
			},
		},
		{
			name:     "duplicate code",
			discount: &domain.DiscountCode{Code: "SPRING10", Value: 15},
			setupMocks: func(mockRepo *mocks.MockDiscountRepository) {
				mockRepo.On("FindByCode", mock.Anything, "SPRING10").Return(&domain.DiscountCode{ID: 1, Code: "SPRING10"}, nil)
			},
			expectedError: ErrDuplicateDiscount,
		},
		{
			name:          "value out of range",
			discount:      &domain.DiscountCode{Code: "HUGE", Value: 150},
			setupMocks:    func(*mocks.MockDiscountRepository) {},
			expectedError: ErrInvalidDiscount,
		},
		{
			name:          "blank code",
			discount:      &domain.DiscountCode{Code: "  ", Value: 5},
			setupMocks:    func(*mocks.MockDiscountRepository) {},
			expectedError: ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockDiscountRepository)
			tt.setupMocks(mockRepo)

			err := newTestCatalogService(nil, mockRepo, nil).CreateDiscount(context.Background(), tt.discount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_UpdateDiscount_CodeTakenByAnother(t *testing.T) {
	mockRepo := new(mocks.MockDiscountRepository)
	mockRepo.On("FindByID", mock.Anything, uint64(2)).Return(&domain.DiscountCode{ID: 2, Code: "OLD"}, nil)
	mockRepo.On("FindByCode", mock.Anything, "SPRING10").Return(&domain.DiscountCode{ID: 1, Code: "SPRING10"}, nil)

	err := newTestCatalogService(nil, mockRepo, nil).UpdateDiscount(context.Background(), &domain.DiscountCode{ID: 2, Code: "SPRING10", Value: 10})
	assert.ErrorIs(t, err, ErrDuplicateDiscount)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogService_CheckDiscount(t *testing.T) {
	mockRepo := new(mocks.MockDiscountRepository)
	mockRepo.On("FindActiveCode", mock.Anything, "SPRING10").Return(&domain.DiscountCode{ID: 1, Code: "SPRING10", Value: 10, Active: true}, nil)
	mockRepo.On("FindActiveCode", mock.Anything, "EXPIRED").Return(nil, nil)

	s := newTestCatalogService(nil, mockRepo, nil)

	d, err := s.CheckDiscount(context.Background(), " SPRING10 ")
	require.NoError(t, err)
	assert.Equal(t, int64(10), d.Value)

	_, err = s.CheckDiscount(context.Background(), "EXPIRED")
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestCatalogService_DeleteDiscount(t *testing.T) {
	mockRepo := new(mocks.MockDiscountRepository)
	mockRepo.On("Delete", mock.Anything, uint64(1)).Return(int64(1), nil)
	mockRepo.On("Delete", mock.Anything, uint64(2)).Return(int64(0), nil)

	s := newTestCatalogService(nil, mockRepo, nil)
	assert.NoError(t, s.DeleteDiscount(context.Background(), 1))
	assert.ErrorIs(t, s.DeleteDiscount(context.Background(), 2), ErrDiscountNotFound)
}

func TestCatalogService_CreateCategory(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		mockRepo := new(mocks.MockCategoryRepository)
		mockRepo.On("FindByName", mock.Anything, "Cacti").Return(&domain.Category{ID: 1, Name: "Cacti"}, nil)

		err := newTestCatalogService(mockRepo, nil, nil).CreateCategory(context.Background(), &domain.Category{Name: "Cacti"})
		assert.ErrorIs(t, err, ErrDuplicateCategory)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		mockRepo := new(mocks.MockCategoryRepository)
		mockRepo.On("FindByName", mock.Anything, "Ferns").Return(nil, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Category).ID = 5
		})

		c := &domain.Category{Name: " Ferns ", StatusActive: true}
		require.NoError(t, newTestCatalogService(mockRepo, nil, nil).CreateCategory(context.Background(), c))
		assert.Equal(t, uint64(5), c.ID)
		assert.Equal(t, "Ferns", c.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestCatalogService_UpdateCategory_KeepsImage(t *testing.T) {
	mockRepo := new(mocks.MockCategoryRepository)
	mockRepo.On("FindByID", mock.Anything, uint64(3)).Return(&domain.Category{ID: 3, Name: "Ferns", Img: ImageURL("ferns.png")}, nil)
	mockRepo.On("FindByName", mock.Anything, "Big Ferns").Return(nil, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Img == ImageURL("ferns.png") && c.Name == "Big Ferns"
	})).Return(int64(1), nil)

	err := newTestCatalogService(mockRepo, nil, nil).UpdateCategory(context.Background(), &domain.Category{ID: 3, Name: "Big Ferns"})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteCategory_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockCategoryRepository)
	mockRepo.On("FindByID", mock.Anything, uint64(3)).Return(nil, nil)

	err := newTestCatalogService(mockRepo, nil, nil).DeleteCategory(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_Categories(t *testing.T) {
	mockRepo := new(mocks.MockCategoryRepository)
	mockRepo.On("List", mock.Anything, true).Return(nil, nil)
	mockRepo.On("List", mock.Anything, false).Return(nil, errors.New("database error"))

	s := newTestCatalogService(mockRepo, nil, nil)

	active, err := s.Categories(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, active)

	_, err = s.Categories(context.Background(), false)
	assert.EqualError(t, err, "database error")
}

func TestCatalogService_DeliveryOptions(t *testing.T) {
	mockRepo := new(mocks.MockDeliveryRepository)
	mockRepo.On("ListActive", mock.Anything).Return([]domain.DeliveryMethod{
		{ID: 1, Name: "Standard", DeliveryPrice: decimal.Zero, EstimateWorkingDays: 5, Active: true},
		{ID: 2, Name: "Next day", DeliveryPrice: decimal.RequireFromString("4.99"), EstimateWorkingDays: 1, Active: true},
	}, nil)

	options, err := newTestCatalogService(nil, nil, mockRepo).DeliveryOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "21st October 2026", options[0].EstimatedDeliveryDate)
	assert.Equal(t, "17th October 2026", options[1].EstimatedDeliveryDate)
	assert.Equal(t, "Next day", options[1].Name)
}

func TestCatalogService_WarmupWithoutRedis(t *testing.T) {
	assert.NoError(t, newTestCatalogService(nil, nil, nil).Warmup(context.Background()))
}
