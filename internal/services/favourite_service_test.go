package services

import (
	"context"
	"shop-service/internal/domain"
	"shop-service/internal/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFavouriteService(t *testing.T) {
	mockRepo := new(mocks.MockFavouriteRepository)
	mockRepo.On("List", mock.Anything, domain.WindowAt(TestNow), TestCustomerID).Return(nil, nil)
	mockRepo.On("Add", mock.Anything, TestCustomerID, TestProductID).Return(int64(1), nil).Once()
	mockRepo.On("Add", mock.Anything, TestCustomerID, TestProductID).Return(int64(0), nil).Once()
	mockRepo.On("Remove", mock.Anything, TestCustomerID, TestProductID).Return(int64(1), nil)

	s := NewFavouriteService(mockRepo, zap.NewNop())
	s.SetClock(FixedClock(TestNow))
	ctx := context.Background()

	favs, err := s.List(ctx, TestCustomerID)
	require.NoError(t, err)
	assert.NotNil(t, favs)

	rows, err := s.Add(ctx, TestCustomerID, TestProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = s.Add(ctx, TestCustomerID, TestProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = s.Remove(ctx, TestCustomerID, TestProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = s.Add(ctx, 0, TestProductID)
	assert.ErrorIs(t, err, ErrCustomerRequired)

	mockRepo.AssertExpectations(t)
}
