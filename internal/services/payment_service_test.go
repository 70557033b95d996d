package services

import (
	"context"
	"testing"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row surfaces as not found", func(t *testing.T) {
		repo := new(MockPaymentConfigRepository)
		service := NewPaymentService(repo)

		repo.On("Update", ctx, mock.Anything).Return(repository.ErrPaymentConfigNotFound)
		repo.On("Delete", ctx, int64(404)).Return(repository.ErrPaymentConfigNotFound)

		assert.ErrorIs(t, service.Update(ctx, &model.PaymentConfig{ID: 404}), ErrNotFound)
		assert.ErrorIs(t, service.Delete(ctx, 404), ErrNotFound)
	})

	t.Run("duplicate method surfaces as validation error", func(t *testing.T) {
		repo := new(MockPaymentConfigRepository)
		service := NewPaymentService(repo)

		repo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicatePaymentMethod)

		_, err := service.Create(ctx, &model.PaymentConfig{Method: model.MethodWave})
		assert.ErrorIs(t, err, ErrMethodTaken)
	})

	t.Run("create passes through", func(t *testing.T) {
		repo := new(MockPaymentConfigRepository)
		service := NewPaymentService(repo)

		repo.On("Create", ctx, mock.Anything).
			Return(&model.PaymentConfig{ID: 1, Method: model.MethodMTN}, nil)

		created, err := service.Create(ctx, &model.PaymentConfig{Method: model.MethodMTN})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})
}
