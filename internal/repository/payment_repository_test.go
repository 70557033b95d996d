package repository

import (
	"context"
	"testing"

	"github.com/skserveur/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentConfigRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentConfigRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.PaymentConfig{
		Method: model.MethodWave, Number: "+221770000001", Active: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("one row per method", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.PaymentConfig{
			Method: model.MethodWave, Number: "+221770000002", Active: true,
		})
		assert.ErrorIs(t, err, ErrDuplicatePaymentMethod)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("other methods still allowed", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.PaymentConfig{
			Method: model.MethodMTN, Number: "+221780000001", Active: false,
		})
		require.NoError(t, err)
	})
}

func TestPaymentConfigRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentConfigRepository(db)
	ctx := context.Background()

	wave, err := repo.Create(ctx, &model.PaymentConfig{
		Method: model.MethodWave, Number: "+221770000001", Active: true,
	})
	require.NoError(t, err)
	mtn, err := repo.Create(ctx, &model.PaymentConfig{
		Method: model.MethodMTN, Number: "+221780000001", Active: true,
	})
	require.NoError(t, err)

	t.Run("updates own row", func(t *testing.T) {
		wave.Number = "+221770000099"
		wave.Active = false
		require.NoError(t, repo.Update(ctx, wave))

		list, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, model.MethodMTN, list[0].Method)
	})

	t.Run("cannot steal another row's method", func(t *testing.T) {
		mtn.Method = model.MethodWave
		assert.ErrorIs(t, repo.Update(ctx, mtn), ErrDuplicatePaymentMethod)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := repo.Update(ctx, &model.PaymentConfig{
			ID: 404, Method: model.MethodOrange, Number: "+221760000001",
		})
		assert.ErrorIs(t, err, ErrPaymentConfigNotFound)
	})
}

func TestPaymentConfigRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentConfigRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.PaymentConfig{
		Method: model.MethodOrange, Number: "+221760000001", Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrPaymentConfigNotFound)
}
