package repository

import (
	"context"
	"errors"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/pg"
)

var (
	ErrPaymentConfigNotFound  = errors.New("payment config not found")
	ErrDuplicatePaymentMethod = errors.New("payment method already configured")
)

type PaymentConfigRepository struct {
	*pg.DB
}

func NewPaymentConfigRepository(db *pg.DB) *PaymentConfigRepository {
	return &PaymentConfigRepository{
		db,
	}
}

func (r *PaymentConfigRepository) List(ctx context.Context) ([]*model.PaymentConfig, error) {
	var entities []*PaymentConfigEntity
	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toPaymentConfigModels(entities), nil
}

// ListActive returns the receiving accounts shown on the funds page.
func (r *PaymentConfigRepository) ListActive(ctx context.Context) ([]*model.PaymentConfig, error) {
	var entities []*PaymentConfigEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toPaymentConfigModels(entities), nil
}

// Create keeps one receiving account per method; a second row for the same
// method is rejected.
func (r *PaymentConfigRepository) Create(ctx context.Context, pc *model.PaymentConfig) (*model.PaymentConfig, error) {
	taken, err := r.methodTaken(ctx, string(pc.Method), 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicatePaymentMethod
	}

	entity := toPaymentConfigEntity(pc)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPaymentConfigModel(entity), nil
}

func (r *PaymentConfigRepository) Update(ctx context.Context, pc *model.PaymentConfig) error {
	taken, err := r.methodTaken(ctx, string(pc.Method), pc.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicatePaymentMethod
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&PaymentConfigEntity{}).
		Where("id = ?", pc.ID).
		Updates(map[string]interface{}{
			"method": string(pc.Method),
			"number": pc.Number,
			"active": pc.Active,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentConfigNotFound
	}
	return nil
}

func (r *PaymentConfigRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&PaymentConfigEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentConfigNotFound
	}
	return nil
}

func (r *PaymentConfigRepository) methodTaken(ctx context.Context, method string, excludeID int64) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&PaymentConfigEntity{}).
		Where("method = ? AND id <> ?", method, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
