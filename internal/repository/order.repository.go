package repository

import (
	"context"
	"errors"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/pg"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	*pg.DB
}

func NewOrderRepository(db *pg.DB) *OrderRepository {
	return &OrderRepository{
		db,
	}
}

// Create inserts the order together with its answered custom fields. gorm
// cascades the FieldValues association in the same statement batch, so the
// caller's transaction covers both.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	entity := toOrderEntity(order)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toOrderModel(entity), nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	var entity OrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("FieldValues").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return toOrderModel(&entity), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, status model.OrderStatus) ([]*model.Order, error) {
	q := r.Read(ctx).WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var entities []*OrderEntity
	if err := q.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toOrderModels(entities), nil
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	var entities []*OrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toOrderModels(entities), nil
}

// MarkStatus transitions an order with a guarded UPDATE; false means the row
// had already left the source status and must be skipped.
func (r *OrderRepository) MarkStatus(ctx context.Context, id int64, from, to model.OrderStatus) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
