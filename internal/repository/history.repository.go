package repository

import (
	"context"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/pg"
)

// HistoryRepository appends immutable outcome records. There is deliberately
// no update or delete method.
type HistoryRepository struct {
	*pg.DB
}

func NewHistoryRepository(db *pg.DB) *HistoryRepository {
	return &HistoryRepository{
		db,
	}
}

func (r *HistoryRepository) Append(ctx context.Context, userID int64, serviceName string, price uint, outcome model.HistoryOutcome) (*model.HistoryEntry, error) {
	entity := &HistoryEntity{
		UserID:      userID,
		ServiceName: serviceName,
		Price:       price,
		Outcome:     string(outcome),
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toHistoryModel(entity), nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64) ([]*model.HistoryEntry, error) {
	var entities []*HistoryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toHistoryModels(entities), nil
}
