package repository

import (
	"time"

	"github.com/skserveur/storefront/internal/model"
)

type HistoryEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64     `db:"user_id"      gorm:"column:user_id;not null;index"`
	ServiceName string    `db:"service_name" gorm:"column:service_name;not null"`
	Price       uint      `db:"price"        gorm:"column:price;not null"`
	Outcome     string    `db:"outcome"      gorm:"column:outcome;not null"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (HistoryEntity) TableName() string {
	return "history_entries"
}

func toHistoryModel(e *HistoryEntity) *model.HistoryEntry {
	if e == nil {
		return nil
	}
	return &model.HistoryEntry{
		ID:          e.ID,
		UserID:      e.UserID,
		ServiceName: e.ServiceName,
		Price:       e.Price,
		Outcome:     model.HistoryOutcome(e.Outcome),
		CreatedAt:   e.CreatedAt,
	}
}

func toHistoryModels(entities []*HistoryEntity) []*model.HistoryEntry {
	if entities == nil {
		return nil
	}
	models := make([]*model.HistoryEntry, len(entities))
	for i, e := range entities {
		models[i] = toHistoryModel(e)
	}
	return models
}
