package repository

import (
	"time"

	"github.com/skserveur/storefront/internal/model"
)

type TransactionEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `db:"user_id"    gorm:"column:user_id;not null;index"`
	Amount    uint      `db:"amount"     gorm:"column:amount;not null"`
	Method    string    `db:"method"     gorm:"column:method;not null"`
	Reference string    `db:"reference"  gorm:"column:reference;not null"`
	Status    string    `db:"status"     gorm:"column:status;not null;default:pending;index"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:        m.ID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		Method:    string(m.Method),
		Reference: m.Reference,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:        e.ID,
		UserID:    e.UserID,
		Amount:    e.Amount,
		Method:    model.PaymentMethod(e.Method),
		Reference: e.Reference,
		Status:    model.TransactionStatus(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
