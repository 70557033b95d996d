package repository

import (
	"github.com/skserveur/storefront/internal/model"
)

type PaymentConfigEntity struct {
	ID     int64  `db:"id"     gorm:"primaryKey;autoIncrement;column:id"`
	Method string `db:"method" gorm:"column:method;not null;uniqueIndex"`
	Number string `db:"number" gorm:"column:number;not null"`
	Active bool   `db:"active" gorm:"column:active;not null;default:true"`
}

func (PaymentConfigEntity) TableName() string {
	return "payment_configs"
}

func toPaymentConfigModel(e *PaymentConfigEntity) *model.PaymentConfig {
	if e == nil {
		return nil
	}
	return &model.PaymentConfig{
		ID:     e.ID,
		Method: model.PaymentMethod(e.Method),
		Number: e.Number,
		Active: e.Active,
	}
}

func toPaymentConfigEntity(m *model.PaymentConfig) *PaymentConfigEntity {
	if m == nil {
		return nil
	}
	return &PaymentConfigEntity{
		ID:     m.ID,
		Method: string(m.Method),
		Number: m.Number,
		Active: m.Active,
	}
}

func toPaymentConfigModels(entities []*PaymentConfigEntity) []*model.PaymentConfig {
	if entities == nil {
		return nil
	}
	models := make([]*model.PaymentConfig, len(entities))
	for i, e := range entities {
		models[i] = toPaymentConfigModel(e)
	}
	return models
}
