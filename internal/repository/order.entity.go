package repository

import (
	"time"

	"github.com/skserveur/storefront/internal/model"
)

type OrderEntity struct {
	ID          int64  `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64  `db:"user_id"      gorm:"column:user_id;not null;index"`
	ProductType string `db:"product_type" gorm:"column:product_type;not null"`
	ProductName string `db:"product_name" gorm:"column:product_name;not null"`
	Price       uint   `db:"price"        gorm:"column:price;not null"`

	Email           string `db:"email"            gorm:"column:email"`
	ServiceUsername string `db:"service_username" gorm:"column:service_username"`
	Imei            string `db:"imei"             gorm:"column:imei"`
	PhotoLink       string `db:"photo_link"       gorm:"column:photo_link"`

	Status    string    `db:"status"     gorm:"column:status;not null;default:pending;index"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`

	FieldValues []*OrderFieldValueEntity `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderEntity) TableName() string {
	return "orders"
}

type OrderFieldValueEntity struct {
	ID            int64  `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	OrderID       int64  `db:"order_id"        gorm:"column:order_id;not null;index"`
	CustomFieldID int64  `db:"custom_field_id" gorm:"column:custom_field_id"`
	Name          string `db:"name"            gorm:"column:name;not null"`
	Value         string `db:"value"           gorm:"column:value;not null"`
}

func (OrderFieldValueEntity) TableName() string {
	return "order_field_values"
}

func toOrderEntity(m *model.Order) *OrderEntity {
	if m == nil {
		return nil
	}
	e := &OrderEntity{
		ID:              m.ID,
		UserID:          m.UserID,
		ProductType:     string(m.ProductType),
		ProductName:     m.ProductName,
		Price:           m.Price,
		Email:           m.Email,
		ServiceUsername: m.ServiceUsername,
		Imei:            m.Imei,
		PhotoLink:       m.PhotoLink,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
	}
	for _, fv := range m.FieldValues {
		e.FieldValues = append(e.FieldValues, &OrderFieldValueEntity{
			ID:            fv.ID,
			OrderID:       fv.OrderID,
			CustomFieldID: fv.CustomFieldID,
			Name:          fv.Name,
			Value:         fv.Value,
		})
	}
	return e
}

func toOrderModel(e *OrderEntity) *model.Order {
	if e == nil {
		return nil
	}
	m := &model.Order{
		ID:              e.ID,
		UserID:          e.UserID,
		ProductType:     model.ProductType(e.ProductType),
		ProductName:     e.ProductName,
		Price:           e.Price,
		Email:           e.Email,
		ServiceUsername: e.ServiceUsername,
		Imei:            e.Imei,
		PhotoLink:       e.PhotoLink,
		Status:          model.OrderStatus(e.Status),
		CreatedAt:       e.CreatedAt,
	}
	for _, fv := range e.FieldValues {
		m.FieldValues = append(m.FieldValues, model.OrderFieldValue{
			ID:            fv.ID,
			OrderID:       fv.OrderID,
			CustomFieldID: fv.CustomFieldID,
			Name:          fv.Name,
			Value:         fv.Value,
		})
	}
	return m
}

func toOrderModels(entities []*OrderEntity) []*model.Order {
	if entities == nil {
		return nil
	}
	models := make([]*model.Order, len(entities))
	for i, e := range entities {
		models[i] = toOrderModel(e)
	}
	return models
}
