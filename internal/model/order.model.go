package model

import "time"

// OrderStatus is the lifecycle state of an order. pending is the only
// non-terminal state; success and rejected are final.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusSuccess  OrderStatus = "success"
	OrderStatusRejected OrderStatus = "rejected"
)

// Order is a purchase attempt. Name and price are snapshots of the catalog
// row at creation time and never follow later catalog edits.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	ProductType ProductType `json:"product_type"`
	ProductName string      `json:"product_name"`
	Price       uint        `json:"price"`

	Email           string `json:"email,omitempty"`
	ServiceUsername string `json:"service_username,omitempty"`
	Imei            string `json:"imei,omitempty"`
	PhotoLink       string `json:"photo_link,omitempty"`

	Status      OrderStatus       `json:"status"`
	FieldValues []OrderFieldValue `json:"field_values,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrderFieldValue is one answered custom field, one row per answer.
type OrderFieldValue struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"order_id"`
	CustomFieldID int64  `json:"custom_field_id"`
	Name          string `json:"name"`
	Value         string `json:"value"`
}

// OrderCreateRequest carries the raw submitted form values; validation happens
// against the product's resolved FieldSet.
type OrderCreateRequest struct {
	ProductType ProductType       `json:"-"`
	ProductID   int64             `json:"-"`
	Fields      map[string]string `json:"fields"`
}

// BatchResult reports the outcome of one row of an admin bulk action.
type BatchResult struct {
	ID      int64  `json:"id"`
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// AppliedCount tallies the rows a bulk action actually transitioned.
func AppliedCount(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Applied {
			n++
		}
	}
	return n
}
