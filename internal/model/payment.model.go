package model

// PaymentConfig is the admin-declared external account buyers should send
// money to for a given method. Only active rows are shown on the funds page.
type PaymentConfig struct {
	ID     int64         `json:"id"`
	Method PaymentMethod `json:"method"`
	Number string        `json:"number"`
	Active bool          `json:"active"`
}
