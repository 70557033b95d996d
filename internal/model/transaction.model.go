package model

import (
	"errors"
	"time"
)

// PaymentMethod is one of the manual mobile-money channels buyers recharge
// through.
type PaymentMethod string

const (
	MethodWave   PaymentMethod = "wave"
	MethodMTN    PaymentMethod = "mtn"
	MethodOrange PaymentMethod = "orange"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodWave, MethodMTN, MethodOrange:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a recharge declaration.
// pending is the only non-terminal state.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Transaction records a buyer-declared recharge awaiting manual verification.
// The reference is whatever the buyer typed; nothing checks it against a real
// payment.
type Transaction struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Amount    uint              `json:"amount"`
	Method    PaymentMethod     `json:"method"`
	Reference string            `json:"reference"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// TopupRequest is the input for declaring a recharge.
type TopupRequest struct {
	Amount    uint          `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference"`
}

func (r TopupRequest) Validate() error {
	if r.Amount == 0 {
		return errors.New("amount must be positive")
	}
	if !r.Method.IsValid() {
		return errors.New("unknown payment method")
	}
	if r.Reference == "" {
		return errors.New("reference is required")
	}
	return nil
}
