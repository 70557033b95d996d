package model

// Wallet holds the per-user stored-value balance, the sole payment instrument
// of the storefront. Exactly one row per user, created lazily.
type Wallet struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	Balance uint  `json:"balance"`
}
