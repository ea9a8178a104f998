package models

// User represents a user in the system
type User struct {
	UserID   int64  `db:"user_id" json:"user_id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	IsMain   bool   `db:"is_main" json:"is_main"` // Fixed at creation
}

// Account represents a financial account owned by a user
type Account struct {
	AccountID int64   `db:"account_id" json:"account_id"`
	UserID    int64   `db:"user_id" json:"user_id"`
	Name      string  `db:"name" json:"name"`
	Currency  string  `db:"currency" json:"currency"`
	Principle float32 `db:"principle" json:"principle"`
	Value     float32 `db:"value" json:"value"`
}

// Transaction represents a transfer between two accounts.
// Timestamps are unix seconds.
type Transaction struct {
	TxID             int64   `db:"tx_id" json:"tx_id"`
	CreatedTimestamp float64 `db:"created_timestamp" json:"created_timestamp"`
	UpdatedTimestamp float64 `db:"updated_timestamp" json:"updated_timestamp"`
	SrcUsername      string  `db:"src_username" json:"src_username"`
	DstUsername      string  `db:"dst_username" json:"dst_username"`
	SrcAccountID     *int64  `db:"src_account_id" json:"src_account_id"`
	DstAccountID     *int64  `db:"dst_account_id" json:"dst_account_id"`
	Tags             string  `db:"tags" json:"tags"`
	Description      string  `db:"description" json:"description"`
	SrcCurrency      string  `db:"src_currency" json:"src_currency"`
	DstCurrency      string  `db:"dst_currency" json:"dst_currency"`
	SrcDebit         float32 `db:"src_debit" json:"src_debit"`
	DstCredit        float32 `db:"dst_credit" json:"dst_credit"`
}
