package models

// Request models. Each is the candidate shape validated before a write.

type CreateUser struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	IsMain   bool   `json:"is_main"`
}

type CreateAccount struct {
	UserID    int64   `json:"user_id"`
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Principle float32 `json:"principle"`
	Value     float32 `json:"value"`
}

// CreateTransaction leaves timestamps optional; zero values are stamped
// with the current time on create.
type CreateTransaction struct {
	CreatedTimestamp float64 `json:"created_timestamp"`
	UpdatedTimestamp float64 `json:"updated_timestamp"`
	SrcUsername      string  `json:"src_username"`
	DstUsername      string  `json:"dst_username"`
	SrcAccountID     *int64  `json:"src_account_id"`
	DstAccountID     *int64  `json:"dst_account_id"`
	Tags             string  `json:"tags"`
	Description      string  `json:"description"`
	SrcCurrency      string  `json:"src_currency"`
	DstCurrency      string  `json:"dst_currency"`
	SrcDebit         float32 `json:"src_debit"`
	DstCredit        float32 `json:"dst_credit"`
}
