package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rongwang/txvault/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *models.CreateUser) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, user *models.CreateUser) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)

	// Account operations
	CreateAccount(ctx context.Context, account *models.CreateAccount) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	UpdateAccount(ctx context.Context, id int64, account *models.CreateAccount) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*models.Account, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, tx *models.CreateTransaction) (*models.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)

	// ExecTx runs fn against a repository bound to a single store transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	ExecTx(ctx context.Context, fn func(Repository) error) error
}

const (
	userColumns        = `user_id, username, email, is_main`
	accountColumns     = `account_id, user_id, name, currency, principle, value`
	transactionColumns = `tx_id, created_timestamp, updated_timestamp, src_username, dst_username,
		src_account_id, dst_account_id, tags, description, src_currency, dst_currency, src_debit, dst_credit`
)

// SQLRepository implements the Repository interface on top of sqlx.
// Queries use ? placeholders and are rebound for the connected driver.
type SQLRepository struct {
	db  *sqlx.DB // nil inside a transaction
	ext sqlx.ExtContext
}

// NewSQLRepository creates a new repository over db
func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{
		db:  db,
		ext: db,
	}
}

// GetDB returns the underlying database connection
func (r *SQLRepository) GetDB() *sqlx.DB {
	return r.db
}

func (r *SQLRepository) ExecTx(ctx context.Context, fn func(Repository) error) (err error) {
	if r.db == nil {
		return errors.New("store is already in a transaction")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
			}
		}
	}()

	if err = fn(&SQLRepository{ext: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLRepository) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, r.ext, dest, r.ext.Rebind(query), args...)
}

// User repository methods
func (r *SQLRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.get(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *SQLRepository) CreateUser(ctx context.Context, user *models.CreateUser) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, is_main)
		VALUES (?, ?, ?)
		RETURNING ` + userColumns

	var created models.User
	err := r.get(ctx, &created, query, user.Username, user.Email, user.IsMain)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user %q: %w", user.Username, classifyError(err))
	}

	return &created, nil
}

func (r *SQLRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`

	var user models.User
	err := r.get(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query user_id %d: %w", id, err)
	}

	return &user, nil
}

func (r *SQLRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	var user models.User
	err := r.get(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("username %q: %w", username, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query username %q: %w", username, err)
	}

	return &user, nil
}

func (r *SQLRepository) UpdateUser(ctx context.Context, id int64, user *models.CreateUser) (*models.User, error) {
	query := `
		UPDATE users
		SET username = ?, email = ?, is_main = ?
		WHERE user_id = ?
		RETURNING ` + userColumns

	var updated models.User
	err := r.get(ctx, &updated, query, user.Username, user.Email, user.IsMain, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to update user_id %d: %w", id, classifyError(err))
	}

	return &updated, nil
}

func (r *SQLRepository) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	query := `DELETE FROM users WHERE user_id = ? RETURNING ` + userColumns

	var deleted models.User
	err := r.get(ctx, &deleted, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to delete user_id %d: %w", id, classifyError(err))
	}

	return &deleted, nil
}

// Account repository methods
func (r *SQLRepository) CreateAccount(ctx context.Context, account *models.CreateAccount) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, name, currency, principle, value)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + accountColumns

	var created models.Account
	err := r.get(ctx, &created, query,
		account.UserID, account.Name, account.Currency, account.Principle, account.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account %q: %w", account.Name, classifyError(err))
	}

	return &created, nil
}

func (r *SQLRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ?`

	var account models.Account
	err := r.get(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account_id %d: %w", id, err)
	}

	return &account, nil
}

func (r *SQLRepository) UpdateAccount(ctx context.Context, id int64, account *models.CreateAccount) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET user_id = ?, name = ?, currency = ?, principle = ?, value = ?
		WHERE account_id = ?
		RETURNING ` + accountColumns

	var updated models.Account
	err := r.get(ctx, &updated, query,
		account.UserID, account.Name, account.Currency, account.Principle, account.Value, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to update account_id %d: %w", id, classifyError(err))
	}

	return &updated, nil
}

func (r *SQLRepository) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `DELETE FROM accounts WHERE account_id = ? RETURNING ` + accountColumns

	var deleted models.Account
	err := r.get(ctx, &deleted, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to delete account_id %d: %w", id, classifyError(err))
	}

	return &deleted, nil
}

// Transaction repository methods
func (r *SQLRepository) CreateTransaction(ctx context.Context, tx *models.CreateTransaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (
			created_timestamp, updated_timestamp, src_username, dst_username,
			src_account_id, dst_account_id, tags, description,
			src_currency, dst_currency, src_debit, dst_credit
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + transactionColumns

	var created models.Transaction
	err := r.get(ctx, &created, query,
		tx.CreatedTimestamp, tx.UpdatedTimestamp, tx.SrcUsername, tx.DstUsername,
		tx.SrcAccountID, tx.DstAccountID, tx.Tags, tx.Description,
		tx.SrcCurrency, tx.DstCurrency, tx.SrcDebit, tx.DstCredit)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", classifyError(err))
	}

	return &created, nil
}

func (r *SQLRepository) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tx_id = ?`

	var tx models.Transaction
	err := r.get(ctx, &tx, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tx_id %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query tx_id %d: %w", id, err)
	}

	return &tx, nil
}
