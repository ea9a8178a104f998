package service

import (
	"context"

	"github.com/rongwang/txvault/internal/models"
	"github.com/rongwang/txvault/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Users
	CreateUser(ctx context.Context, req models.CreateUser) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, req models.CreateUser) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) (*models.User, error)

	ValidateCreateUser(ctx context.Context, req models.CreateUser) error
	ValidateUpdateUser(ctx context.Context, userID int64, req models.CreateUser) error
	ValidateDeleteUser(ctx context.Context, userID int64) error
	IsMainUser(ctx context.Context, userID int64) (bool, error)
	IsMainUsername(ctx context.Context, username string) (bool, error)

	// Accounts
	CreateAccount(ctx context.Context, req models.CreateAccount) (*models.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
	UpdateAccount(ctx context.Context, accountID int64, req models.CreateAccount) (*models.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) (*models.Account, error)

	ValidateCreateAccount(ctx context.Context, req models.CreateAccount) error
	ValidateUpdateAccount(ctx context.Context, accountID int64, req models.CreateAccount) error
	ValidateDeleteAccount(ctx context.Context, accountID int64) error
	IsMainAccount(ctx context.Context, accountID int64) (bool, error)

	// Transactions
	CreateTransaction(ctx context.Context, req models.CreateTransaction) (*models.Transaction, error)
	GetTransaction(ctx context.Context, txID int64) (*models.Transaction, error)

	ValidateCreateTransaction(ctx context.Context, req models.CreateTransaction) error
}

// DefaultService implements the Service interface.
// Every validate-then-write pair runs inside one store transaction.
type DefaultService struct {
	repo repository.Repository
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository) Service {
	return &DefaultService{
		repo: repo,
	}
}
