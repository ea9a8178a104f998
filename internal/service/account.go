package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/rongwang/txvault/internal/models"
)

// ValidateCurrency rejects codes that are not three bytes long or that
// contain a lowercase letter. Digits and symbols are accepted.
func ValidateCurrency(currency string) error {
	if len(currency) != 3 {
		return invalid(ErrInvalidCurrencyCode, "%s", currency)
	}
	for _, c := range currency {
		if unicode.IsLower(c) {
			return invalid(ErrInvalidCurrencyCode, "%s", currency)
		}
	}
	return nil
}

// Account operations
func (s *DefaultService) CreateAccount(ctx context.Context, req models.CreateAccount) (*models.Account, error) {
	if err := s.ValidateCreateAccount(ctx, req); err != nil {
		return nil, err
	}

	account, err := s.repo.CreateAccount(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

func (s *DefaultService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting account: %w", err)
	}
	return account, nil
}

func (s *DefaultService) UpdateAccount(ctx context.Context, accountID int64, req models.CreateAccount) (*models.Account, error) {
	if err := s.ValidateUpdateAccount(ctx, accountID, req); err != nil {
		return nil, err
	}

	account, err := s.repo.UpdateAccount(ctx, accountID, &req)
	if err != nil {
		return nil, fmt.Errorf("error updating account: %w", err)
	}

	return account, nil
}

func (s *DefaultService) DeleteAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	if err := s.ValidateDeleteAccount(ctx, accountID); err != nil {
		return nil, err
	}

	account, err := s.repo.DeleteAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error deleting account: %w", err)
	}

	return account, nil
}

// Account checks
func (s *DefaultService) ValidateCreateAccount(_ context.Context, req models.CreateAccount) error {
	return ValidateCurrency(req.Currency)
}

func (s *DefaultService) ValidateUpdateAccount(_ context.Context, _ int64, req models.CreateAccount) error {
	return ValidateCurrency(req.Currency)
}

// ValidateDeleteAccount currently accepts every delete
func (s *DefaultService) ValidateDeleteAccount(_ context.Context, _ int64) error {
	return nil
}

// IsMainAccount reports whether the account belongs to the main user
func (s *DefaultService) IsMainAccount(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, fmt.Errorf("%w: %d", ErrAccountNotFound, accountID)
		}
		return false, err
	}

	return isMainUser(ctx, s.repo, account.UserID)
}
