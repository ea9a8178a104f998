package service

import (
	"context"
	"fmt"

	"github.com/rongwang/txvault/internal/models"
	"github.com/rongwang/txvault/internal/repository"
)

// User operations
func (s *DefaultService) CreateUser(ctx context.Context, req models.CreateUser) (*models.User, error) {
	var user *models.User
	err := s.repo.ExecTx(ctx, func(repo repository.Repository) error {
		if err := validateCreateUser(ctx, repo, req); err != nil {
			return err
		}

		created, err := repo.CreateUser(ctx, &req)
		if err != nil {
			// A concurrent writer got there first
			if req.IsMain && repository.IsMainUserViolation(err) {
				return invalid(ErrMainUserConflict, "%q", req.Username)
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *DefaultService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (s *DefaultService) UpdateUser(ctx context.Context, userID int64, req models.CreateUser) (*models.User, error) {
	var user *models.User
	err := s.repo.ExecTx(ctx, func(repo repository.Repository) error {
		if err := validateUpdateUser(ctx, repo, userID, req); err != nil {
			return err
		}

		updated, err := repo.UpdateUser(ctx, userID, &req)
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		user = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *DefaultService) DeleteUser(ctx context.Context, userID int64) (*models.User, error) {
	var user *models.User
	err := s.repo.ExecTx(ctx, func(repo repository.Repository) error {
		if err := validateDeleteUser(ctx, repo, userID); err != nil {
			return err
		}

		deleted, err := repo.DeleteUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}

		user = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// User checks
func (s *DefaultService) ValidateCreateUser(ctx context.Context, req models.CreateUser) error {
	return validateCreateUser(ctx, s.repo, req)
}

func (s *DefaultService) ValidateUpdateUser(ctx context.Context, userID int64, req models.CreateUser) error {
	return validateUpdateUser(ctx, s.repo, userID, req)
}

func (s *DefaultService) ValidateDeleteUser(ctx context.Context, userID int64) error {
	return validateDeleteUser(ctx, s.repo, userID)
}

func (s *DefaultService) IsMainUser(ctx context.Context, userID int64) (bool, error) {
	return isMainUser(ctx, s.repo, userID)
}

func (s *DefaultService) IsMainUsername(ctx context.Context, username string) (bool, error) {
	return isMainUsername(ctx, s.repo, username)
}

// validateCreateUser lets a main user in only while the store holds no
// users at all. The first user is the only one that can ever be main.
func validateCreateUser(ctx context.Context, repo repository.Repository, req models.CreateUser) error {
	if !req.IsMain {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("error checking existing users: %w", err)
	}

	if count != 0 {
		return invalid(ErrMainUserConflict, "%q", req.Username)
	}

	return nil
}

func validateUpdateUser(ctx context.Context, repo repository.Repository, userID int64, req models.CreateUser) error {
	current, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return asValidation(err)
	}

	if current.IsMain != req.IsMain {
		return invalid(ErrImmutableField, "user_id %d has is_main=%t, got %t", userID, current.IsMain, req.IsMain)
	}

	return nil
}

func validateDeleteUser(ctx context.Context, repo repository.Repository, userID int64) error {
	current, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return asValidation(err)
	}

	if current.IsMain {
		return invalid(ErrMainUserProtected, "user_id %d", userID)
	}

	return nil
}

func isMainUser(ctx context.Context, repo repository.Repository, userID int64) (bool, error) {
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsMain, nil
}

func isMainUsername(ctx context.Context, repo repository.Repository, username string) (bool, error) {
	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.IsMain, nil
}
