package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rongwang/txvault/internal/models"
	"github.com/rongwang/txvault/internal/repository"
)

// Transaction operations
func (s *DefaultService) CreateTransaction(ctx context.Context, req models.CreateTransaction) (*models.Transaction, error) {
	now := float64(time.Now().UTC().UnixNano()) / float64(time.Second)
	if req.CreatedTimestamp == 0 {
		req.CreatedTimestamp = now
	}
	if req.UpdatedTimestamp == 0 {
		req.UpdatedTimestamp = req.CreatedTimestamp
	}

	var tx *models.Transaction
	err := s.repo.ExecTx(ctx, func(repo repository.Repository) error {
		if err := validateCreateTransaction(ctx, repo, req); err != nil {
			return err
		}

		created, err := repo.CreateTransaction(ctx, &req)
		if err != nil {
			return fmt.Errorf("error creating transaction: %w", err)
		}

		tx = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *DefaultService) GetTransaction(ctx context.Context, txID int64) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}
	return tx, nil
}

func (s *DefaultService) ValidateCreateTransaction(ctx context.Context, req models.CreateTransaction) error {
	return validateCreateTransaction(ctx, s.repo, req)
}

// validateCreateTransaction requires the main user on at least one side.
// The destination is only looked up when the source is not main.
func validateCreateTransaction(ctx context.Context, repo repository.Repository, req models.CreateTransaction) error {
	srcMain, err := isMainUsername(ctx, repo, req.SrcUsername)
	if err != nil {
		return asValidation(err)
	}
	if srcMain {
		return nil
	}

	dstMain, err := isMainUsername(ctx, repo, req.DstUsername)
	if err != nil {
		return asValidation(err)
	}
	if dstMain {
		return nil
	}

	return invalid(ErrNoMainParty, "%q, %q", req.SrcUsername, req.DstUsername)
}
