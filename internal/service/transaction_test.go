package service_test

import (
	"context"
	"testing"

	"github.com/rongwang/txvault/internal/models"
	"github.com/rongwang/txvault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	mustCreateUser(t, svc, "alice", true)
	mustCreateUser(t, svc, "bob", false)
	mustCreateUser(t, svc, "bob2", false)

	transfer := func(src, dst string) models.CreateTransaction {
		return models.CreateTransaction{SrcUsername: src, DstUsername: dst}
	}

	assert.NoError(t, svc.ValidateCreateTransaction(ctx, transfer("alice", "bob")))
	assert.NoError(t, svc.ValidateCreateTransaction(ctx, transfer("bob", "alice")))
	assert.NoError(t, svc.ValidateCreateTransaction(ctx, transfer("alice", "alice")))

	err := svc.ValidateCreateTransaction(ctx, transfer("bob", "bob2"))
	assert.ErrorIs(t, err, service.ErrNoMainParty)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "bob2")

	err = svc.ValidateCreateTransaction(ctx, transfer("mallory", "alice"))
	assert.ErrorIs(t, err, service.ErrRecordNotFound)
	assert.ErrorIs(t, err, service.ErrValidation)

	err = svc.ValidateCreateTransaction(ctx, transfer("bob", "mallory"))
	assert.ErrorIs(t, err, service.ErrRecordNotFound)

	// The destination is not looked up once the source is main
	assert.NoError(t, svc.ValidateCreateTransaction(ctx, transfer("alice", "mallory")))
}

func TestCreateTransactionStampsTime(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	mustCreateUser(t, svc, "alice", true)

	tx, err := svc.CreateTransaction(ctx, models.CreateTransaction{
		SrcUsername: "alice",
		DstUsername: "bob",
		Description: "gift",
		SrcDebit:    10,
		DstCredit:   10,
	})
	require.NoError(t, err)
	assert.Greater(t, tx.CreatedTimestamp, float64(0))
	assert.Equal(t, tx.CreatedTimestamp, tx.UpdatedTimestamp)
	assert.Nil(t, tx.SrcAccountID)
	assert.Nil(t, tx.DstAccountID)

	got, err := svc.GetTransaction(ctx, tx.TxID)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	_, err = svc.GetTransaction(ctx, 999)
	assert.ErrorIs(t, err, service.ErrRecordNotFound)

	_, err = svc.CreateTransaction(ctx, models.CreateTransaction{SrcUsername: "carol", DstUsername: "dave"})
	assert.ErrorIs(t, err, service.ErrValidation)
}
