package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorRequiresOpenTransaction(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.allocator.Next(context.Background(), time.Now())
	assert.ErrorIs(t, err, apperror.ErrNoOpenTransaction)
}

func TestAllocatorIssuesSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	var numbers []string
	for i := 0; i < 3; i++ {
		err := env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
			no, err := env.allocator.Next(ctx, day)
			if err != nil {
				return err
			}
			numbers = append(numbers, no)
			return nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"20260831-0001", "20260831-0002", "20260831-0003"}, numbers)
}

func TestAllocatorResetsPerDay(t *testing.T) {
	env := newTestEnv(t)

	var first, nextDay string
	err := env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		no, err := env.allocator.Next(ctx, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC))
		first = no
		return err
	})
	require.NoError(t, err)

	err = env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		no, err := env.allocator.Next(ctx, time.Date(2026, 9, 1, 0, 5, 0, 0, time.UTC))
		nextDay = no
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "20260831-0001", first)
	assert.Equal(t, "20260901-0001", nextDay)
}

func TestAllocatorRollbackDoesNotBurnNumbers(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	err := env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := env.allocator.Next(ctx, day); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var issued string
	err = env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		no, err := env.allocator.Next(ctx, day)
		issued = no
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "20260831-0001", issued, "the rolled-back allocation must be reissued")
}

func TestAllocatorDailySequenceExhausted(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	require.NoError(t, env.db.Create(&entity.ReceiptCounter{Date: "20260831", Counter: 9999}).Error)

	err := env.txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := env.allocator.Next(ctx, day)
		return err
	})
	assert.ErrorIs(t, err, apperror.ErrDailySequenceExhausted)

	// The counter must stay at its cap.
	var counter entity.ReceiptCounter
	require.NoError(t, env.db.First(&counter, "date = ?", "20260831").Error)
	assert.Equal(t, 9999, counter.Counter)
}
