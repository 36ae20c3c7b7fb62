package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
)

// maxDailySequence caps how many receipts can be numbered per calendar day.
const maxDailySequence = 9999

// NumberAllocator issues sequential per-day receipt numbers in the form
// YYYYMMDD-NNNN. Allocation only happens inside the caller's transaction:
// the counter increment commits or rolls back together with the receipt it
// numbers, so numbers are never burned by a failed sale and two concurrent
// sales can never draw the same number.
type NumberAllocator struct {
	counterRepo repository.CounterRepository
}

// NewNumberAllocator creates a new receipt number allocator
func NewNumberAllocator(counterRepo repository.CounterRepository) *NumberAllocator {
	return &NumberAllocator{counterRepo: counterRepo}
}

// Next allocates the next receipt number for the given business day. The
// context must carry an open transaction; calling it outside one is a
// programmer error and fails fast.
func (a *NumberAllocator) Next(ctx context.Context, day time.Time) (string, error) {
	if !database.InTransaction(ctx) {
		return "", apperror.ErrNoOpenTransaction
	}

	date := day.Format("20060102")

	counter, err := a.counterRepo.Get(ctx, date)
	if err != nil {
		return "", err
	}

	next := 1
	if counter != nil {
		next = counter.Counter + 1
	}
	if next > maxDailySequence {
		return "", apperror.ErrDailySequenceExhausted
	}

	if err := a.counterRepo.Upsert(ctx, &entity.ReceiptCounter{Date: date, Counter: next}); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", date, next), nil
}
