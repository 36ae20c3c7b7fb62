package repository

import (
	"context"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
)

// CounterRepository defines the interface for the per-day receipt counter.
type CounterRepository interface {
	// Get returns the counter row for the given YYYYMMDD date, or nil when
	// no sale has been numbered on that day yet.
	Get(ctx context.Context, date string) (*entity.ReceiptCounter, error)
	// Upsert writes the counter value for the date, inserting the row on
	// first use of a day.
	Upsert(ctx context.Context, counter *entity.ReceiptCounter) error
}
