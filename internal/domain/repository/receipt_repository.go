package repository

import (
	"context"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/google/uuid"
)

// ReceiptRepository defines the interface for receipt data access.
// All methods honor a transaction handle carried in the context; outside
// a transaction they run against the base connection.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	CreateItems(ctx context.Context, items []entity.ReceiptItem) error
	CreatePayments(ctx context.Context, payments []entity.ReceiptPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time, note string) error
	ListByStatus(ctx context.Context, status enum.ReceiptStatus, limit, offset int) ([]entity.Receipt, int64, error)
}
