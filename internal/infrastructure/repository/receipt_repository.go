package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	domainRepo "github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return conn(ctx, r.db).Omit("Items", "Payments").Create(receipt).Error
}

func (r *receiptRepository) CreateItems(ctx context.Context, items []entity.ReceiptItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(ctx, r.db).Omit("Receipt").Create(&items).Error
}

func (r *receiptRepository) CreatePayments(ctx context.Context, payments []entity.ReceiptPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return conn(ctx, r.db).Omit("Receipt").Create(&payments).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := conn(ctx, r.db).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Preload("Payments").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return conn(ctx, r.db).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  enum.ReceiptStatusPaid,
			"paid_at": paidAt,
		}).Error
}

func (r *receiptRepository) MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time, note string) error {
	updates := map[string]interface{}{
		"status":       enum.ReceiptStatusCancelled,
		"cancelled_at": cancelledAt,
	}
	if note != "" {
		updates["note"] = note
	}
	return conn(ctx, r.db).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *receiptRepository) ListByStatus(ctx context.Context, status enum.ReceiptStatus, limit, offset int) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := conn(ctx, r.db).Model(&entity.Receipt{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&receipts).Error
	if err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}
