package repository

import (
	"context"
	"errors"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	domainRepo "github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository creates a new cashier repository
func NewCashierRepository(db *gorm.DB) domainRepo.CashierRepository {
	return &cashierRepository{db: db}
}

func (r *cashierRepository) Create(ctx context.Context, cashier *entity.Cashier) error {
	return conn(ctx, r.db).Create(cashier).Error
}

func (r *cashierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := conn(ctx, r.db).First(&cashier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

func (r *cashierRepository) GetByName(ctx context.Context, name string) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := conn(ctx, r.db).First(&cashier, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}
