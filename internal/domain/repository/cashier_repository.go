package repository

import (
	"context"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/google/uuid"
)

// CashierRepository defines the interface for cashier account data access
type CashierRepository interface {
	Create(ctx context.Context, cashier *entity.Cashier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error)
	GetByName(ctx context.Context, name string) (*entity.Cashier, error)
}
