package repository

import (
	"context"
	"errors"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	domainRepo "github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new receipt counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Get(ctx context.Context, date string) (*entity.ReceiptCounter, error) {
	var counter entity.ReceiptCounter
	err := conn(ctx, r.db).First(&counter, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *counterRepository) Upsert(ctx context.Context, counter *entity.ReceiptCounter) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"counter": counter.Counter}),
	}).Create(counter).Error
}
