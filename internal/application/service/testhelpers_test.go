package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	infraRepo "github.com/Selvam-T/POS-sub000/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	txManager   *database.TxManager
	receiptRepo repository.ReceiptRepository
	counterRepo repository.CounterRepository
	allocator   *NumberAllocator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		filepath.Join(t.TempDir(), "pos.db"),
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	counterRepo := infraRepo.NewCounterRepository(db)
	return &testEnv{
		db:          db,
		txManager:   database.NewTxManager(db),
		receiptRepo: infraRepo.NewReceiptRepository(db),
		counterRepo: counterRepo,
		allocator:   NewNumberAllocator(counterRepo),
	}
}

func (e *testEnv) newCheckoutService(notifiers ...CommitNotifier) *CheckoutService {
	return NewCheckoutService(e.txManager, e.receiptRepo, e.allocator, notifiers...)
}

func (e *testEnv) newReceiptService() *ReceiptService {
	return NewReceiptService(e.txManager, e.receiptRepo, e.allocator)
}
