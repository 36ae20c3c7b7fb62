package service

import (
	"context"
	"testing"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func groceries() []CartLine {
	return []CartLine{
		{ProductCode: "RICE5", ProductName: "Rice 5kg", Quantity: dec("1"), Unit: "pc", UnitPrice: dec("12.50")},
		{ProductCode: "TOMATO", ProductName: "Tomatoes", Quantity: dec("0.250"), Unit: "kg", UnitPrice: dec("6.00")},
	}
}

// groceries total: 12.50 + 1.50 = 14.00

func TestPayNewSaleCommitsAllTables(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	receipt, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00"), Tendered: dec("20.00")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "20260831-0001", receipt.ReceiptNo)
	assert.Equal(t, enum.ReceiptStatusPaid, receipt.Status)
	require.NotNil(t, receipt.PaidAt)
	assert.True(t, receipt.PaidAt.Equal(receipt.CreatedAt), "immediate payment has created_at == paid_at")
	assert.True(t, receipt.GrandTotal.Equal(dec("14.00")))

	require.Len(t, receipt.Items, 2)
	assert.Equal(t, 1, receipt.Items[0].LineNo)
	assert.Equal(t, 2, receipt.Items[1].LineNo)
	assert.Equal(t, "Rice 5kg", receipt.Items[0].ProductName)
	assert.True(t, receipt.Items[1].LineTotal.Equal(dec("1.50")))

	require.Len(t, receipt.Payments, 1)
	assert.Equal(t, enum.PaymentTypeCash, receipt.Payments[0].PaymentType)
	assert.True(t, receipt.Payments[0].Tendered.Equal(dec("20.00")))
}

func TestPayNormalizesSplits(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()

	receipt, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments: []PaymentEntry{
			{Type: enum.PaymentTypeCash, Amount: dec("4.00"), Tendered: dec("5.00")},
			{Type: enum.PaymentTypeNets, Amount: dec("10.00"), Tendered: dec("99.00")},
			{Type: enum.PaymentTypePayNow, Amount: dec("0.00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, receipt.Payments, 2, "zero-amount split is dropped")
	for _, p := range receipt.Payments {
		switch p.PaymentType {
		case enum.PaymentTypeCash:
			assert.True(t, p.Tendered.Equal(dec("5.00")))
		case enum.PaymentTypeNets:
			assert.True(t, p.Tendered.Equal(dec("10.00")), "non-cash tendered is forced to the amount")
		default:
			t.Fatalf("unexpected payment type %s", p.PaymentType)
		}
	}
}

func TestPayRejectsSplitMismatch(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()

	_, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("10.00")}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	var receipts int64
	require.NoError(t, env.db.Model(&entity.Receipt{}).Count(&receipts).Error)
	assert.Equal(t, int64(0), receipts)

	var counters int64
	require.NoError(t, env.db.Model(&entity.ReceiptCounter{}).Count(&counters).Error)
	assert.Equal(t, int64(0), counters, "no number may be drawn for a rejected sale")
}

func TestPayHeldSale(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()

	held, err := env.newReceiptService().Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mrs Tan",
		CashierName:  "alice",
		Cart:         groceries(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStatusUnpaid, held.Status)

	paid, err := svc.Pay(context.Background(), PaySaleInput{
		ReceiptID:   &held.ID,
		CashierName: "alice",
		Payments:    []PaymentEntry{{Type: enum.PaymentTypePayNow, Amount: dec("14.00")}},
	})
	require.NoError(t, err)

	assert.Equal(t, held.ReceiptNo, paid.ReceiptNo, "settling a held sale keeps its number")
	assert.Equal(t, enum.ReceiptStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	require.Len(t, paid.Payments, 1)

	// A paid receipt cannot be paid again.
	_, err = svc.Pay(context.Background(), PaySaleInput{
		ReceiptID: &held.ID,
		Payments:  []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	assert.ErrorIs(t, err, apperror.ErrReceiptNotHeld)
}

func TestPayHeldSaleRejectsWrongTotal(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()

	held, err := env.newReceiptService().Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mrs Tan",
		CashierName:  "alice",
		Cart:         groceries(),
	})
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), PaySaleInput{
		ReceiptID: &held.ID,
		Payments:  []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("5.00")}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	reloaded, err := env.receiptRepo.GetByID(context.Background(), held.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStatusUnpaid, reloaded.Status, "a rejected payment leaves the hold untouched")
}

func TestPayUnknownReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()
	id := uuid.New()

	_, err := svc.Pay(context.Background(), PaySaleInput{
		ReceiptID: &id,
		Payments:  []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("1.00")}},
	})
	assert.ErrorIs(t, err, apperror.ErrReceiptNotFound)
}

func TestPayRejectsConcurrentCommit(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()

	require.True(t, svc.gate.begin(), "simulate an in-flight commit")

	_, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	assert.ErrorIs(t, err, apperror.ErrCommitInProgress)

	var receipts int64
	require.NoError(t, env.db.Model(&entity.Receipt{}).Count(&receipts).Error)
	assert.Equal(t, int64(0), receipts, "a rejected duplicate must write nothing")

	// Once the first commit finishes, the next submission goes through.
	svc.gate.end()
	_, err = svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	assert.NoError(t, err)
}

func TestPayFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newCheckoutService()
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	// Occupy the number the allocator will draw so the header insert hits
	// the unique index mid-transaction.
	require.NoError(t, env.db.Create(&entity.Receipt{
		ReceiptNo:   "20260831-0001",
		CashierName: "bob",
		Status:      enum.ReceiptStatusPaid,
		GrandTotal:  dec("1.00"),
	}).Error)

	_, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
	assert.Equal(t, "Failed to commit sale", apperror.GetAppError(err).Message)

	var receipts, items, payments, counters int64
	require.NoError(t, env.db.Model(&entity.Receipt{}).Count(&receipts).Error)
	require.NoError(t, env.db.Model(&entity.ReceiptItem{}).Count(&items).Error)
	require.NoError(t, env.db.Model(&entity.ReceiptPayment{}).Count(&payments).Error)
	require.NoError(t, env.db.Model(&entity.ReceiptCounter{}).Count(&counters).Error)
	assert.Equal(t, int64(1), receipts, "only the pre-existing receipt remains")
	assert.Equal(t, int64(0), items)
	assert.Equal(t, int64(0), payments)
	assert.Equal(t, int64(0), counters, "the counter increment rolls back with the sale")
}

type recordingNotifier struct {
	committed chan *entity.Receipt
}

func (n *recordingNotifier) SaleCommitted(receipt *entity.Receipt) {
	n.committed <- receipt
}

func TestPayNotifiesAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	notifier := &recordingNotifier{committed: make(chan *entity.Receipt, 1)}
	svc := env.newCheckoutService(notifier)

	receipt, err := svc.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	require.NoError(t, err)

	select {
	case notified := <-notifier.committed:
		assert.Equal(t, receipt.ReceiptNo, notified.ReceiptNo)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}
