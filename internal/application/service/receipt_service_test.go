package service

import (
	"context"
	"testing"

	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/Selvam-T/POS-sub000/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldCreatesUnpaidReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newReceiptService()

	receipt, err := svc.Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mrs Tan",
		CashierName:  "alice",
		Note:         "picking up at 5pm",
		Cart:         groceries(),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReceiptStatusUnpaid, receipt.Status)
	assert.Equal(t, "Mrs Tan", receipt.CustomerName)
	assert.Nil(t, receipt.PaidAt)
	assert.True(t, receipt.GrandTotal.Equal(dec("14.00")))
	assert.Len(t, receipt.Items, 2)
	assert.Empty(t, receipt.Payments)
	assert.Regexp(t, `^\d{8}-\d{4}$`, receipt.ReceiptNo, "held sales draw their number at hold time")
}

func TestHoldRequiresCustomerName(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newReceiptService()

	_, err := svc.Hold(context.Background(), HoldSaleInput{
		CashierName: "alice",
		Cart:        groceries(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelHeldSale(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newReceiptService()

	held, err := svc.Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mrs Tan",
		CashierName:  "alice",
		Cart:         groceries(),
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), held.ID, "customer left")
	require.NoError(t, err)

	assert.Equal(t, enum.ReceiptStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, "customer left", cancelled.Note)
	assert.Len(t, cancelled.Items, 2, "item rows survive cancellation")

	// Cancelled is terminal.
	_, err = svc.Cancel(context.Background(), held.ID, "")
	assert.ErrorIs(t, err, apperror.ErrReceiptNotHeld)
}

func TestCancelPaidSaleRejected(t *testing.T) {
	env := newTestEnv(t)
	checkout := env.newCheckoutService()
	svc := env.newReceiptService()

	paid, err := checkout.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), paid.ID, "")
	assert.ErrorIs(t, err, apperror.ErrReceiptNotHeld)
}

func TestGetUnknownReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newReceiptService()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrReceiptNotFound)
}

func TestListHeldReturnsOnlyUnpaid(t *testing.T) {
	env := newTestEnv(t)
	checkout := env.newCheckoutService()
	svc := env.newReceiptService()

	held, err := svc.Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mrs Tan",
		CashierName:  "alice",
		Cart:         groceries(),
	})
	require.NoError(t, err)

	_, err = checkout.Pay(context.Background(), PaySaleInput{
		CashierName: "alice",
		Cart:        groceries(),
		Payments:    []PaymentEntry{{Type: enum.PaymentTypeCash, Amount: dec("14.00")}},
	})
	require.NoError(t, err)

	cancelled, err := svc.Hold(context.Background(), HoldSaleInput{
		CustomerName: "Mr Lim",
		CashierName:  "alice",
		Cart:         groceries(),
	})
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), cancelled.ID, "")
	require.NoError(t, err)

	result, err := svc.ListHeld(context.Background(), pagination.DefaultPagination())
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, held.ID, result.Items[0].ID)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestListHeldPaginates(t *testing.T) {
	env := newTestEnv(t)
	svc := env.newReceiptService()

	for i := 0; i < 4; i++ {
		_, err := svc.Hold(context.Background(), HoldSaleInput{
			CustomerName: "Customer",
			CashierName:  "alice",
			Cart: []CartLine{{
				ProductName: "Rice 5kg",
				Quantity:    dec("1"),
				UnitPrice:   dec("12.50"),
			}},
		})
		require.NoError(t, err)
	}

	result, err := svc.ListHeld(context.Background(), &pagination.PaginationParams{Page: 2, PerPage: 3})
	require.NoError(t, err)

	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(4), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}
