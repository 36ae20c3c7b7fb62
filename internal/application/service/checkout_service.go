package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CartLine is one line of the cart being paid. Product fields are a
// snapshot taken by the terminal at scan time; they are persisted verbatim
// so later catalog edits never rewrite history.
type CartLine struct {
	ProductCode string
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// PaymentEntry is one split of the settlement. Zero-amount entries are
// dropped during normalization; for non-cash types Tendered is forced to
// equal Amount.
type PaymentEntry struct {
	Type     enum.PaymentType
	Amount   decimal.Decimal
	Tendered decimal.Decimal
}

// PaySaleInput carries one payment submission. ReceiptID selects the held
// sale being settled; when nil the Cart describes a brand-new sale that is
// created and paid in one step.
type PaySaleInput struct {
	ReceiptID    *uuid.UUID
	CustomerName string
	CashierName  string
	Cart         []CartLine
	Payments     []PaymentEntry
}

// CommitNotifier receives a successfully committed sale after the
// transaction is durable. Notifications are best effort; a failing
// notifier never affects the committed receipt.
type CommitNotifier interface {
	SaleCommitted(receipt *entity.Receipt)
}

// inflightGate admits one commit at a time per process. A second submission
// arriving while one is in flight (double-tap on the PAY button) is
// rejected outright instead of queued.
type inflightGate struct {
	busy atomic.Bool
}

func (g *inflightGate) begin() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *inflightGate) end() {
	g.busy.Store(false)
}

// CheckoutService orchestrates the payment commit: duplicate-submission
// guard, payment-split normalization and validation, the atomic
// multi-table write, and post-commit notifications.
type CheckoutService struct {
	txManager   *database.TxManager
	receiptRepo repository.ReceiptRepository
	allocator   *NumberAllocator
	notifiers   []CommitNotifier
	gate        inflightGate
	now         func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	txManager *database.TxManager,
	receiptRepo repository.ReceiptRepository,
	allocator *NumberAllocator,
	notifiers ...CommitNotifier,
) *CheckoutService {
	return &CheckoutService{
		txManager:   txManager,
		receiptRepo: receiptRepo,
		allocator:   allocator,
		notifiers:   notifiers,
		now:         time.Now,
	}
}

// Pay commits a sale. Exactly one commit runs at a time; everything between
// the guard acquisition and the transaction outcome either fully persists
// (header, items, payments, counter) or leaves the database untouched.
func (s *CheckoutService) Pay(ctx context.Context, input PaySaleInput) (*entity.Receipt, error) {
	if !s.gate.begin() {
		return nil, apperror.ErrCommitInProgress
	}
	defer s.gate.end()

	payments, paymentsTotal, err := normalizePayments(input.Payments)
	if err != nil {
		return nil, err
	}

	var receiptID uuid.UUID
	if input.ReceiptID == nil {
		receiptID, err = s.commitNewSale(ctx, input, payments, paymentsTotal)
	} else {
		receiptID = *input.ReceiptID
		err = s.commitHeldSale(ctx, receiptID, payments, paymentsTotal)
	}
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		log.Error().
			Err(err).
			Bool("constraint_violation", database.IsConstraintViolation(err)).
			Msg("Sale commit failed, transaction rolled back")
		return nil, apperror.NewCommitFailedError(err)
	}

	receipt, err := s.receiptRepo.GetWithDetails(ctx, receiptID)
	if err != nil || receipt == nil {
		// The sale is committed; failing the read-back must not look like
		// a failed payment.
		log.Error().Err(err).Str("receipt_id", receiptID.String()).Msg("Committed sale could not be read back")
		return &entity.Receipt{ID: receiptID}, nil
	}

	s.notifyCommitted(receipt)
	return receipt, nil
}

// commitNewSale creates and pays a sale in a single transaction.
func (s *CheckoutService) commitNewSale(ctx context.Context, input PaySaleInput, payments []PaymentEntry, paymentsTotal decimal.Decimal) (uuid.UUID, error) {
	cart, grandTotal, err := normalizeCart(input.Cart)
	if err != nil {
		return uuid.Nil, err
	}
	if !paymentsTotal.Equal(grandTotal) {
		return uuid.Nil, apperror.NewBadRequestError("Payments must sum to the receipt total")
	}

	var receiptID uuid.UUID
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()

		receiptNo, err := s.allocator.Next(txCtx, now)
		if err != nil {
			return err
		}

		receipt := entity.Receipt{
			ReceiptNo:    receiptNo,
			CustomerName: input.CustomerName,
			CashierName:  input.CashierName,
			Status:       enum.ReceiptStatusPaid,
			GrandTotal:   grandTotal,
			CreatedAt:    now,
			PaidAt:       &now,
		}
		if err := s.receiptRepo.Create(txCtx, &receipt); err != nil {
			return err
		}
		receiptID = receipt.ID

		if err := s.receiptRepo.CreateItems(txCtx, buildItems(receipt.ID, cart)); err != nil {
			return err
		}
		return s.receiptRepo.CreatePayments(txCtx, buildPayments(receipt.ID, payments, now))
	})
	return receiptID, err
}

// commitHeldSale settles a previously held sale. The status check runs
// inside the transaction so a concurrent cancel cannot race the payment.
func (s *CheckoutService) commitHeldSale(ctx context.Context, receiptID uuid.UUID, payments []PaymentEntry, paymentsTotal decimal.Decimal) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		receipt, err := s.receiptRepo.GetByID(txCtx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.ErrReceiptNotFound
		}
		if receipt.Status != enum.ReceiptStatusUnpaid {
			return apperror.ErrReceiptNotHeld
		}
		if !paymentsTotal.Equal(receipt.GrandTotal) {
			return apperror.NewBadRequestError("Payments must sum to the receipt total")
		}

		now := s.now()
		if err := s.receiptRepo.MarkPaid(txCtx, receiptID, now); err != nil {
			return err
		}
		return s.receiptRepo.CreatePayments(txCtx, buildPayments(receiptID, payments, now))
	})
}

// notifyCommitted fans the committed receipt out to the registered
// notifiers off the request path.
func (s *CheckoutService) notifyCommitted(receipt *entity.Receipt) {
	for _, n := range s.notifiers {
		go func(n CommitNotifier) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("Commit notifier panicked")
				}
			}()
			n.SaleCommitted(receipt)
		}(n)
	}
}

// normalizePayments drops zero-amount splits, rounds to cents, forces
// Tendered to equal Amount for non-cash types, and returns the cleaned
// splits with their sum.
func normalizePayments(entries []PaymentEntry) ([]PaymentEntry, decimal.Decimal, error) {
	payments := make([]PaymentEntry, 0, len(entries))
	total := decimal.Zero

	for _, e := range entries {
		amount := e.Amount.Round(2)
		if amount.IsZero() {
			continue
		}
		if amount.IsNegative() {
			return nil, decimal.Zero, apperror.NewBadRequestError("Payment amounts must be positive")
		}
		if !e.Type.IsValid() {
			return nil, decimal.Zero, apperror.NewBadRequestError("Unsupported payment type: " + e.Type.String())
		}

		tendered := e.Tendered.Round(2)
		if e.Type != enum.PaymentTypeCash || tendered.LessThan(amount) {
			tendered = amount
		}

		payments = append(payments, PaymentEntry{Type: e.Type, Amount: amount, Tendered: tendered})
		total = total.Add(amount)
	}

	if len(payments) == 0 {
		return nil, decimal.Zero, apperror.NewBadRequestError("At least one payment is required")
	}
	return payments, total, nil
}

// normalizeCart validates the cart, fills in line totals, and returns the
// cleaned lines with the grand total.
func normalizeCart(cart []CartLine) ([]CartLine, decimal.Decimal, error) {
	if len(cart) == 0 {
		return nil, decimal.Zero, apperror.NewBadRequestError("Cart is empty")
	}

	lines := make([]CartLine, 0, len(cart))
	grandTotal := decimal.Zero

	for _, l := range cart {
		if l.ProductName == "" {
			return nil, decimal.Zero, apperror.NewBadRequestError("Cart line is missing a product name")
		}
		if !l.Quantity.IsPositive() {
			return nil, decimal.Zero, apperror.NewBadRequestError("Cart quantities must be positive")
		}

		l.Quantity = l.Quantity.Round(3)
		l.UnitPrice = l.UnitPrice.Round(2)
		if l.LineTotal.IsZero() {
			l.LineTotal = l.Quantity.Mul(l.UnitPrice)
		}
		l.LineTotal = l.LineTotal.Round(2)

		lines = append(lines, l)
		grandTotal = grandTotal.Add(l.LineTotal)
	}

	return lines, grandTotal.Round(2), nil
}

// buildItems turns cart lines into item rows, numbering lines from 1 in
// cart order.
func buildItems(receiptID uuid.UUID, cart []CartLine) []entity.ReceiptItem {
	items := make([]entity.ReceiptItem, len(cart))
	for i, l := range cart {
		items[i] = entity.ReceiptItem{
			ReceiptID:   receiptID,
			LineNo:      i + 1,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Category:    l.Category,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return items
}

func buildPayments(receiptID uuid.UUID, payments []PaymentEntry, at time.Time) []entity.ReceiptPayment {
	rows := make([]entity.ReceiptPayment, len(payments))
	for i, p := range payments {
		rows[i] = entity.ReceiptPayment{
			ReceiptID:   receiptID,
			PaymentType: p.Type,
			Amount:      p.Amount,
			Tendered:    p.Tendered,
			CreatedAt:   at,
		}
	}
	return rows
}
