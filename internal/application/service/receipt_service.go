package service

import (
	"context"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/internal/domain/repository"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/Selvam-T/POS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// HoldSaleInput parks a cart for later settlement, typically while the
// customer steps aside. The customer name is mandatory so held sales can
// be found again at the counter.
type HoldSaleInput struct {
	CustomerName string
	CashierName  string
	Note         string
	Cart         []CartLine
}

// ReceiptService covers the receipt lifecycle around the commit path:
// holding, cancelling, and reading receipts.
type ReceiptService struct {
	txManager   *database.TxManager
	receiptRepo repository.ReceiptRepository
	allocator   *NumberAllocator
	now         func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	txManager *database.TxManager,
	receiptRepo repository.ReceiptRepository,
	allocator *NumberAllocator,
) *ReceiptService {
	return &ReceiptService{
		txManager:   txManager,
		receiptRepo: receiptRepo,
		allocator:   allocator,
		now:         time.Now,
	}
}

// Hold stores the cart as an UNPAID receipt. The receipt number is drawn
// at hold time, inside the same transaction as the header and items, so a
// held sale occupies its number even if it is later cancelled.
func (s *ReceiptService) Hold(ctx context.Context, input HoldSaleInput) (*entity.Receipt, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required to hold a sale")
	}

	cart, grandTotal, err := normalizeCart(input.Cart)
	if err != nil {
		return nil, err
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
			Status:       enum.ReceiptStatusUnpaid,
			GrandTotal:   grandTotal,
			CreatedAt:    now,
			Note:         input.Note,
		}
		if err := s.receiptRepo.Create(txCtx, &receipt); err != nil {
			return err
		}
		receiptID = receipt.ID

		return s.receiptRepo.CreateItems(txCtx, buildItems(receipt.ID, cart))
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewCommitFailedError(err)
	}

	return s.receiptRepo.GetWithDetails(ctx, receiptID)
}

// Cancel voids a held sale. Item rows are kept for the record; only the
// header transitions. Paid and already-cancelled receipts are immutable.
func (s *ReceiptService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Receipt, error) {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		receipt, err := s.receiptRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.ErrReceiptNotFound
		}
		if receipt.Status != enum.ReceiptStatusUnpaid {
			return apperror.ErrReceiptNotHeld
		}
		return s.receiptRepo.MarkCancelled(txCtx, id, s.now(), reason)
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewCommitFailedError(err)
	}

	return s.receiptRepo.GetWithDetails(ctx, id)
}

// Get returns a receipt with its items and payments.
func (s *ReceiptService) Get(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.ErrReceiptNotFound
	}
	return receipt, nil
}

// ListHeld returns the currently held (UNPAID) sales, newest first.
func (s *ReceiptService) ListHeld(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	receipts, total, err := s.receiptRepo.ListByStatus(ctx, enum.ReceiptStatusUnpaid, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
