package handler

import (
	"github.com/Selvam-T/POS-sub000/internal/application/service"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/internal/presentation/http/dto/request"
	"github.com/Selvam-T/POS-sub000/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the payment and hold endpoints
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	receiptService  *service.ReceiptService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, receiptService *service.ReceiptService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		receiptService:  receiptService,
	}
}

// Pay commits a sale: a new cart, or a previously held receipt
func (h *CheckoutHandler) Pay(c *gin.Context) {
	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.checkoutService.Pay(c.Request.Context(), service.PaySaleInput{
		ReceiptID:    req.ReceiptID,
		CustomerName: req.CustomerName,
		CashierName:  GetCashierName(c),
		Cart:         toCartLines(req.Cart),
		Payments:     toPaymentEntries(req.Payments),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale committed", receipt)
}

// Hold parks the cart as an unpaid receipt
func (h *CheckoutHandler) Hold(c *gin.Context) {
	var req request.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.receiptService.Hold(c.Request.Context(), service.HoldSaleInput{
		CustomerName: req.CustomerName,
		CashierName:  GetCashierName(c),
		Note:         req.Note,
		Cart:         toCartLines(req.Cart),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale held", receipt)
}

func toCartLines(lines []request.CartLineRequest) []service.CartLine {
	cart := make([]service.CartLine, len(lines))
	for i, l := range lines {
		cart[i] = service.CartLine{
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Category:    l.Category,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return cart
}

func toPaymentEntries(entries []request.PaymentEntryRequest) []service.PaymentEntry {
	payments := make([]service.PaymentEntry, len(entries))
	for i, e := range entries {
		payments[i] = service.PaymentEntry{
			Type:     enum.PaymentType(e.Type),
			Amount:   e.Amount,
			Tendered: e.Tendered,
		}
	}
	return payments
}
