package service

import (
	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/Selvam-T/POS-sub000/pkg/printer"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PrinterService renders committed sales to ESC/POS and sends them to the
// receipt printer. It implements CommitNotifier; print failures are logged
// and swallowed because the sale is already durable.
type PrinterService struct {
	printer   printer.Printer
	charWidth int
	storeName string
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, charWidth int, storeName string) *PrinterService {
	return &PrinterService{
		printer:   p,
		charWidth: charWidth,
		storeName: storeName,
	}
}

// SaleCommitted prints the receipt and, for cash sales, pops the drawer.
func (s *PrinterService) SaleCommitted(receipt *entity.Receipt) {
	doc := s.render(receipt)
	if err := s.printer.Print(doc.Bytes()); err != nil {
		log.Warn().Err(err).Str("receipt_no", receipt.ReceiptNo).Msg("Receipt print failed")
	}
}

func (s *PrinterService) render(receipt *entity.Receipt) *printer.Document {
	doc := printer.NewDocument(s.charWidth)

	// Drawer first so cash handling is not blocked by paper feed.
	if cashTendered(receipt) {
		doc.DrawerPulse()
	}

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(s.storeName).
		SetBold(false).
		Text(receipt.ReceiptNo).
		Text(receipt.CreatedAt.Format("02 Jan 2006 15:04")).
		SetAlign(printer.AlignLeft).
		Separator('-')

	if receipt.CustomerName != "" {
		doc.KeyValue("Customer", receipt.CustomerName)
	}
	doc.KeyValue("Cashier", receipt.CashierName)
	doc.Separator('-')

	for _, item := range receipt.Items {
		qty := item.Quantity.String()
		if item.Unit != "" {
			qty += item.Unit
		}
		doc.ItemLine(qty, item.ProductName, money(item.LineTotal))
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL", money(receipt.GrandTotal)).
		SetBold(false)

	change := decimal.Zero
	for _, p := range receipt.Payments {
		doc.KeyValue(p.PaymentType.String(), money(p.Amount))
		if p.PaymentType == enum.PaymentTypeCash && p.Tendered.GreaterThan(p.Amount) {
			doc.KeyValue("TENDERED", money(p.Tendered))
			change = change.Add(p.Tendered.Sub(p.Amount))
		}
	}
	if change.IsPositive() {
		doc.KeyValue("CHANGE", money(change))
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()

	return doc
}

// cashTendered reports whether any split was settled in cash, which is
// what warrants opening the drawer.
func cashTendered(receipt *entity.Receipt) bool {
	for _, p := range receipt.Payments {
		if p.PaymentType == enum.PaymentTypeCash && p.Tendered.IsPositive() {
			return true
		}
	}
	return false
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
