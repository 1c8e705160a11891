package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
)

// BillingService owns invoice totals, payment application and the derived
// payment status.
type BillingService struct {
	DB *gorm.DB
}

// NewBillingService creates a new BillingService.
func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// InvoiceItemInput is one billed line on a new invoice. Total, when zero, is
// computed as Quantity x UnitPrice.
type InvoiceItemInput struct {
	Description string
	Category    models.InvoiceItemCategory
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// CreateInvoiceInput carries the fields needed to create an invoice.
type CreateInvoiceInput struct {
	PatientID      string
	AppointmentID  string
	Items          []InvoiceItemInput
	TaxRate        *float64
	DiscountAmount float64
	DueDate        *time.Time
	Notes          string
}

// CreateInvoice creates an invoice with derived amounts:
// subtotal = sum of item totals, taxAmount = subtotal * taxRate / 100,
// totalAmount = subtotal + taxAmount - discountAmount. The invoice starts
// Pending with the full total due.
func (s *BillingService) CreateInvoice(in CreateInvoiceInput) (*models.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice requires at least one item", ErrInvalidInput)
	}

	taxRate := 5.0
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}

	var invoice models.Invoice

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, "id = ?", in.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("patient: %w", ErrNotFound)
			}
			return err
		}

		id, err := sequence.Next(tx, sequence.KindInvoice)
		if err != nil {
			return err
		}

		items := make([]models.InvoiceItem, 0, len(in.Items))
		subtotal := 0.0
		for _, it := range in.Items {
			quantity := it.Quantity
			if quantity == 0 {
				quantity = 1
			}
			total := it.Total
			if total == 0 {
				total = float64(quantity) * it.UnitPrice
			}
			subtotal += total
			items = append(items, models.InvoiceItem{
				Description: it.Description,
				Category:    it.Category,
				Quantity:    quantity,
				UnitPrice:   it.UnitPrice,
				Total:       total,
			})
		}

		taxAmount := subtotal * taxRate / 100
		totalAmount := subtotal + taxAmount - in.DiscountAmount

		invoice = models.Invoice{
			InvoiceID:      id,
			PatientID:      patient.ID,
			AppointmentID:  in.AppointmentID,
			BillDate:       time.Now(),
			DueDate:        in.DueDate,
			Items:          items,
			Subtotal:       subtotal,
			TaxRate:        taxRate,
			TaxAmount:      taxAmount,
			DiscountAmount: in.DiscountAmount,
			TotalAmount:    totalAmount,
			AmountPaid:     0,
			BalanceDue:     totalAmount,
			PaymentStatus:  models.PaymentPending,
			Notes:          in.Notes,
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ApplyPaymentInput carries one payment application.
type ApplyPaymentInput struct {
	InvoiceID      string
	Amount         float64
	Method         string
	PaymentDate    *time.Time
	IdempotencyKey string
}

// ApplyPayment applies a payment to an invoice. Payments accumulate:
// amountPaid grows by the amount, balanceDue becomes
// max(0, totalAmount - amountPaid) and paymentStatus is re-derived. When an
// idempotency key is supplied, replaying the same attempt fails with
// ErrDuplicatePayment and leaves the invoice untouched; the key is inserted
// into the uniquely-indexed payments table in the same transaction as the
// invoice update.
func (s *BillingService) ApplyPayment(in ApplyPaymentInput) (*models.Invoice, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	var invoice models.Invoice

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invoice, "id = ?", in.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		paidAt := time.Now()
		if in.PaymentDate != nil {
			paidAt = *in.PaymentDate
		}

		payment := models.Payment{
			InvoiceID: invoice.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			PaidAt:    paidAt,
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			payment.IdempotencyKey = &key
		}
		if err := tx.Create(&payment).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicatePayment
			}
			return err
		}

		newAmountPaid := invoice.AmountPaid + in.Amount
		balanceDue := invoice.TotalAmount - newAmountPaid
		if balanceDue < 0 {
			balanceDue = 0
		}

		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"amount_paid":    newAmountPaid,
			"balance_due":    balanceDue,
			"payment_status": models.DerivePaymentStatus(newAmountPaid, invoice.TotalAmount),
			"payment_method": in.Method,
			"payment_date":   paidAt,
		}).Error; err != nil {
			return err
		}
		return tx.Preload("Items").First(&invoice, "id = ?", invoice.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062 / SQLite "UNIQUE constraint failed" without translated errors.
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
