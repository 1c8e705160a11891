package models

import (
	"time"
)

// PaymentStatus represents the settlement state of an invoice
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
)

// InvoiceItemCategory enum
type InvoiceItemCategory string

const (
	ItemConsultation InvoiceItemCategory = "Consultation"
	ItemMedication   InvoiceItemCategory = "Medication"
	ItemTest         InvoiceItemCategory = "Test"
	ItemProcedure    InvoiceItemCategory = "Procedure"
	ItemWard         InvoiceItemCategory = "Ward"
	ItemOther        InvoiceItemCategory = "Other"
)

// Invoice represents a patient bill. Subtotal, tax and total are computed
// once at creation; AmountPaid, BalanceDue and PaymentStatus change only
// through payment application.
type Invoice struct {
	BaseModel
	InvoiceID      string        `gorm:"uniqueIndex;size:16" json:"invoiceId"`
	PatientID      string        `gorm:"size:36;index;not null" json:"patientId"`
	AppointmentID  string        `gorm:"size:36;index" json:"appointmentId,omitempty"`
	BillDate       time.Time     `json:"billDate"`
	DueDate        *time.Time    `json:"dueDate,omitempty"`
	Subtotal       float64       `json:"subtotal"`
	TaxRate        float64       `gorm:"default:5" json:"taxRate"`
	TaxAmount      float64       `json:"taxAmount"`
	DiscountAmount float64       `gorm:"default:0" json:"discountAmount"`
	TotalAmount    float64       `json:"totalAmount"`
	AmountPaid     float64       `gorm:"default:0" json:"amountPaid"`
	BalanceDue     float64       `json:"balanceDue"`
	PaymentStatus  PaymentStatus `gorm:"size:20;default:'Pending'" json:"paymentStatus"`
	PaymentMethod  string        `gorm:"size:50" json:"paymentMethod,omitempty"`
	PaymentDate    *time.Time    `json:"paymentDate,omitempty"`
	Notes          string        `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;references:ID" json:"items"`
	Patient Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// InvoiceItem is a single billed line: Quantity x UnitPrice = Total.
type InvoiceItem struct {
	BaseModel
	InvoiceID   string              `gorm:"size:36;index;not null" json:"-"`
	Description string              `gorm:"size:255" json:"description"`
	Category    InvoiceItemCategory `gorm:"size:30" json:"category,omitempty"`
	Quantity    int                 `gorm:"default:1" json:"quantity"`
	UnitPrice   float64             `json:"unitPrice"`
	Total       float64             `json:"total"`
}

// Payment records one applied payment attempt against an invoice. The unique
// index on IdempotencyKey is what rejects a replayed attempt.
type Payment struct {
	BaseModel
	InvoiceID      string    `gorm:"size:36;index;not null" json:"invoiceId"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Method         string    `gorm:"size:50" json:"method"`
	PaidAt         time.Time `json:"paidAt"`
	IdempotencyKey *string   `gorm:"uniqueIndex;size:64" json:"idempotencyKey,omitempty"`
}

// DerivePaymentStatus computes the settlement state from the amounts alone.
func DerivePaymentStatus(amountPaid, totalAmount float64) PaymentStatus {
	switch {
	case amountPaid >= totalAmount:
		return PaymentPaid
	case amountPaid > 0:
		return PaymentPartial
	default:
		return PaymentPending
	}
}
