package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/services"
	"hospital-management-server/internal/utils"
)

// InvoiceHandler handles billing requests.
type InvoiceHandler struct {
	DB      *gorm.DB
	Service *services.BillingService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Service: services.NewBillingService(db)}
}

// InvoiceItemRequest is one line item on a new invoice.
type InvoiceItemRequest struct {
	Description string                     `json:"description" binding:"required"`
	Category    models.InvoiceItemCategory `json:"category" binding:"omitempty,oneof=Consultation Medication Test Procedure Ward Other"`
	Quantity    int                        `json:"quantity"`
	UnitPrice   float64                    `json:"unitPrice"`
	Total       float64                    `json:"total"`
}

// CreateInvoiceRequest represents the request body for creating an invoice.
type CreateInvoiceRequest struct {
	PatientID      string               `json:"patientId" binding:"required"`
	AppointmentID  string               `json:"appointmentId"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate        *float64             `json:"taxRate"`
	DiscountAmount float64              `json:"discountAmount"`
	DueDate        *time.Time           `json:"dueDate"`
	Notes          string               `json:"notes"`
}

// CreateInvoice handles creating a new invoice with derived totals.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	items := make([]services.InvoiceItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.InvoiceItemInput{
			Description: it.Description,
			Category:    it.Category,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}

	invoice, err := h.Service.CreateInvoice(services.CreateInvoiceInput{
		PatientID:      req.PatientID,
		AppointmentID:  req.AppointmentID,
		Items:          items,
		TaxRate:        req.TaxRate,
		DiscountAmount: req.DiscountAmount,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Invoice created successfully", invoice)
}

// GetInvoices lists invoices with optional patient/status filters.
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.Invoice{})
	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count invoices: "+err.Error())
		return
	}

	var invoices []models.Invoice
	if err := query.Preload("Items").Preload("Patient").
		Order("bill_date desc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&invoices).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch invoices: "+err.Error())
		return
	}

	utils.Success(c, "Invoices fetched successfully", gin.H{
		"invoices":    invoices,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetInvoiceByID fetches a single invoice with its items.
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	var invoice models.Invoice
	if err := h.DB.Preload("Items").Preload("Patient").
		First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Invoice not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Invoice fetched successfully", invoice)
}

// RecordPaymentRequest represents the request body for applying a payment.
type RecordPaymentRequest struct {
	AmountPaid     float64    `json:"amountPaid" binding:"required"`
	PaymentMethod  string     `json:"paymentMethod" binding:"required"`
	PaymentDate    *time.Time `json:"paymentDate"`
	IdempotencyKey string     `json:"idempotencyKey"`
}

// RecordPayment applies a payment to an invoice.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	invoice, err := h.Service.ApplyPayment(services.ApplyPaymentInput{
		InvoiceID:      c.Param("id"),
		Amount:         req.AmountPaid,
		Method:         req.PaymentMethod,
		PaymentDate:    req.PaymentDate,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Payment recorded successfully", invoice)
}
