package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/services"
	"hospital-management-server/internal/utils"
)

// WasteHandler handles medical waste compliance requests.
type WasteHandler struct {
	DB      *gorm.DB
	Service *services.WasteService
}

// NewWasteHandler creates a new WasteHandler.
func NewWasteHandler(db *gorm.DB) *WasteHandler {
	return &WasteHandler{DB: db, Service: services.NewWasteService(db)}
}

// CreateWasteRequest represents the request body for recording waste.
type CreateWasteRequest struct {
	Category     models.WasteCategory `json:"category" binding:"required,oneof=Infectious Sharps Chemical General Pathological Pharmaceutical"`
	DepartmentID string               `json:"departmentId" binding:"required"`
	WardID       string               `json:"wardId"`
	Quantity     float64              `json:"quantity" binding:"required,gt=0"`
	Unit         string               `json:"unit" binding:"omitempty,oneof=kg liters units"`
	Description  string               `json:"description"`
	HazardLevel  models.HazardLevel   `json:"hazardLevel" binding:"omitempty,oneof=Low Medium High"`
}

// CreateWasteEntry records a new waste collection attributed to the
// authenticated user.
func (h *WasteHandler) CreateWasteEntry(c *gin.Context) {
	var req CreateWasteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	collectedBy, _ := middleware.GetUserIDFromContext(c)

	record, err := h.Service.Record(services.RecordWasteInput{
		Category:      req.Category,
		DepartmentID:  req.DepartmentID,
		WardID:        req.WardID,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Description:   req.Description,
		HazardLevel:   req.HazardLevel,
		CollectedByID: collectedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Waste entry created successfully", record)
}

// GetWasteRecords lists waste records with category/status/date filters.
func (h *WasteHandler) GetWasteRecords(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.WasteRecord{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate, err := time.Parse(time.RFC3339, c.Query("startDate")); err == nil {
		query = query.Where("date >= ?", startDate)
	}
	if endDate, err := time.Parse(time.RFC3339, c.Query("endDate")); err == nil {
		query = query.Where("date <= ?", endDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count waste records: "+err.Error())
		return
	}

	var records []models.WasteRecord
	if err := query.Preload("Department").
		Order("date desc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch waste records: "+err.Error())
		return
	}

	utils.Success(c, "Waste records fetched successfully", gin.H{
		"waste":       records,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetWasteByID fetches a single waste record.
func (h *WasteHandler) GetWasteByID(c *gin.Context) {
	var record models.WasteRecord
	if err := h.DB.Preload("Department").
		First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Waste record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Waste record fetched successfully", record)
}

// UpdateWasteStatusRequest represents the request body for advancing waste
// disposal status.
type UpdateWasteStatusRequest struct {
	Status            models.WasteStatus `json:"status" binding:"required,oneof=Collected Stored Processed Disposed"`
	DisposalMethod    string             `json:"disposalMethod"`
	DisposalDate      *time.Time         `json:"disposalDate"`
	DisposalVendor    string             `json:"disposalVendor"`
	CertificateNumber string             `json:"certificateNumber"`
	Notes             string             `json:"notes"`
}

// UpdateWasteStatus advances a waste record's disposal status.
func (h *WasteHandler) UpdateWasteStatus(c *gin.Context) {
	var req UpdateWasteStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	disposedBy, _ := middleware.GetUserIDFromContext(c)

	record, err := h.Service.Advance(c.Param("id"), services.AdvanceInput{
		Status:            req.Status,
		DisposalMethod:    req.DisposalMethod,
		DisposalDate:      req.DisposalDate,
		DisposalVendor:    req.DisposalVendor,
		CertificateNumber: req.CertificateNumber,
		Notes:             req.Notes,
		DisposedByID:      disposedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Waste status updated successfully", record)
}

// GenerateWasteReport aggregates waste records into compliance totals.
func (h *WasteHandler) GenerateWasteReport(c *gin.Context) {
	filter := services.ReportFilter{
		Category: models.WasteCategory(c.Query("category")),
	}
	if startDate, err := time.Parse(time.RFC3339, c.Query("startDate")); err == nil {
		filter.StartDate = &startDate
	}
	if endDate, err := time.Parse(time.RFC3339, c.Query("endDate")); err == nil {
		filter.EndDate = &endDate
	}

	report, records, err := h.Service.Report(filter)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate waste report: "+err.Error())
		return
	}

	utils.Success(c, "Waste report generated successfully", gin.H{
		"report":  report,
		"records": records,
	})
}
