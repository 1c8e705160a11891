package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
	"hospital-management-server/internal/utils"
)

// WardHandler handles ward requests.
type WardHandler struct {
	DB *gorm.DB
}

// NewWardHandler creates a new WardHandler.
func NewWardHandler(db *gorm.DB) *WardHandler {
	return &WardHandler{DB: db}
}

// CreateWardRequest represents the request body for creating a ward.
type CreateWardRequest struct {
	Name         string          `json:"name" binding:"required"`
	DepartmentID string          `json:"departmentId" binding:"required"`
	TotalBeds    int             `json:"totalBeds" binding:"required,gt=0"`
	WardType     models.WardType `json:"wardType" binding:"omitempty,oneof=ICU General Private Pediatric Cardiac Other"`
	Facilities   []string        `json:"facilities"`
	CostPerDay   float64         `json:"costPerDay"`
}

// CreateWard creates a ward and mints its WRD identifier.
func (h *WardHandler) CreateWard(c *gin.Context) {
	var req CreateWardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error verifying department: "+err.Error())
		}
		return
	}

	var ward models.Ward
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.KindWard)
		if err != nil {
			return err
		}
		ward = models.Ward{
			WardID:        id,
			Name:          req.Name,
			DepartmentID:  req.DepartmentID,
			TotalBeds:     req.TotalBeds,
			AvailableBeds: req.TotalBeds,
			WardType:      req.WardType,
			Facilities:    req.Facilities,
			CostPerDay:    req.CostPerDay,
			IsActive:      true,
		}
		return tx.Create(&ward).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create ward: "+err.Error())
		return
	}

	utils.Created(c, "Ward created successfully", ward)
}

// GetWards lists active wards.
func (h *WardHandler) GetWards(c *gin.Context) {
	var wards []models.Ward
	if err := h.DB.Where("is_active = ?", true).Order("name asc").Find(&wards).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch wards: "+err.Error())
		return
	}
	utils.Success(c, "Wards fetched successfully", wards)
}

// GetWardByID fetches a ward together with its admitted patients, derived
// from the patient side of the relation.
func (h *WardHandler) GetWardByID(c *gin.Context) {
	var ward models.Ward
	if err := h.DB.First(&ward, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Ward not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var patients []models.Patient
	if err := h.DB.Where("ward_id = ? AND is_active = ?", ward.ID, true).Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch ward patients: "+err.Error())
		return
	}

	utils.Success(c, "Ward fetched successfully", gin.H{
		"ward":     ward,
		"patients": patients,
	})
}
