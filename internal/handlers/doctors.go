package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// DoctorHandler handles doctor profile requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// CreateDoctorRequest represents the request body for creating a doctor profile.
type CreateDoctorRequest struct {
	UserID          string   `json:"userId" binding:"required"`
	LicenseNumber   string   `json:"licenseNumber" binding:"required"`
	Specialization  string   `json:"specialization" binding:"required"`
	DepartmentID    string   `json:"departmentId" binding:"required"`
	Qualification   []string `json:"qualification"`
	Experience      int      `json:"experience"`
	ConsultationFee float64  `json:"consultationFee"`
}

// CreateDoctor creates a doctor profile for an existing staff account.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error verifying user: "+err.Error())
		}
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

	doctor := models.Doctor{
		UserID:          req.UserID,
		LicenseNumber:   req.LicenseNumber,
		Specialization:  req.Specialization,
		DepartmentID:    req.DepartmentID,
		Qualification:   req.Qualification,
		Experience:      req.Experience,
		ConsultationFee: req.ConsultationFee,
		IsAvailable:     true,
	}
	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctors lists doctors with optional specialization/department filters.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.Doctor{})
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}
	if departmentID := c.Query("department"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}

	var doctors []models.Doctor
	if err := query.Preload("User").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", gin.H{
		"doctors":     doctors,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetDoctorByID fetches a single doctor profile.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Doctor fetched successfully", doctor)
}

// UpdateDoctorRequest represents the request body for updating a doctor profile.
type UpdateDoctorRequest struct {
	Specialization  *string   `json:"specialization"`
	DepartmentID    *string   `json:"departmentId"`
	Qualification   *[]string `json:"qualification"`
	Experience      *int      `json:"experience"`
	ConsultationFee *float64  `json:"consultationFee"`
	IsAvailable     *bool     `json:"isAvailable"`
}

// UpdateDoctor updates a doctor's mutable profile fields. Changing the
// consultation fee never touches already-booked appointments, which keep
// the fee snapshotted at booking time.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	updates := map[string]interface{}{}
	if req.Specialization != nil {
		updates["specialization"] = *req.Specialization
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.Qualification != nil {
		updates["qualification"] = models.StringList(*req.Qualification)
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.ConsultationFee != nil {
		updates["consultation_fee"] = *req.ConsultationFee
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&doctor).Updates(updates).Error; err != nil {
			utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
			return
		}
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}
