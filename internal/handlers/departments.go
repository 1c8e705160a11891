package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// DepartmentHandler handles department requests.
type DepartmentHandler struct {
	DB *gorm.DB
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

// CreateDepartmentRequest represents the request body for creating a department.
type CreateDepartmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	ContactNumber string `json:"contactNumber"`
	Location      string `json:"location"`
}

// CreateDepartment creates a new department.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department := models.Department{
		Name:          req.Name,
		Description:   req.Description,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		IsActive:      true,
	}
	if err := h.DB.Create(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to create department: "+err.Error())
		return
	}

	utils.Created(c, "Department created successfully", department)
}

// GetDepartments lists active departments.
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Where("is_active = ?", true).Order("name asc").Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}
	utils.Success(c, "Departments fetched successfully", departments)
}

// GetDepartmentByID fetches a single department.
func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Department fetched successfully", department)
}
