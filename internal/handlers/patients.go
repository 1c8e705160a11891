package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
	"hospital-management-server/internal/utils"
)

// PatientHandler handles patient registry requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	FirstName             string        `json:"firstName" binding:"required"`
	LastName              string        `json:"lastName" binding:"required"`
	DateOfBirth           time.Time     `json:"dateOfBirth" binding:"required"`
	Gender                models.Gender `json:"gender" binding:"required,oneof=Male Female Other"`
	Email                 string        `json:"email" binding:"omitempty,email"`
	Phone                 string        `json:"phone" binding:"required"`
	Address               string        `json:"address"`
	City                  string        `json:"city"`
	State                 string        `json:"state"`
	ZipCode               string        `json:"zipCode"`
	BloodType             string        `json:"bloodType"`
	EmergencyContactName  string        `json:"emergencyContactName"`
	EmergencyContactPhone string        `json:"emergencyContactPhone"`
	Allergies             []string      `json:"allergies"`
	ChronicDiseases       []string      `json:"chronicDiseases"`
	CurrentMedications    []string      `json:"currentMedications"`
	InsuranceProvider     string        `json:"insuranceProvider"`
	InsurancePolicyNumber string        `json:"insurancePolicyNumber"`
	WardID                string        `json:"wardId"`
}

// CreatePatient registers a new patient and mints its PAT identifier.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.KindPatient)
		if err != nil {
			return err
		}
		patient = models.Patient{
			PatientID:             id,
			FirstName:             req.FirstName,
			LastName:              req.LastName,
			DateOfBirth:           req.DateOfBirth,
			Gender:                req.Gender,
			Email:                 req.Email,
			Phone:                 req.Phone,
			Address:               req.Address,
			City:                  req.City,
			State:                 req.State,
			ZipCode:               req.ZipCode,
			BloodType:             req.BloodType,
			EmergencyContactName:  req.EmergencyContactName,
			EmergencyContactPhone: req.EmergencyContactPhone,
			Allergies:             req.Allergies,
			ChronicDiseases:       req.ChronicDiseases,
			CurrentMedications:    req.CurrentMedications,
			InsuranceProvider:     req.InsuranceProvider,
			InsurancePolicyNumber: req.InsurancePolicyNumber,
			WardID:                req.WardID,
			RegistrationDate:      time.Now(),
			IsActive:              true,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient registered successfully", patient)
}

// GetPatients lists patients with optional search and pagination.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.Patient{}).Where("is_active = ?", true)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR patient_id LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	var patients []models.Patient
	if err := query.Order("registration_date desc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", gin.H{
		"patients":    patients,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetPatientByID fetches a single patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents the request body for updating a patient.
type UpdatePatientRequest struct {
	FirstName             *string   `json:"firstName"`
	LastName              *string   `json:"lastName"`
	Email                 *string   `json:"email" binding:"omitempty,email"`
	Phone                 *string   `json:"phone"`
	Address               *string   `json:"address"`
	City                  *string   `json:"city"`
	State                 *string   `json:"state"`
	ZipCode               *string   `json:"zipCode"`
	BloodType             *string   `json:"bloodType"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	Allergies             *[]string `json:"allergies"`
	ChronicDiseases       *[]string `json:"chronicDiseases"`
	CurrentMedications    *[]string `json:"currentMedications"`
	InsuranceProvider     *string   `json:"insuranceProvider"`
	InsurancePolicyNumber *string   `json:"insurancePolicyNumber"`
	WardID                *string   `json:"wardId"`
}

// UpdatePatient updates the mutable demographic fields of a patient.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("email", req.Email)
	setString("phone", req.Phone)
	setString("address", req.Address)
	setString("city", req.City)
	setString("state", req.State)
	setString("zip_code", req.ZipCode)
	setString("blood_type", req.BloodType)
	setString("emergency_contact_name", req.EmergencyContactName)
	setString("emergency_contact_phone", req.EmergencyContactPhone)
	setString("insurance_provider", req.InsuranceProvider)
	setString("insurance_policy_number", req.InsurancePolicyNumber)
	setString("ward_id", req.WardID)
	if req.Allergies != nil {
		updates["allergies"] = models.StringList(*req.Allergies)
	}
	if req.ChronicDiseases != nil {
		updates["chronic_diseases"] = models.StringList(*req.ChronicDiseases)
	}
	if req.CurrentMedications != nil {
		updates["current_medications"] = models.StringList(*req.CurrentMedications)
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&patient).Updates(updates).Error; err != nil {
			utils.InternalServerError(c, "Failed to update patient: "+err.Error())
			return
		}
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeactivatePatient soft-deactivates a patient. Records are never physically
// deleted.
func (h *PatientHandler) DeactivatePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Model(&patient).Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deactivated successfully", patient)
}
