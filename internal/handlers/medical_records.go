package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
	"hospital-management-server/internal/utils"
)

// MedicalRecordHandler handles clinical record requests.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for creating a record.
type CreateMedicalRecordRequest struct {
	PatientID     string                     `json:"patientId" binding:"required"`
	DoctorID      string                     `json:"doctorId" binding:"required"`
	AppointmentID string                     `json:"appointmentId"`
	VisitDate     *time.Time                 `json:"visitDate"`
	Diagnosis     string                     `json:"diagnosis"`
	Symptoms      []string                   `json:"symptoms"`
	Vitals        models.Vitals              `json:"vitals"`
	Prescription  []models.PrescriptionEntry `json:"prescription"`
	LabTests      []models.LabTestEntry      `json:"labTests"`
	Notes         string                     `json:"notes"`
	FollowUpDate  *time.Time                 `json:"followUpDate"`
}

// CreateMedicalRecord creates a clinical record for a visit.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}
	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	visitDate := time.Now()
	if req.VisitDate != nil {
		visitDate = *req.VisitDate
	}

	var record models.MedicalRecord
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.KindMedicalRecord)
		if err != nil {
			return err
		}
		record = models.MedicalRecord{
			RecordID:      id,
			PatientID:     req.PatientID,
			DoctorID:      req.DoctorID,
			AppointmentID: req.AppointmentID,
			VisitDate:     visitDate,
			Diagnosis:     req.Diagnosis,
			Symptoms:      req.Symptoms,
			Vitals:        models.JSONColumn[models.Vitals]{Data: req.Vitals},
			Prescription:  models.JSONColumn[[]models.PrescriptionEntry]{Data: req.Prescription},
			LabTests:      models.JSONColumn[[]models.LabTestEntry]{Data: req.LabTests},
			Notes:         req.Notes,
			FollowUpDate:  req.FollowUpDate,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient lists a patient's records.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	page := utils.ParsePagination(c)
	patientID := c.Param("patientId")

	query := h.DB.Model(&models.MedicalRecord{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count medical records: "+err.Error())
		return
	}

	var records []models.MedicalRecord
	if err := query.Order("visit_date desc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", gin.H{
		"records":     records,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetMedicalRecordByID fetches a single record.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medical record fetched successfully", record)
}

// UpdateMedicalRecordRequest represents the request body for updating a record.
type UpdateMedicalRecordRequest struct {
	Diagnosis    *string                     `json:"diagnosis"`
	Symptoms     *[]string                   `json:"symptoms"`
	Vitals       *models.Vitals              `json:"vitals"`
	Prescription *[]models.PrescriptionEntry `json:"prescription"`
	LabTests     *[]models.LabTestEntry      `json:"labTests"`
	Notes        *string                     `json:"notes"`
	FollowUpDate *time.Time                  `json:"followUpDate"`
}

// UpdateMedicalRecord updates a record's clinical fields.
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	var req UpdateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	updates := map[string]interface{}{}
	if req.Diagnosis != nil {
		updates["diagnosis"] = *req.Diagnosis
	}
	if req.Symptoms != nil {
		updates["symptoms"] = models.StringList(*req.Symptoms)
	}
	if req.Vitals != nil {
		updates["vitals"] = models.JSONColumn[models.Vitals]{Data: *req.Vitals}
	}
	if req.Prescription != nil {
		updates["prescription"] = models.JSONColumn[[]models.PrescriptionEntry]{Data: *req.Prescription}
	}
	if req.LabTests != nil {
		updates["lab_tests"] = models.JSONColumn[[]models.LabTestEntry]{Data: *req.LabTests}
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.FollowUpDate != nil {
		updates["follow_up_date"] = *req.FollowUpDate
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&record).Updates(updates).Error; err != nil {
			utils.InternalServerError(c, "Failed to update medical record: "+err.Error())
			return
		}
	}

	utils.Success(c, "Medical record updated successfully", record)
}
