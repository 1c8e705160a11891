package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/services"
	"hospital-management-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB      *gorm.DB
	Service *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Service: services.NewAppointmentService(db)}
}

// BookAppointmentRequest represents the request body for booking an appointment.
type BookAppointmentRequest struct {
	PatientID       string    `json:"patientId" binding:"required"`
	DoctorID        string    `json:"doctorId" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	TimeSlot        string    `json:"timeSlot" binding:"required"`
	Reason          string    `json:"reason"`
}

// BookAppointment handles booking a new appointment.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Service.Book(services.BookInput{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		TimeSlot:        req.TimeSlot,
		Reason:          req.Reason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointments lists appointments with optional status/doctor/patient
// filters and pagination.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.Appointment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID := c.Query("doctorId"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := query.Preload("Patient").Preload("Doctor").
		Order("appointment_date desc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", gin.H{
		"appointments": appointments,
		"total":        total,
		"totalPages":   page.TotalPages(total),
		"currentPage":  page.Page,
	})
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").
		First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=Scheduled Confirmed Completed Cancelled Rescheduled"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus handles updating the status of an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Service.SetStatus(c.Param("id"), req.Status, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// RescheduleAppointmentRequest represents the request body for rescheduling an appointment.
type RescheduleAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	TimeSlot        string    `json:"timeSlot" binding:"required"`
}

// RescheduleAppointment handles rescheduling an appointment.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Service.Reschedule(c.Param("id"), req.AppointmentDate, req.TimeSlot)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// CancelAppointmentRequest represents the request body for cancelling an appointment.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// CancelAppointment handles cancelling an appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var req CancelAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Service.Cancel(c.Param("id"), req.CancellationReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}
