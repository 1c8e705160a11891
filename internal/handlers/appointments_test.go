package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hospital-management-server/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "hospital.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

// newTestRouter wires the appointment routes without authentication so the
// handlers can be exercised directly.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAppointmentHandler(db)
	router.POST("/appointments", h.BookAppointment)
	router.GET("/appointments/:id", h.GetAppointmentByID)
	router.PUT("/appointments/:id/status", h.UpdateAppointmentStatus)
	router.PUT("/appointments/:id/reschedule", h.RescheduleAppointment)
	router.PUT("/appointments/:id/cancel", h.CancelAppointment)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedPatientAndDoctor(t *testing.T, db *gorm.DB) (*models.Patient, *models.Doctor) {
	t.Helper()

	department := &models.Department{Name: "Cardiology", IsActive: true}
	require.NoError(t, db.Create(department).Error)

	patient := &models.Patient{
		PatientID:        "PAT000001",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		DateOfBirth:      time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:           models.GenderFemale,
		Phone:            "555-0100",
		RegistrationDate: time.Now(),
		IsActive:         true,
	}
	require.NoError(t, db.Create(patient).Error)

	user := &models.User{
		Email:     "doctor@hospital.test",
		Password:  "x",
		FirstName: "Gregory",
		LastName:  "House",
		Role:      models.RoleDoctor,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	doctor := &models.Doctor{
		UserID:          user.ID,
		LicenseNumber:   "LIC-0001",
		Specialization:  "Diagnostics",
		DepartmentID:    department.ID,
		ConsultationFee: 500,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(doctor).Error)

	return patient, doctor
}

func TestBookAppointmentEndpoint(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	patient, doctor := seedPatientAndDoctor(t, db)

	rec := doJSON(t, router, http.MethodPost, "/appointments", gin.H{
		"patientId":       patient.ID,
		"doctorId":        doctor.ID,
		"appointmentDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"timeSlot":        "10:00-10:30",
		"reason":          "Checkup",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "APT000001", resp.Data.AppointmentID)
	assert.Equal(t, models.StatusScheduled, resp.Data.Status)
	assert.Equal(t, 500.0, resp.Data.ConsultationFee)
}

func TestBookAppointmentUnknownPatientReturns404(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	_, doctor := seedPatientAndDoctor(t, db)

	rec := doJSON(t, router, http.MethodPost, "/appointments", gin.H{
		"patientId":       "missing",
		"doctorId":        doctor.ID,
		"appointmentDate": time.Now().Format(time.RFC3339),
		"timeSlot":        "10:00",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookAppointmentMissingFieldsReturns400(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	rec := doJSON(t, router, http.MethodPost, "/appointments", gin.H{
		"patientId": "only-patient",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAppointmentStatusEndpoint(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	patient, doctor := seedPatientAndDoctor(t, db)

	booked := doJSON(t, router, http.MethodPost, "/appointments", gin.H{
		"patientId":       patient.ID,
		"doctorId":        doctor.ID,
		"appointmentDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"timeSlot":        "10:00-10:30",
	})
	require.Equal(t, http.StatusCreated, booked.Code)

	var created struct {
		Data models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(booked.Body.Bytes(), &created))

	rec := doJSON(t, router, http.MethodPut, "/appointments/"+created.Data.ID+"/status", gin.H{
		"status": "Completed",
		"notes":  "All clear",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Patient
	require.NoError(t, db.First(&p, "id = ?", patient.ID).Error)
	assert.Equal(t, 1, p.TotalVisits)

	// Cancelling a completed appointment must be rejected.
	cancel := doJSON(t, router, http.MethodPut, "/appointments/"+created.Data.ID+"/cancel", gin.H{
		"cancellationReason": "Too late",
	})
	assert.Equal(t, http.StatusBadRequest, cancel.Code)
}

func TestUpdateAppointmentStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	rec := doJSON(t, router, http.MethodPut, "/appointments/some-id/status", gin.H{
		"status": "Archived",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
