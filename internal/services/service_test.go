package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hospital-management-server/internal/models"
)

// newTestDB opens a throwaway SQLite database with the full schema. A single
// connection keeps concurrent transactions serialized the way MySQL row
// locks would.
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

func createTestDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()
	department := &models.Department{Name: name, IsActive: true}
	require.NoError(t, db.Create(department).Error)
	return department
}

func createTestPatient(t *testing.T, db *gorm.DB, patientID string) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		PatientID:        patientID,
		FirstName:        "Ada",
		LastName:         "Lovelace",
		DateOfBirth:      time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:           models.GenderFemale,
		Phone:            "555-0100",
		RegistrationDate: time.Now(),
		IsActive:         true,
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func createTestDoctor(t *testing.T, db *gorm.DB, departmentID string, fee float64) *models.Doctor {
	t.Helper()
	user := &models.User{
		Email:     "doctor-" + departmentID + "@hospital.test",
		Password:  "x",
		FirstName: "Gregory",
		LastName:  "House",
		Role:      models.RoleDoctor,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	doctor := &models.Doctor{
		UserID:          user.ID,
		LicenseNumber:   "LIC-" + user.ID[:8],
		Specialization:  "Diagnostics",
		DepartmentID:    departmentID,
		ConsultationFee: fee,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}
