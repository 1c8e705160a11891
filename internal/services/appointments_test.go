package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-management-server/internal/models"
)

func bookTestAppointment(t *testing.T, svc *AppointmentService, patientID, doctorID string) *models.Appointment {
	t.Helper()
	appointment, err := svc.Book(BookInput{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: time.Now().Add(24 * time.Hour),
		TimeSlot:        "10:00-10:30",
		Reason:          "Checkup",
	})
	require.NoError(t, err)
	return appointment
}

func TestBookSnapshotsConsultationFee(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)

	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	assert.Equal(t, "APT000001", appointment.AppointmentID)
	assert.Equal(t, models.StatusScheduled, appointment.Status)
	assert.Equal(t, 500.0, appointment.ConsultationFee)

	// Raising the doctor's fee must not change the booked appointment.
	require.NoError(t, db.Model(doctor).Update("consultation_fee", 700).Error)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appointment.ID).Error)
	assert.Equal(t, 500.0, stored.ConsultationFee)
}

func TestBookUnknownPatientOrDoctor(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)

	_, err := svc.Book(BookInput{PatientID: "missing", DoctorID: doctor.ID, AppointmentDate: time.Now(), TimeSlot: "09:00"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Book(BookInput{PatientID: patient.ID, DoctorID: "missing", AppointmentDate: time.Now(), TimeSlot: "09:00"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteIncrementsCountersExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	completed, err := svc.SetStatus(appointment.ID, models.StatusCompleted, "All good")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Equal(t, "All good", completed.Notes)

	// Completing again must not double-count.
	_, err = svc.SetStatus(appointment.ID, models.StatusCompleted, "")
	require.NoError(t, err)

	var p models.Patient
	require.NoError(t, db.First(&p, "id = ?", patient.ID).Error)
	assert.Equal(t, 1, p.TotalVisits)
	assert.NotNil(t, p.LastVisit)

	var d models.Doctor
	require.NoError(t, db.First(&d, "id = ?", doctor.ID).Error)
	assert.Equal(t, 1, d.TotalAppointments)
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	updated, err := svc.SetStatus(appointment.ID, models.StatusScheduled, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, updated.Status)

	var p models.Patient
	require.NoError(t, db.First(&p, "id = ?", patient.ID).Error)
	assert.Equal(t, 0, p.TotalVisits)
}

func TestSetStatusUnknownAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)

	_, err := svc.SetStatus("missing", models.StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelRecordsReasonAndTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	cancelled, err := svc.Cancel(appointment.ID, "Patient unavailable")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "Patient unavailable", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancelRejectsTerminalStates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	_, err := svc.SetStatus(appointment.ID, models.StatusCompleted, "")
	require.NoError(t, err)

	_, err = svc.Cancel(appointment.ID, "Too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRescheduleMovesDateAndSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	newDate := time.Now().Add(72 * time.Hour)
	moved, err := svc.Reschedule(appointment.ID, newDate, "14:00-14:30")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRescheduled, moved.Status)
	assert.Equal(t, "14:00-14:30", moved.TimeSlot)
}

func TestRescheduleRejectsTerminalStates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)
	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)

	_, err := svc.Cancel(appointment.ID, "No show")
	require.NoError(t, err)

	_, err = svc.Reschedule(appointment.ID, time.Now().Add(48*time.Hour), "11:00")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookRollsBackSequenceOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	department := createTestDepartment(t, db, "Cardiology")
	patient := createTestPatient(t, db, "PAT000001")
	doctor := createTestDoctor(t, db, department.ID, 500)

	// A failed booking must not consume an identifier.
	_, err := svc.Book(BookInput{PatientID: patient.ID, DoctorID: "missing", AppointmentDate: time.Now(), TimeSlot: "09:00"})
	require.ErrorIs(t, err, ErrNotFound)

	appointment := bookTestAppointment(t, svc, patient.ID, doctor.ID)
	assert.Equal(t, "APT000001", appointment.AppointmentID)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
