package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
)

// AppointmentService owns the appointment status state machine and the
// counters it drives on completion.
type AppointmentService struct {
	DB *gorm.DB
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{DB: db}
}

// BookInput carries the fields needed to book an appointment.
type BookInput struct {
	PatientID       string
	DoctorID        string
	AppointmentDate time.Time
	TimeSlot        string
	Reason          string
}

// Book creates a new appointment in Scheduled state. The doctor's current
// consultation fee is copied onto the appointment and stays fixed even if
// the doctor's fee changes later.
func (s *AppointmentService) Book(in BookInput) (*models.Appointment, error) {
	var appointment models.Appointment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, "id = ?", in.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("patient: %w", ErrNotFound)
			}
			return err
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, "id = ?", in.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("doctor: %w", ErrNotFound)
			}
			return err
		}

		id, err := sequence.Next(tx, sequence.KindAppointment)
		if err != nil {
			return err
		}

		appointment = models.Appointment{
			AppointmentID:   id,
			PatientID:       patient.ID,
			DoctorID:        doctor.ID,
			DepartmentID:    doctor.DepartmentID,
			AppointmentDate: in.AppointmentDate,
			TimeSlot:        in.TimeSlot,
			Reason:          in.Reason,
			ConsultationFee: doctor.ConsultationFee,
			Status:          models.StatusScheduled,
			BookedAt:        time.Now(),
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// SetStatus transitions an appointment to newStatus. Completing an
// appointment stamps completedAt and increments the patient's visit count
// and the doctor's appointment count; the CountersApplied marker, checked
// and set inside the same transaction as the status write, keeps those
// increments to at most one per appointment no matter how often Completed
// is re-submitted. Notes, when non-empty, overwrite the stored notes.
func (s *AppointmentService) SetStatus(id string, newStatus models.AppointmentStatus, notes string) (*models.Appointment, error) {
	var appointment models.Appointment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{"status": newStatus}
		if notes != "" {
			updates["notes"] = notes
		}

		switch newStatus {
		case models.StatusCompleted:
			if !appointment.CountersApplied {
				updates["completed_at"] = now
				updates["counters_applied"] = true

				if err := tx.Model(&models.Patient{}).
					Where("id = ?", appointment.PatientID).
					Updates(map[string]interface{}{
						"total_visits": gorm.Expr("total_visits + 1"),
						"last_visit":   now,
					}).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Doctor{}).
					Where("id = ?", appointment.DoctorID).
					Update("total_appointments", gorm.Expr("total_appointments + 1")).Error; err != nil {
					return err
				}
			}
		case models.StatusCancelled:
			updates["cancelled_at"] = now
		}

		if err := tx.Model(&appointment).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&appointment, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Reschedule moves an appointment to a new date and slot and marks it
// Rescheduled. Terminal appointments cannot be rescheduled.
func (s *AppointmentService) Reschedule(id string, newDate time.Time, newSlot string) (*models.Appointment, error) {
	var appointment models.Appointment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if appointment.Status.Terminal() {
			return fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidTransition, appointment.Status)
		}

		if err := tx.Model(&appointment).Updates(map[string]interface{}{
			"appointment_date": newDate,
			"time_slot":        newSlot,
			"status":           models.StatusRescheduled,
		}).Error; err != nil {
			return err
		}
		return tx.First(&appointment, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Cancel cancels an appointment and records the reason. Allowed from any
// non-terminal state.
func (s *AppointmentService) Cancel(id string, reason string) (*models.Appointment, error) {
	var appointment models.Appointment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if appointment.Status.Terminal() {
			return fmt.Errorf("%w: cannot cancel a %s appointment", ErrInvalidTransition, appointment.Status)
		}

		if err := tx.Model(&appointment).Updates(map[string]interface{}{
			"status":              models.StatusCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.First(&appointment, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
