package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "Scheduled"
	StatusConfirmed   AppointmentStatus = "Confirmed"
	StatusCompleted   AppointmentStatus = "Completed"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusRescheduled AppointmentStatus = "Rescheduled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment represents a scheduled medical appointment.
// ConsultationFee is snapshotted from the doctor at booking time and never
// follows later fee changes. CountersApplied guards the completion side
// effects (patient visit count, doctor appointment count) so they run at most
// once per appointment.
type Appointment struct {
	BaseModel
	AppointmentID      string            `gorm:"uniqueIndex;size:16" json:"appointmentId"`
	PatientID          string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID           string            `gorm:"size:36;index;not null" json:"doctorId"`
	DepartmentID       string            `gorm:"size:36;index" json:"departmentId,omitempty"`
	AppointmentDate    time.Time         `gorm:"not null" json:"appointmentDate"`
	TimeSlot           string            `gorm:"size:30;not null" json:"timeSlot"`
	Status             AppointmentStatus `gorm:"size:20;default:'Scheduled'" json:"status"`
	Reason             string            `gorm:"size:255" json:"reason,omitempty"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	ConsultationFee    float64           `json:"consultationFee"`
	BookedAt           time.Time         `json:"bookedAt"`
	CompletedAt        *time.Time        `json:"completedAt,omitempty"`
	CancelledAt        *time.Time        `json:"cancelledAt,omitempty"`
	CancellationReason string            `gorm:"size:255" json:"cancellationReason,omitempty"`
	CountersApplied    bool              `gorm:"default:false" json:"-"`

	// Relations
	Patient    Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}
