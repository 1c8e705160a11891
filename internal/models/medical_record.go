package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Vitals captures the measurements taken during a visit.
type Vitals struct {
	BloodPressure   string  `json:"bloodPressure,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	HeartRate       int     `json:"heartRate,omitempty"`
	RespiratoryRate int     `json:"respiratoryRate,omitempty"`
	Weight          float64 `json:"weight,omitempty"`
	Height          float64 `json:"height,omitempty"`
}

// PrescriptionEntry is one prescribed medicine on a record.
type PrescriptionEntry struct {
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// LabTestEntry is one lab test result on a record.
type LabTestEntry struct {
	TestName    string `json:"testName"`
	Result      string `json:"result,omitempty"`
	NormalRange string `json:"normalRange,omitempty"`
	Status      string `json:"status,omitempty"`
}

// JSONColumn stores an arbitrary document as a JSON column.
type JSONColumn[T any] struct {
	Data T
}

func (c JSONColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(c.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *JSONColumn[T]) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &c.Data)
	case string:
		return json.Unmarshal([]byte(v), &c.Data)
	default:
		return fmt.Errorf("unsupported type %T for JSONColumn", value)
	}
}

func (c JSONColumn[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Data)
}

func (c *JSONColumn[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &c.Data)
}

// MedicalRecord represents a clinical record of a patient visit.
type MedicalRecord struct {
	BaseModel
	RecordID      string                          `gorm:"uniqueIndex;size:16" json:"recordId"`
	PatientID     string                          `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID      string                          `gorm:"size:36;index;not null" json:"doctorId"`
	AppointmentID string                          `gorm:"size:36;index" json:"appointmentId,omitempty"`
	VisitDate     time.Time                       `json:"visitDate"`
	Diagnosis     string                          `gorm:"type:text" json:"diagnosis,omitempty"`
	Symptoms      StringList                      `gorm:"type:json" json:"symptoms"`
	Vitals        JSONColumn[Vitals]              `gorm:"type:json" json:"vitals"`
	Prescription  JSONColumn[[]PrescriptionEntry] `gorm:"type:json" json:"prescription"`
	LabTests      JSONColumn[[]LabTestEntry]      `gorm:"type:json" json:"labTests"`
	Notes         string                          `gorm:"type:text" json:"notes,omitempty"`
	FollowUpDate  *time.Time                      `json:"followUpDate,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
