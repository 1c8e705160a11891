package models

import (
	"time"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Patient represents a registered patient.
// PatientID is the human-readable identifier (PAT000001) minted by the
// sequence allocator; the uuid primary key stays internal.
type Patient struct {
	BaseModel
	PatientID             string     `gorm:"uniqueIndex;size:16" json:"patientId"`
	FirstName             string     `gorm:"size:100;not null" json:"firstName"`
	LastName              string     `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth           time.Time  `json:"dateOfBirth"`
	Gender                Gender     `gorm:"size:10" json:"gender"`
	Email                 string     `gorm:"size:255" json:"email,omitempty"`
	Phone                 string     `gorm:"size:30;not null" json:"phone"`
	Address               string     `gorm:"size:255" json:"address,omitempty"`
	City                  string     `gorm:"size:100" json:"city,omitempty"`
	State                 string     `gorm:"size:100" json:"state,omitempty"`
	ZipCode               string     `gorm:"size:20" json:"zipCode,omitempty"`
	BloodType             string     `gorm:"size:5" json:"bloodType,omitempty"`
	EmergencyContactName  string     `gorm:"size:100" json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string     `gorm:"size:30" json:"emergencyContactPhone,omitempty"`
	Allergies             StringList `gorm:"type:json" json:"allergies"`
	ChronicDiseases       StringList `gorm:"type:json" json:"chronicDiseases"`
	CurrentMedications    StringList `gorm:"type:json" json:"currentMedications"`
	InsuranceProvider     string     `gorm:"size:100" json:"insuranceProvider,omitempty"`
	InsurancePolicyNumber string     `gorm:"size:50" json:"insurancePolicyNumber,omitempty"`
	WardID                string     `gorm:"size:36;index" json:"wardId,omitempty"`
	RegistrationDate      time.Time  `json:"registrationDate"`
	LastVisit             *time.Time `json:"lastVisit,omitempty"`
	TotalVisits           int        `gorm:"default:0" json:"totalVisits"`
	IsActive              bool       `gorm:"default:true" json:"isActive"`
}
