package models

import (
	"time"
)

// WasteCategory enum
type WasteCategory string

const (
	WasteInfectious     WasteCategory = "Infectious"
	WasteSharps         WasteCategory = "Sharps"
	WasteChemical       WasteCategory = "Chemical"
	WasteGeneral        WasteCategory = "General"
	WastePathological   WasteCategory = "Pathological"
	WastePharmaceutical WasteCategory = "Pharmaceutical"
)

// WasteStatus represents the disposal lifecycle state of a waste record
type WasteStatus string

const (
	WasteCollected WasteStatus = "Collected"
	WasteStored    WasteStatus = "Stored"
	WasteProcessed WasteStatus = "Processed"
	WasteDisposed  WasteStatus = "Disposed"
)

// HazardLevel enum
type HazardLevel string

const (
	HazardLow    HazardLevel = "Low"
	HazardMedium HazardLevel = "Medium"
	HazardHigh   HazardLevel = "High"
)

// ComplianceStatus enum
type ComplianceStatus string

const (
	ComplianceCompliant  ComplianceStatus = "Compliant"
	ComplianceMinorIssue ComplianceStatus = "Minor Issue"
	ComplianceMajorIssue ComplianceStatus = "Major Issue"
)

// WasteRecord represents a medical waste entry tracked for compliance.
// Records are never deleted.
type WasteRecord struct {
	BaseModel
	WasteID           string           `gorm:"uniqueIndex;size:16" json:"wasteId"`
	Category          WasteCategory    `gorm:"size:30;not null" json:"category"`
	Date              time.Time        `json:"date"`
	DepartmentID      string           `gorm:"size:36;index;not null" json:"departmentId"`
	WardID            string           `gorm:"size:36;index" json:"wardId,omitempty"`
	Quantity          float64          `gorm:"not null" json:"quantity"`
	Unit              string           `gorm:"size:20;default:'kg'" json:"unit"`
	Description       string           `gorm:"type:text" json:"description,omitempty"`
	HazardLevel       HazardLevel      `gorm:"size:10;default:'Medium'" json:"hazardLevel"`
	DisposalMethod    string           `gorm:"size:100" json:"disposalMethod,omitempty"`
	DisposalDate      *time.Time       `json:"disposalDate,omitempty"`
	DisposalVendor    string           `gorm:"size:150" json:"disposalVendor,omitempty"`
	CertificateNumber string           `gorm:"size:100" json:"certificateNumber,omitempty"`
	CollectedByID     string           `gorm:"size:36" json:"collectedById,omitempty"`
	DisposedByID      string           `gorm:"size:36" json:"disposedById,omitempty"`
	Status            WasteStatus      `gorm:"size:20;default:'Collected'" json:"status"`
	ComplianceStatus  ComplianceStatus `gorm:"size:20;default:'Compliant'" json:"complianceStatus"`
	Notes             string           `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Ward       Ward       `gorm:"foreignKey:WardID" json:"-"`
}
