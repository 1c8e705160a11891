package models

// WardType enum
type WardType string

const (
	WardICU       WardType = "ICU"
	WardGeneral   WardType = "General"
	WardPrivate   WardType = "Private"
	WardPediatric WardType = "Pediatric"
	WardCardiac   WardType = "Cardiac"
	WardOther     WardType = "Other"
)

// Ward represents a hospital ward. The list of admitted patients is derived
// from Patient.WardID rather than stored here, so there is a single source of
// truth for ward membership.
type Ward struct {
	BaseModel
	WardID        string     `gorm:"uniqueIndex;size:16" json:"wardId"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	DepartmentID  string     `gorm:"size:36;index;not null" json:"departmentId"`
	TotalBeds     int        `gorm:"not null" json:"totalBeds"`
	AvailableBeds int        `gorm:"not null" json:"availableBeds"`
	WardType      WardType   `gorm:"size:20" json:"wardType"`
	Facilities    StringList `gorm:"type:json" json:"facilities"`
	CostPerDay    float64    `json:"costPerDay"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}
