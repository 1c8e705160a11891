package models

// Department represents a hospital department.
type Department struct {
	BaseModel
	Name               string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description        string `gorm:"type:text" json:"description,omitempty"`
	HeadOfDepartmentID string `gorm:"size:36" json:"headOfDepartmentId,omitempty"`
	TotalDoctors       int    `gorm:"default:0" json:"totalDoctors"`
	TotalStaff         int    `gorm:"default:0" json:"totalStaff"`
	ContactNumber      string `gorm:"size:30" json:"contactNumber,omitempty"`
	Location           string `gorm:"size:100" json:"location,omitempty"`
	IsActive           bool   `gorm:"default:true" json:"isActive"`
}
