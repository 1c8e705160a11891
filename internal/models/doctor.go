package models

// Doctor represents a doctor's clinical profile, linked to a staff account.
type Doctor struct {
	BaseModel
	UserID            string     `gorm:"size:36;index;not null" json:"userId"`
	LicenseNumber     string     `gorm:"uniqueIndex;size:50;not null" json:"licenseNumber"`
	Specialization    string     `gorm:"size:100;not null" json:"specialization"`
	DepartmentID      string     `gorm:"size:36;index;not null" json:"departmentId"`
	Qualification     StringList `gorm:"type:json" json:"qualification"`
	Experience        int        `gorm:"default:0" json:"experience"`
	ConsultationFee   float64    `gorm:"default:0" json:"consultationFee"`
	IsAvailable       bool       `gorm:"default:true" json:"isAvailable"`
	TotalAppointments int        `gorm:"default:0" json:"totalAppointments"`
	TotalPatients     int        `gorm:"default:0" json:"totalPatients"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}
