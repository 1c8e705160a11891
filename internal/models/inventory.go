package models

import (
	"time"
)

// InventoryItem represents a stocked supply item. Quantity never goes below
// zero; removals are guarded by a conditional update in the inventory
// service.
type InventoryItem struct {
	BaseModel
	ItemID          string     `gorm:"uniqueIndex;size:16" json:"itemId"`
	Name            string     `gorm:"size:150;not null" json:"name"`
	Category        string     `gorm:"size:100;not null" json:"category"`
	Unit            string     `gorm:"size:30" json:"unit,omitempty"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	MinimumLevel    int        `json:"minimumLevel"`
	MaximumLevel    int        `json:"maximumLevel"`
	UnitPrice       float64    `json:"unitPrice"`
	Supplier        string     `gorm:"size:150" json:"supplier,omitempty"`
	LastRestockDate *time.Time `json:"lastRestockDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	Location        string     `gorm:"size:100" json:"location,omitempty"`
	DepartmentID    string     `gorm:"size:36;index" json:"departmentId,omitempty"`
	IsActive        bool       `gorm:"default:true" json:"isActive"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}
