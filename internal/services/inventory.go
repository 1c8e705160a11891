package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// Quantity adjustment actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// InventoryService owns bounded stock quantity mutation and low-stock
// detection.
type InventoryService struct {
	DB *gorm.DB
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// Adjust changes an item's quantity by delta. Removal is a single
// conditional update guarded by quantity >= delta, so two concurrent
// removals can never drive the quantity negative: the guard is evaluated by
// the store at write time, not against a stale application-side read. A
// failed guard leaves the row untouched and returns ErrInsufficientQuantity.
func (s *InventoryService) Adjust(id string, delta int, action string) (*models.InventoryItem, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	var item models.InventoryItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch action {
	case ActionAdd:
		if err := s.DB.Model(&item).Updates(map[string]interface{}{
			"quantity":          gorm.Expr("quantity + ?", delta),
			"last_restock_date": time.Now(),
		}).Error; err != nil {
			return nil, err
		}
	case ActionRemove:
		res := s.DB.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity >= ?", id, delta).
			Update("quantity", gorm.Expr("quantity - ?", delta))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrInsufficientQuantity
		}
	default:
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrInvalidInput, ActionAdd, ActionRemove)
	}

	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// LowStock lists active items whose quantity has fallen to or below their
// minimum level. No ordering is guaranteed.
func (s *InventoryService) LowStock() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.DB.
		Where("quantity <= minimum_level AND is_active = ?", true).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
