package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

func createTestItem(t *testing.T, db *gorm.DB, quantity, minimum int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		ItemID:       "INV000001",
		Name:         "Surgical gloves",
		Category:     "Consumables",
		Unit:         "box",
		Quantity:     quantity,
		MinimumLevel: minimum,
		IsActive:     true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestAdjustAddIncreasesQuantityAndRestockDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := createTestItem(t, db, 10, 5)

	updated, err := svc.Adjust(item.ID, 15, ActionAdd)
	require.NoError(t, err)

	assert.Equal(t, 25, updated.Quantity)
	assert.NotNil(t, updated.LastRestockDate)
}

func TestAdjustRemoveDecreasesQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := createTestItem(t, db, 10, 5)

	updated, err := svc.Adjust(item.ID, 4, ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)
}

func TestAdjustRemoveBeyondStockFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := createTestItem(t, db, 10, 5)

	_, err := svc.Adjust(item.ID, 15, ActionRemove)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	// The failed removal must leave the quantity untouched.
	var stored models.InventoryItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 10, stored.Quantity)
}

func TestAdjustRemoveExactStockSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := createTestItem(t, db, 10, 5)

	updated, err := svc.Adjust(item.ID, 10, ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
}

func TestAdjustRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := createTestItem(t, db, 10, 5)

	_, err := svc.Adjust(item.ID, 0, ActionAdd)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Adjust(item.ID, -3, ActionRemove)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Adjust(item.ID, 5, "transfer")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjustUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.Adjust("missing", 5, ActionAdd)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLowStockListsItemsAtOrBelowMinimum(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	low := &models.InventoryItem{ItemID: "INV000001", Name: "Gauze", Category: "Consumables", Quantity: 3, MinimumLevel: 5, IsActive: true}
	atMinimum := &models.InventoryItem{ItemID: "INV000002", Name: "Syringes", Category: "Consumables", Quantity: 5, MinimumLevel: 5, IsActive: true}
	healthy := &models.InventoryItem{ItemID: "INV000003", Name: "Masks", Category: "Consumables", Quantity: 50, MinimumLevel: 5, IsActive: true}
	inactive := &models.InventoryItem{ItemID: "INV000004", Name: "Old stock", Category: "Consumables", Quantity: 0, MinimumLevel: 5, IsActive: false}
	for _, item := range []*models.InventoryItem{low, atMinimum, healthy, inactive} {
		require.NoError(t, db.Create(item).Error)
	}

	items, err := svc.LowStock()
	require.NoError(t, err)
	require.Len(t, items, 2)

	ids := []string{items[0].ItemID, items[1].ItemID}
	assert.ElementsMatch(t, []string{"INV000001", "INV000002"}, ids)
}
