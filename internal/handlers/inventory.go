package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
	"hospital-management-server/internal/services"
	"hospital-management-server/internal/utils"
)

// InventoryHandler handles supply stock requests.
type InventoryHandler struct {
	DB      *gorm.DB
	Service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{DB: db, Service: services.NewInventoryService(db)}
}

// CreateInventoryItemRequest represents the request body for creating an item.
type CreateInventoryItemRequest struct {
	Name         string     `json:"name" binding:"required"`
	Category     string     `json:"category" binding:"required"`
	Unit         string     `json:"unit"`
	Quantity     int        `json:"quantity" binding:"min=0"`
	MinimumLevel int        `json:"minimumLevel" binding:"min=0"`
	MaximumLevel int        `json:"maximumLevel" binding:"min=0"`
	UnitPrice    float64    `json:"unitPrice"`
	Supplier     string     `json:"supplier"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Location     string     `json:"location"`
	DepartmentID string     `json:"departmentId"`
}

// CreateInventoryItem creates a stock item and mints its identifier.
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req CreateInventoryItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	now := time.Now()
	var item models.InventoryItem
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		id, err := sequence.Next(tx, sequence.KindInventory)
		if err != nil {
			return err
		}
		item = models.InventoryItem{
			ItemID:          id,
			Name:            req.Name,
			Category:        req.Category,
			Unit:            req.Unit,
			Quantity:        req.Quantity,
			MinimumLevel:    req.MinimumLevel,
			MaximumLevel:    req.MaximumLevel,
			UnitPrice:       req.UnitPrice,
			Supplier:        req.Supplier,
			LastRestockDate: &now,
			ExpiryDate:      req.ExpiryDate,
			Location:        req.Location,
			DepartmentID:    req.DepartmentID,
			IsActive:        true,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create inventory item: "+err.Error())
		return
	}

	utils.Created(c, "Inventory item created successfully", item)
}

// GetInventory lists items with optional category/department/search filters.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	page := utils.ParsePagination(c)

	query := h.DB.Model(&models.InventoryItem{}).Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if departmentID := c.Query("department"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR item_id LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count inventory: "+err.Error())
		return
	}

	var items []models.InventoryItem
	if err := query.Order("name asc").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch inventory: "+err.Error())
		return
	}

	utils.Success(c, "Inventory fetched successfully", gin.H{
		"items":       items,
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
	})
}

// GetInventoryItemByID fetches a single item.
func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	var item models.InventoryItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Item fetched successfully", item)
}

// UpdateQuantityRequest represents the request body for a stock adjustment.
type UpdateQuantityRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Action   string `json:"action" binding:"required,oneof=add remove"`
}

// UpdateQuantity adjusts an item's stock level.
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item, err := h.Service.Adjust(c.Param("id"), req.Quantity, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Inventory updated successfully", item)
}

// GetLowStockItems lists items at or below their minimum level.
func (h *InventoryHandler) GetLowStockItems(c *gin.Context) {
	items, err := h.Service.LowStock()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch low stock items: "+err.Error())
		return
	}
	utils.Success(c, "Low stock items fetched successfully", items)
}
