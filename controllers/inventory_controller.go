package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/services"
)

// UpdateStockRequest represents the request body for a stock movement
type UpdateStockRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Direction string `json:"direction" binding:"required,oneof=IN OUT"`
	Remarks   string `json:"remarks"`
}

// UpdateStock handles POST /api/inventory/update-stock - applies a
// stock movement and returns the new level
func UpdateStock(c *gin.Context) {
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	stockService := services.NewStockService(config.GetDB())
	level, err := stockService.Adjust(req.ProductID, req.Quantity, req.Direction, req.Remarks)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update stock",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product_id":    req.ProductID,
			"current_stock": level,
		},
	})
}

// ListStockLogs handles GET /api/inventory/logs - returns the stock
// ledger newest-first for the dashboard's stock-history table
func ListStockLogs(c *gin.Context) {
	stockService := services.NewStockService(config.GetDB())
	logs, err := stockService.Logs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list stock logs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
	})
}
