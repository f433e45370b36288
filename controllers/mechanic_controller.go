package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/models"
	"github.com/vtech-solutions/garage-api/repository"
)

// CreateMechanicRequest represents the request body for creating a mechanic
type CreateMechanicRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateMechanicRequest represents the request body for updating a mechanic
type UpdateMechanicRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Status  *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func mechanicRepo() *repository.Repository[models.Mechanic] {
	return repository.New[models.Mechanic](config.GetDB(), "name asc")
}

// ListMechanics handles GET /api/mechanics - lists all mechanics sorted by name
func ListMechanics(c *gin.Context) {
	mechanics, err := mechanicRepo().List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list mechanics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    mechanics,
	})
}

// CreateMechanic handles POST /api/mechanics - creates a new mechanic
func CreateMechanic(c *gin.Context) {
	var req CreateMechanicRequest
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

	status := req.Status
	if status == "" {
		status = "active"
	}

	mechanic := models.Mechanic{
		Name:    req.Name,
		Contact: req.Contact,
		Email:   req.Email,
		Status:  status,
	}

	if err := mechanicRepo().Create(&mechanic); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create mechanic",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    mechanic,
	})
}

// UpdateMechanic handles PUT /api/mechanics/:id - updates the named fields
func UpdateMechanic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateMechanicRequest
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

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Contact != nil {
		fields["contact"] = *req.Contact
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No fields to update",
			},
		})
		return
	}

	if err := mechanicRepo().Update(id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MECHANIC_NOT_FOUND",
					"message": "Mechanic not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update mechanic",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mechanic updated successfully",
	})
}

// DeleteMechanic handles DELETE /api/mechanics/:id - removes the mechanic
func DeleteMechanic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := mechanicRepo().Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MECHANIC_NOT_FOUND",
					"message": "Mechanic not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete mechanic",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mechanic deleted successfully",
	})
}
