package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/models"
	"github.com/vtech-solutions/garage-api/repository"
	"github.com/vtech-solutions/garage-api/services"
)

// How many times job creation retries a colliding tracking code
const trackingCodeAttempts = 3

// CreateJobSheetRequest represents the request body for opening a job
type CreateJobSheetRequest struct {
	ClientID    uint     `json:"client" binding:"required"`
	MechanicID  uint     `json:"mechanic" binding:"required"`
	DeviceModel string   `json:"deviceModel" binding:"required"`
	Fault       string   `json:"fault" binding:"required"`
	ServiceID   *uint    `json:"service"`
	ProductID   *uint    `json:"product"`
	Status      string   `json:"status" binding:"omitempty,oneof=Pending Processing Ready Delivered"`
	Remarks     string   `json:"remarks"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
}

// UpdateJobSheetRequest represents the request body for updating a job.
// Status accepts any value in the set regardless of the current one;
// changing the product association has no inventory side effects.
type UpdateJobSheetRequest struct {
	ClientID    *uint    `json:"client"`
	MechanicID  *uint    `json:"mechanic"`
	DeviceModel *string  `json:"deviceModel"`
	Fault       *string  `json:"fault"`
	ServiceID   *uint    `json:"service"`
	ProductID   *uint    `json:"product"`
	Status      *string  `json:"status" binding:"omitempty,oneof=Pending Processing Ready Delivered"`
	Remarks     *string  `json:"remarks"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
}

// CreateJobSheet handles POST /api/jobsheets - opens a new repair job.
// When a product is selected, one unit is taken from stock with a
// ledger remark naming the job's tracking code. That decrement is
// best-effort: a failure is logged for manual repair and the job
// stands.
func CreateJobSheet(c *gin.Context) {
	var req CreateJobSheetRequest
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

	db := config.GetDB()

	// Resolve required and optional references before writing anything
	if !referenceExists(c, db, &models.Client{}, req.ClientID, "CLIENT_NOT_FOUND", "Client not found") {
		return
	}
	if !referenceExists(c, db, &models.Mechanic{}, req.MechanicID, "MECHANIC_NOT_FOUND", "Mechanic not found") {
		return
	}
	if req.ServiceID != nil && !referenceExists(c, db, &models.Service{}, *req.ServiceID, "SERVICE_NOT_FOUND", "Service not found") {
		return
	}
	if req.ProductID != nil && !referenceExists(c, db, &models.Product{}, *req.ProductID, "PRODUCT_NOT_FOUND", "Product not found") {
		return
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusPending
	}
	var amount float64
	if req.Amount != nil {
		amount = *req.Amount
	}

	job := models.JobSheet{
		ClientID:    req.ClientID,
		MechanicID:  req.MechanicID,
		ServiceID:   req.ServiceID,
		ProductID:   req.ProductID,
		DeviceModel: req.DeviceModel,
		Fault:       req.Fault,
		Status:      status,
		Remarks:     req.Remarks,
		TotalAmount: amount,
	}

	// The tracking code column carries a unique index; a same-second
	// collision shows up as a duplicate-key error and gets a fresh code
	var err error
	for attempt := 0; attempt < trackingCodeAttempts; attempt++ {
		job.TrackingCode = services.NewTrackingCode()
		err = db.Create(&job).Error
		if err == nil || !repository.IsDuplicateKey(err) {
			break
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job sheet",
			},
		})
		return
	}

	if req.ProductID != nil {
		stockService := services.NewStockService(db)
		remarks := fmt.Sprintf("Consumed by job %s", job.TrackingCode)
		if _, err := stockService.Adjust(*req.ProductID, 1, models.StockOut, remarks); err != nil {
			// The job is already committed. Leave it in place and record
			// the inconsistency for manual repair.
			log.Printf("INCONSISTENCY: job %s created but stock decrement for product %d failed: %v",
				job.TrackingCode, *req.ProductID, err)
		}
	}

	if err := db.Preload("Client").Preload("Mechanic").Preload("Service").Preload("Product").
		First(&job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job sheet details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobSheets handles GET /api/jobsheets - lists all jobs
// newest-first with their references resolved for display. References
// whose target was deleted serialize as null.
func ListJobSheets(c *gin.Context) {
	db := config.GetDB()
	var jobs []models.JobSheet
	if err := db.Preload("Client").Preload("Mechanic").Preload("Service").Preload("Product").
		Order("created_at desc, id desc").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list job sheets",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJobSheet handles GET /api/jobsheets/:id - returns one job with
// references resolved (the printable view consumes this record)
func GetJobSheet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var job models.JobSheet
	if err := db.Preload("Client").Preload("Mechanic").Preload("Service").Preload("Product").
		First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job sheet not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job sheet",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJobSheet handles PUT /api/jobsheets/:id - replaces the named
// fields in place. No inventory side effects, even when the product
// association changes.
func UpdateJobSheet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateJobSheetRequest
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
	if req.ClientID != nil {
		fields["client_id"] = *req.ClientID
	}
	if req.MechanicID != nil {
		fields["mechanic_id"] = *req.MechanicID
	}
	if req.DeviceModel != nil {
		fields["device_model"] = *req.DeviceModel
	}
	if req.Fault != nil {
		fields["fault"] = *req.Fault
	}
	if req.ServiceID != nil {
		fields["service_id"] = *req.ServiceID
	}
	if req.ProductID != nil {
		fields["product_id"] = *req.ProductID
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}
	if req.Amount != nil {
		fields["total_amount"] = *req.Amount
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

	repo := repository.New[models.JobSheet](config.GetDB(), "created_at desc")
	if err := repo.Update(id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job sheet not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update job sheet",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job sheet updated successfully",
	})
}

// DeleteJobSheet handles DELETE /api/jobsheets/:id - removes the job.
// A stock decrement applied at creation is never reversed.
func DeleteJobSheet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	repo := repository.New[models.JobSheet](config.GetDB(), "created_at desc")
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job sheet not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete job sheet",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job sheet deleted successfully",
	})
}

// referenceExists checks that the referenced record exists, writing
// the 404 response itself when it does not
func referenceExists(c *gin.Context, db *gorm.DB, model interface{}, id uint, code, message string) bool {
	if err := db.First(model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": message,
				},
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to resolve references",
			},
		})
		return false
	}
	return true
}
