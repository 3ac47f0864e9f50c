package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleettrack-api/services"
	"fleettrack-api/utils"
)

type MaintenanceController struct {
	records *services.RecordService
}

func NewMaintenanceController(records *services.RecordService) *MaintenanceController {
	return &MaintenanceController{records: records}
}

type CreateMaintenanceLogRequest struct {
	ServiceDate string  `json:"service_date"`
	ServiceType string  `json:"service_type" binding:"required"`
	Notes       string  `json:"notes"`
	Cost        float64 `json:"cost"`
}

func (mc *MaintenanceController) ListMaintenanceLogs(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	entries, err := mc.records.ListMaintenanceLogs(vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"maintenance_logs": entries})
}

func (mc *MaintenanceController) CreateMaintenanceLog(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	var req CreateMaintenanceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.AddMaintenanceLogInput{
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		Cost:        req.Cost,
	}

	if req.ServiceDate != "" {
		date, err := time.Parse("2006-01-02", req.ServiceDate)
		if err != nil {
			utils.SendValidationError(c, "service_date must be YYYY-MM-DD")
			return
		}
		in.ServiceDate = &date
	}

	entry, err := mc.records.AddMaintenanceLog(vehicleID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
