package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleettrack-api/services"
	"fleettrack-api/utils"
)

type FuelLogController struct {
	records *services.RecordService
}

func NewFuelLogController(records *services.RecordService) *FuelLogController {
	return &FuelLogController{records: records}
}

type CreateFuelLogRequest struct {
	Date      string  `json:"date"`
	LastOd    int     `json:"last_od"`
	CurrOd    int     `json:"curr_od"`
	Gallons   float64 `json:"gallons"`
	TotalCost float64 `json:"total_cost"`
}

func (fc *FuelLogController) ListFuelLogs(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	entries, err := fc.records.ListFuelLogs(vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fuel_logs": entries})
}

func (fc *FuelLogController) CreateFuelLog(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	var req CreateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.AddFuelLogInput{
		LastOd:    req.LastOd,
		CurrOd:    req.CurrOd,
		Gallons:   req.Gallons,
		TotalCost: req.TotalCost,
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.SendValidationError(c, "date must be YYYY-MM-DD")
			return
		}
		in.Date = &date
	}

	entry, err := fc.records.AddFuelLog(vehicleID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
