package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleettrack-api/services"
	"fleettrack-api/utils"
)

type WorkOrderController struct {
	records *services.RecordService
}

func NewWorkOrderController(records *services.RecordService) *WorkOrderController {
	return &WorkOrderController{records: records}
}

func (wc *WorkOrderController) ListWorkOrders(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	orders, err := wc.records.ListWorkOrders(vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_orders": orders})
}

func (wc *WorkOrderController) CreateWorkOrder(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		return
	}

	in := services.AddWorkOrderInput{
		Description: c.PostForm("description"),
	}

	if v, present := c.GetPostForm("date"); present && v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.SendValidationError(c, "date must be YYYY-MM-DD")
			return
		}
		in.Date = &date
	}

	attachment, closeAttachment, ok := formUpload(c, "attachment")
	if !ok {
		return
	}
	defer closeAttachment()
	in.Attachment = attachment

	order, err := wc.records.AddWorkOrder(vehicleID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}
