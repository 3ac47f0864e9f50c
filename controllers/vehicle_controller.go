package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleettrack-api/apperrors"
	"fleettrack-api/models"
	"fleettrack-api/schema"
	"fleettrack-api/services"
	"fleettrack-api/utils"
)

// Form fields that map to fixed vehicle columns. Everything else in the
// multipart form is treated as a dynamic attribute, known to the schema
// loader or not.
var fixedVehicleFields = map[string]bool{
	"vin":     true,
	"unit_no": true,
	"make":    true,
	"model":   true,
	"year":    true,
	"miles":   true,
	"hours":   true,
	"photo":   true,
	"invoice": true,
}

type VehicleController struct {
	vehicles *services.VehicleService
	query    *services.VehicleQuery
	fields   *schema.VehicleFields
}

func NewVehicleController(vehicles *services.VehicleService, query *services.VehicleQuery, fields *schema.VehicleFields) *VehicleController {
	return &VehicleController{vehicles: vehicles, query: query, fields: fields}
}

func (vc *VehicleController) ListVehicles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	search := c.Query("search")

	result, err := vc.query.Search(search, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	vehicle, err := vc.vehicles.GetVehicle(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	year, ok := formInt(c, "year", true)
	if !ok {
		return
	}
	if !utils.IsValidYear(year) {
		utils.SendValidationError(c, "year is out of range")
		return
	}
	miles, ok := formInt(c, "miles", false)
	if !ok {
		return
	}
	hours, ok := formInt(c, "hours", false)
	if !ok {
		return
	}

	in := services.CreateVehicleInput{
		VIN:        c.PostForm("vin"),
		UnitNo:     c.PostForm("unit_no"),
		Make:       c.PostForm("make"),
		Model:      c.PostForm("model"),
		Year:       year,
		Miles:      miles,
		Hours:      hours,
		Attributes: dynamicAttributes(c),
	}

	photo, closePhoto, ok := formUpload(c, "photo")
	if !ok {
		return
	}
	defer closePhoto()
	invoice, closeInvoice, ok := formUpload(c, "invoice")
	if !ok {
		return
	}
	defer closeInvoice()
	in.Photo = photo
	in.Invoice = invoice

	vehicle, err := vc.vehicles.CreateVehicle(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var in services.UpdateVehicleInput
	if v, present := c.GetPostForm("vin"); present {
		in.VIN = &v
	}
	if v, present := c.GetPostForm("unit_no"); present {
		in.UnitNo = &v
	}
	if v, present := c.GetPostForm("make"); present {
		in.Make = &v
	}
	if v, present := c.GetPostForm("model"); present {
		in.Model = &v
	}
	if v, present := c.GetPostForm("year"); present {
		year, err := strconv.Atoi(v)
		if err != nil || !utils.IsValidYear(year) {
			utils.SendValidationError(c, "year must be a valid integer")
			return
		}
		in.Year = &year
	}
	if v, present := c.GetPostForm("miles"); present {
		miles, err := strconv.Atoi(v)
		if err != nil {
			utils.SendValidationError(c, "miles must be an integer")
			return
		}
		in.Miles = &miles
	}
	if v, present := c.GetPostForm("hours"); present {
		hours, err := strconv.Atoi(v)
		if err != nil {
			utils.SendValidationError(c, "hours must be an integer")
			return
		}
		in.Hours = &hours
	}
	in.Attributes = dynamicAttributes(c)

	photo, closePhoto, ok := formUpload(c, "photo")
	if !ok {
		return
	}
	defer closePhoto()
	invoice, closeInvoice, ok := formUpload(c, "invoice")
	if !ok {
		return
	}
	defer closeInvoice()
	in.Photo = photo
	in.Invoice = invoice

	vehicle, err := vc.vehicles.UpdateVehicle(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := vc.vehicles.DeleteVehicle(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Vehicle deleted successfully", nil)
}

// GetSchemaFields exposes the schema loader's ordered field list so the
// front end can render the dynamic part of the vehicle form.
func (vc *VehicleController) GetSchemaFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": vc.fields.Fields()})
}

// dynamicAttributes collects every form value that is not a fixed column.
// Unknown keys are kept for forward compatibility with evolving imports.
func dynamicAttributes(c *gin.Context) models.AttributeMap {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	var attrs models.AttributeMap
	for key, values := range form.Value {
		if fixedVehicleFields[key] || len(values) == 0 {
			continue
		}
		if attrs == nil {
			attrs = models.AttributeMap{}
		}
		attrs[key] = values[0]
	}
	return attrs
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "id must be a positive integer")
		return 0, err
	}
	return uint(id), nil
}

// formInt reads an integer form field. Missing optional fields default to 0.
func formInt(c *gin.Context, field string, required bool) (int, bool) {
	v, present := c.GetPostForm(field)
	if !present || v == "" {
		if required {
			utils.SendValidationError(c, field+" is required")
			return 0, false
		}
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.SendValidationError(c, field+" must be an integer")
		return 0, false
	}
	return n, true
}

// formUpload opens an optional file part. The returned closer is a no-op
// when the part is absent.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, true
		}
		utils.SendValidationError(c, "could not read "+field+" upload")
		return nil, func() {}, false
	}

	f, err := fh.Open()
	if err != nil {
		utils.SendValidationError(c, "could not open "+field+" upload")
		return nil, func() {}, false
	}
	return &services.Upload{Filename: fh.Filename, Content: f}, func() { f.Close() }, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, apperrors.ErrDuplicateVIN):
		utils.SendError(c, http.StatusConflict, "A vehicle with this VIN already exists")
	case errors.Is(err, apperrors.ErrValidation):
		utils.SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrBadExtension):
		utils.SendError(c, http.StatusBadRequest, "File type not allowed (png, jpg, jpeg, gif, pdf)")
	case errors.Is(err, apperrors.ErrUnsafeName):
		utils.SendError(c, http.StatusBadRequest, "Unsafe filename")
	default:
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
