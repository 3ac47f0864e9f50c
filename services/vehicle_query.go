package services

import (
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"fleettrack-api/models"
)

// PageSize is the fixed page size for vehicle listings.
const PageSize = 10

// VehiclePage is one window of the filtered, ordered vehicle list. The
// search term is echoed back unchanged for UI round-tripping.
type VehiclePage struct {
	Vehicles   []models.Vehicle `json:"vehicles"`
	Page       int              `json:"page"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
	Search     string           `json:"search"`
}

type VehicleQuery struct {
	db *gorm.DB
}

func NewVehicleQuery(db *gorm.DB) *VehicleQuery {
	return &VehicleQuery{db: db}
}

// Search returns the requested page of vehicles. The term is matched
// case-insensitively as a substring against make, model and unit_no; a hit
// on any of the three qualifies. Page numbers below 1 are treated as 1 and
// out-of-range pages come back empty rather than erroring.
func (q *VehicleQuery) Search(term string, page int) (*VehiclePage, error) {
	if page < 1 {
		page = 1
	}

	query := q.db.Model(&models.Vehicle{})
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(unit_no) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var vehicles []models.Vehicle
	if err := query.Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}

	sortByUnitNo(vehicles)

	total := int64(len(vehicles))
	totalPages := int((total + PageSize - 1) / PageSize)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(vehicles) {
		start = len(vehicles)
	}
	if end > len(vehicles) {
		end = len(vehicles)
	}

	return &VehiclePage{
		Vehicles:   vehicles[start:end],
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
		Search:     term,
	}, nil
}

// sortByUnitNo orders numerically by unit number when one is present;
// vehicles with a missing or non-numeric unit number sort after the numeric
// ones. The input arrives ordered by id, and the sort is stable, so repeated
// calls over unchanged data produce identical pages.
func sortByUnitNo(vehicles []models.Vehicle) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		ni, okI := parseUnitNo(vehicles[i].UnitNo)
		nj, okJ := parseUnitNo(vehicles[j].UnitNo)
		if okI && okJ {
			return ni < nj
		}
		return okI && !okJ
	})
}

func parseUnitNo(unitNo string) (int, bool) {
	if unitNo == "" {
		return 0, false
	}
	n, err := strconv.Atoi(unitNo)
	if err != nil {
		return 0, false
	}
	return n, true
}
