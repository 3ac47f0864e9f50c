package utils

// IsValidYear bounds a model year to something plausible for a fleet asset.
func IsValidYear(year int) bool {
	return year >= 1900 && year <= 2100
}
