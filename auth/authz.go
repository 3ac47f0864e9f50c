package auth

import (
	"fleettrack-api/models"
)

// Action is one of the CRUD capabilities checked before a handler runs.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Allowed is the single capability check consumed by every mutating entry
// point. Reads are open to all authenticated roles, creates and updates to
// admins and technicians, deletes to admins only.
func Allowed(role string, action Action) bool {
	switch action {
	case ActionRead:
		return models.ValidRole(role)
	case ActionCreate, ActionUpdate:
		return role == models.RoleAdmin || role == models.RoleTechnician
	case ActionDelete:
		return role == models.RoleAdmin
	}
	return false
}
