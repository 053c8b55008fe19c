// Package policy maps user roles to the actions they may perform.
package policy

import (
	"stayhub/internal/models"
)

// Action is an endpoint category gated by role.
type Action string

const (
	ActionManageBookings  Action = "manage_bookings"
	ActionManageReviews   Action = "manage_reviews"
	ActionManageFavorites Action = "manage_favorites"
	ActionManageImages    Action = "manage_property_images"
	ActionManageListings  Action = "manage_properties"
	ActionManageCities    Action = "manage_cities"
)

// table is the single source of truth for role permissions. An action
// missing for a role means deny. Evaluated once per request by the
// RequireAction middleware.
var table = map[models.Role]map[Action]bool{
	models.RoleGuest: {
		ActionManageBookings:  true,
		ActionManageReviews:   true,
		ActionManageFavorites: true,
	},
	models.RoleHost: {
		ActionManageImages:   true,
		ActionManageListings: true,
	},
	models.RoleAdmin: {
		ActionManageCities: true,
	},
}

// Allow reports whether a role may perform the given action.
func Allow(role models.Role, action Action) bool {
	perms, ok := table[role]
	if !ok {
		return false
	}
	return perms[action]
}

// Actions returns the actions granted to a role, for introspection endpoints.
func Actions(role models.Role) []Action {
	perms := table[role]
	out := make([]Action, 0, len(perms))
	for a, allowed := range perms {
		if allowed {
			out = append(out, a)
		}
	}
	return out
}
