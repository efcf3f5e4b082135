// Package access decides what a user may do with a trip. Every
// trip-scoped handler resolves a role here before touching the store.
package access

import "globetrotter/models"

type Role string

const (
	RoleOwner   Role = "owner"
	RolePlanner Role = "planner"
	RoleVisitor Role = "visitor"
	RoleNone    Role = "none"
)

// ResolveRole classifies userID against trip. Exactly one role holds:
// the owner is never also a collaborator, and unknown collaborator
// roles degrade to visitor.
func ResolveRole(userID string, trip *models.Trip) Role {
	if userID == "" {
		return RoleNone
	}
	if trip.UserID == userID {
		return RoleOwner
	}
	if c, ok := trip.Collaborator(userID); ok {
		if c.Role == models.RolePlanner {
			return RolePlanner
		}
		return RoleVisitor
	}
	return RoleNone
}

// CanRead covers trip details, itinerary listing, budget and export.
// Anonymous reads are allowed only on public trips.
func CanRead(role Role, trip *models.Trip) bool {
	if trip.Visibility == models.VisibilityPublic {
		return true
	}
	return role == RoleOwner || role == RolePlanner || role == RoleVisitor
}

// CanEditItinerary covers item create/update/delete.
func CanEditItinerary(role Role) bool {
	return role == RoleOwner || role == RolePlanner
}

// CanInvite: owners invite with any role, planners may bring in
// visitors but cannot grant planner.
func CanInvite(role Role, grantRole string) bool {
	switch role {
	case RoleOwner:
		return true
	case RolePlanner:
		return grantRole == models.RoleVisitor
	}
	return false
}

// CanManageMembers covers removing someone other than yourself.
func CanManageMembers(role Role) bool {
	return role == RoleOwner
}

// CanManageTrip covers settings changes (visibility, dates, title)
// and trip deletion.
func CanManageTrip(role Role) bool {
	return role == RoleOwner
}

// CanChat: chat is for members only; public visibility grants reading
// the trip, not its conversation.
func CanChat(role Role) bool {
	return role == RoleOwner || role == RolePlanner || role == RoleVisitor
}
