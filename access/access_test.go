package access

import (
	"testing"

	"globetrotter/models"
)

func testTrip() *models.Trip {
	return &models.Trip{
		TripID:     "t1",
		UserID:     "owner1",
		Visibility: models.VisibilityPrivate,
		Collaborators: []models.Collaborator{
			{UserID: "planner1", Role: models.RolePlanner},
			{UserID: "visitor1", Role: models.RoleVisitor},
			{UserID: "legacy1", Role: ""},
		},
	}
}

func TestResolveRole(t *testing.T) {
	trip := testTrip()

	cases := []struct {
		userID string
		want   Role
	}{
		{"owner1", RoleOwner},
		{"planner1", RolePlanner},
		{"visitor1", RoleVisitor},
		{"legacy1", RoleVisitor}, // missing role degrades to visitor
		{"stranger", RoleNone},
		{"", RoleNone},
	}

	for _, c := range cases {
		if got := ResolveRole(c.userID, trip); got != c.want {
			t.Errorf("ResolveRole(%q) = %v, want %v", c.userID, got, c.want)
		}
	}
}

func TestCanRead(t *testing.T) {
	trip := testTrip()

	if CanRead(RoleNone, trip) {
		t.Error("stranger should not read a private trip")
	}
	for _, r := range []Role{RoleOwner, RolePlanner, RoleVisitor} {
		if !CanRead(r, trip) {
			t.Errorf("%v should read a private trip", r)
		}
	}

	trip.Visibility = models.VisibilityPublic
	if !CanRead(RoleNone, trip) {
		t.Error("anonymous read of a public trip should be allowed")
	}
}

func TestCapabilities(t *testing.T) {
	if !CanEditItinerary(RoleOwner) || !CanEditItinerary(RolePlanner) {
		t.Error("owner and planner must edit the itinerary")
	}
	if CanEditItinerary(RoleVisitor) || CanEditItinerary(RoleNone) {
		t.Error("visitor and stranger must not edit the itinerary")
	}

	if !CanInvite(RoleOwner, models.RolePlanner) {
		t.Error("owner invites planners")
	}
	if CanInvite(RolePlanner, models.RolePlanner) {
		t.Error("planner must not grant planner")
	}
	if !CanInvite(RolePlanner, models.RoleVisitor) {
		t.Error("planner invites visitors")
	}
	if CanInvite(RoleVisitor, models.RoleVisitor) {
		t.Error("visitor must not invite")
	}

	if !CanManageMembers(RoleOwner) || CanManageMembers(RolePlanner) {
		t.Error("only the owner kicks members")
	}
	if !CanManageTrip(RoleOwner) || CanManageTrip(RolePlanner) {
		t.Error("only the owner changes trip settings")
	}
	if CanChat(RoleNone) || !CanChat(RoleVisitor) {
		t.Error("chat is members-only")
	}
}
