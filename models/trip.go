package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

const (
	RolePlanner = "planner"
	RoleVisitor = "visitor"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

type Trip struct {
	TripID      string    `json:"tripid" bson:"tripid"`
	UserID      string    `json:"userId" bson:"userId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   time.Time `json:"startDate" bson:"startDate"`
	EndDate     time.Time `json:"endDate" bson:"endDate"`
	CoverImage  string    `json:"coverImage" bson:"coverImage"`
	Visibility  string    `json:"visibility" bson:"visibility"`
	Budget      float64   `json:"budget" bson:"budget"`

	Collaborators []Collaborator `json:"collaborators" bson:"collaborators"`
	Destinations  []Destination  `json:"destinations,omitempty" bson:"destinations,omitempty"`

	// Rev guards collaborator-list edits against concurrent clobbering:
	// invite/kick update with a filter on the old value and $inc it.
	Rev int64 `json:"-" bson:"rev"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

type Destination struct {
	City          string    `json:"city" bson:"city"`
	Country       string    `json:"country" bson:"country"`
	ArrivalDate   time.Time `json:"arrivalDate,omitempty" bson:"arrivalDate,omitempty"`
	DepartureDate time.Time `json:"departureDate,omitempty" bson:"departureDate,omitempty"`
}

// Collaborator is stored as {userId, role}. Trips created before roles
// existed hold bare user-ID strings instead; both shapes decode here,
// legacy entries defaulting to visitor, so handlers only ever see the
// new form.
type Collaborator struct {
	UserID string `json:"userId" bson:"userId"`
	Role   string `json:"role" bson:"role"`
}

func (c *Collaborator) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	if s, ok := rv.StringValueOK(); ok {
		c.UserID = s
		c.Role = RoleVisitor
		return nil
	}

	var aux struct {
		UserID string `bson:"userId"`
		Role   string `bson:"role"`
	}
	if err := rv.Unmarshal(&aux); err != nil {
		return fmt.Errorf("collaborator decode: %w", err)
	}
	c.UserID = aux.UserID
	c.Role = aux.Role
	if c.Role == "" {
		c.Role = RoleVisitor
	}
	return nil
}

// Collaborator returns the entry for userID, if any.
func (t *Trip) Collaborator(userID string) (Collaborator, bool) {
	for _, c := range t.Collaborators {
		if c.UserID == userID {
			return c, true
		}
	}
	return Collaborator{}, false
}
