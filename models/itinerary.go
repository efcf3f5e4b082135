package models

import "time"

const (
	ItemTypeActivity  = "activity"
	ItemTypeTransport = "transport"
	ItemTypeStay      = "stay"
	ItemTypeFood      = "food"
	ItemTypeVisiting  = "visiting"
)

const (
	ItemStatusPlanned = "planned"
	ItemStatusBooked  = "booked"
	ItemStatusDone    = "done"
)

var ItemTypes = map[string]bool{
	ItemTypeActivity:  true,
	ItemTypeTransport: true,
	ItemTypeStay:      true,
	ItemTypeFood:      true,
	ItemTypeVisiting:  true,
}

var ItemStatuses = map[string]bool{
	ItemStatusPlanned: true,
	ItemStatusBooked:  true,
	ItemStatusDone:    true,
}

// ItineraryItem is one scheduled entry on a specific day of a trip.
// Day is 1-based relative to the trip's start date.
type ItineraryItem struct {
	ItemID      string   `json:"itemid" bson:"itemid"`
	TripID      string   `json:"tripId" bson:"tripId"`
	Day         int      `json:"day" bson:"day"`
	Type        string   `json:"type" bson:"type"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Location    Location `json:"location,omitempty" bson:"location,omitempty"`
	StartTime   string   `json:"startTime,omitempty" bson:"startTime,omitempty"` // "14:00"
	EndTime     string   `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Cost        float64  `json:"cost" bson:"cost"`
	Currency    string   `json:"currency" bson:"currency"`
	Status      string   `json:"status" bson:"status"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

type Location struct {
	Name        string      `json:"name,omitempty" bson:"name,omitempty"`
	Address     string      `json:"address,omitempty" bson:"address,omitempty"`
	Coordinates Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}
