package models

import "time"

// Message is a single trip-chat entry. Messages are immutable once
// created and listed ascending by creation time.
type Message struct {
	MessageID string      `json:"msgid" bson:"msgid"`
	TripID    string      `json:"tripId" bson:"tripId"`
	UserID    string      `json:"userId" bson:"userId"`
	Content   string      `json:"content" bson:"content"`
	Sender    UserSummary `json:"sender" bson:"sender"`
	CreatedAt time.Time   `json:"created_at" bson:"createdAt"`
}
