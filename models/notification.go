package models

import "time"

const NotificationKick = "kick"

type Notification struct {
	NotifID   string    `json:"notifid" bson:"notifid"`
	UserID    string    `json:"userId" bson:"userId"`
	Type      string    `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	IsRead    bool      `json:"isRead" bson:"isRead"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}
