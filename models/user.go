package models

import "time"

type User struct {
	UserID      string      `json:"userid" bson:"userid"`
	Name        string      `json:"name" bson:"name"`
	Email       string      `json:"email" bson:"email"`
	Password    string      `json:"-" bson:"password"`
	Image       string      `json:"image,omitempty" bson:"image,omitempty"`
	Thumb       string      `json:"thumb,omitempty" bson:"thumb,omitempty"`
	Preferences Preferences `json:"preferences" bson:"preferences"`

	ResetPasswordToken  string    `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire time.Time `json:"-" bson:"resetPasswordExpire,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

type Preferences struct {
	Language string `json:"language" bson:"language"`
	Currency string `json:"currency" bson:"currency"`
}

// UserSummary is the public shape embedded in trip and chat responses.
type UserSummary struct {
	UserID string `json:"userid" bson:"userid"`
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
	Image  string `json:"image,omitempty" bson:"image,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email, Image: u.Image}
}
