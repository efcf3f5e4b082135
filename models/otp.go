package models

import "time"

// OTP is a pending signup: the account payload is held here until the
// emailed code is confirmed. At most one record exists per email
// (upsert semantics); a TTL index on createdAt expires it after five
// minutes.
type OTP struct {
	Email        string    `json:"email" bson:"email"`
	Code         string    `json:"-" bson:"code"`
	TempUserData TempUser  `json:"-" bson:"tempUserData"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
}

// TempUser holds the signup payload. Password is already bcrypt-hashed.
type TempUser struct {
	Name     string `bson:"name"`
	Password string `bson:"password"`
}
