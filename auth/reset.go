package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetCodeTTL = 10 * time.Minute

// ForgotPassword stores a short-lived reset code on the user document
// and emails it. The response is identical whether or not the account
// exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "If that email exists, a code has been sent."})
		return
	}

	code := GenerateOTP(6)

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"resetPasswordToken":  code,
			"resetPasswordExpire": time.Now().Add(resetCodeTTL),
		}},
	)
	if err != nil {
		log.Printf("forgot-password: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := sendResetEmail(user.Email, code); err != nil {
		log.Printf("forgot-password: email failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "If that email exists, a code has been sent."})
}

// ResetPassword checks the emailed code and its expiry, then rehashes.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Email == "" || input.Code == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Request")
		return
	}
	if len(input.NewPassword) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil || user.ResetPasswordToken == "" || user.ResetPasswordToken != input.Code {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid code")
		return
	}
	if time.Now().After(user.ResetPasswordExpire) {
		utils.RespondWithError(w, http.StatusBadRequest, "Code expired")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"password": string(hashed), "updatedAt": time.Now()},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
		},
	)
	if err != nil {
		log.Printf("reset-password: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Password updated successfully"})
}

// ChangePassword is the authenticated variant: the current password
// must check out before the new one is stored.
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.CurrentPassword == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}
	if len(input.NewPassword) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Incorrect current password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"password": string(hashed), "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("change-password: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Password changed successfully"})
}
