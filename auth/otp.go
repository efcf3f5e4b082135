package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/models"
	"globetrotter/rdx"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func GenerateOTP(length int) string {
	return utils.GenerateRandomDigitString(length)
}

// Signup starts the OTP flow: the account payload is parked on the OTP
// record and the user document is only created once the code comes
// back. Re-signup with the same email replaces the pending code and
// resets its expiry.
func Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.ValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists with this email")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("signup: bcrypt error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	code := GenerateOTP(6)

	// one pending OTP per email: latest code wins, expiry restarts
	_, err = db.OTPCollection.UpdateOne(ctx,
		bson.M{"email": input.Email},
		bson.M{"$set": bson.M{
			"code": code,
			"tempUserData": models.TempUser{
				Name:     input.Name,
				Password: string(hashed),
			},
			"createdAt": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("signup: otp upsert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start verification")
		return
	}

	if err := sendOTPEmail(input.Email, code); err != nil {
		log.Printf("signup: failed to send OTP email: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "OTP sent to email. Please verify to complete registration.",
	})
}

// VerifyOTP finishes signup: matches the pending code, creates the
// user from the parked payload, and burns the OTP record.
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var record models.OTP
	err := db.OTPCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&record)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "OTP expired or not found. Please signup again.")
		return
	}

	if record.Code != input.OTP {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid OTP")
		return
	}

	user := models.User{
		UserID:      "u" + utils.GenerateRandomString(10),
		Name:        record.TempUserData.Name,
		Email:       record.Email,
		Password:    record.TempUserData.Password,
		Preferences: models.Preferences{Language: "en", Currency: "USD"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "User already exists with this email")
			return
		}
		log.Printf("verify-otp: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if _, err := db.OTPCollection.DeleteOne(ctx, bson.M{"email": record.Email}); err != nil {
		log.Printf("verify-otp: otp cleanup error: %v", err)
	}

	if err := rdx.RdxSet("users:"+user.UserID, user.Name); err != nil {
		log.Printf("verify-otp: redis cache failed: %v", err)
	}

	if err := sendWelcomeEmail(user.Email, user.Name); err != nil {
		log.Printf("verify-otp: welcome email failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Verification successful",
		"userid":  user.UserID,
	})
}
