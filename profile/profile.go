package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/rdx"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/profile
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// PUT /api/profile — name and preferences only; email and password have
// their own flows.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name        *string             `json:"name"`
		Preferences *models.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > 60 {
			utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 60 characters")
			return
		}
		set["name"] = *input.Name
	}
	if input.Preferences != nil {
		set["preferences"] = *input.Preferences
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating profile")
		return
	}
	rdx.RdxDel("users:" + userID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Profile updated"})
}

// POST /api/profile/picture — multipart avatar upload, stored with a
// thumbnail under static/userpic.
func UploadProfilePicture(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar image is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	filename, thumbName, err := utils.SaveImageWithThumb(file, header, "static/userpic", 128)
	if err != nil {
		log.Printf("avatar upload: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	image := "/static/userpic/" + filename
	thumb := "/static/userpic/thumb/" + thumbName

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"image": image, "thumb": thumb, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating profile")
		return
	}
	rdx.RdxDel("users:" + userID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Profile picture updated",
		"image":   image,
		"thumb":   thumb,
	})
}
