package trips

import (
	"context"
	"log"
	"net/http"
	"time"

	"globetrotter/access"
	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// PUT /api/trips/:id/cover — multipart upload of the cover image,
// owner only. Stores the original plus a thumbnail under static/coverpic.
func UploadCover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if !access.CanManageTrip(access.ResolveRole(userID, trip)) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the owner can change the cover")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Cover image is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	filename, _, err := utils.SaveImageWithThumb(file, header, "static/coverpic", 600)
	if err != nil {
		log.Printf("cover upload: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	coverURL := "/static/coverpic/" + filename
	_, err = db.TripsCollection.UpdateOne(ctx,
		bson.M{"tripid": tripID},
		bson.M{"$set": bson.M{"coverImage": coverURL, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":    "Cover updated",
		"coverImage": coverURL,
	})
}
