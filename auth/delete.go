package auth

import (
	"context"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/rdx"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeleteAccount removes the user and everything hanging off them:
// owned trips with their itinerary items and messages, membership in
// other people's trips, notifications, and cached session state.
func DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	// collect owned trip ids first so items and messages can follow
	cursor, err := db.TripsCollection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"tripid": 1}))
	if err != nil {
		log.Printf("delete-account: trip lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	var owned []struct {
		TripID string `bson:"tripid"`
	}
	if err := cursor.All(ctx, &owned); err != nil {
		log.Printf("delete-account: trip decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	tripIDs := make([]string, 0, len(owned))
	for _, t := range owned {
		tripIDs = append(tripIDs, t.TripID)
	}

	if len(tripIDs) > 0 {
		if _, err := db.ItineraryCollection.DeleteMany(ctx, bson.M{"tripId": bson.M{"$in": tripIDs}}); err != nil {
			log.Printf("delete-account: itinerary cleanup error: %v", err)
		}
		if _, err := db.MessagesCollection.DeleteMany(ctx, bson.M{"tripId": bson.M{"$in": tripIDs}}); err != nil {
			log.Printf("delete-account: message cleanup error: %v", err)
		}
		if _, err := db.TripsCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
			log.Printf("delete-account: trip cleanup error: %v", err)
		}
	}

	// pull membership from everyone else's trips, both shapes
	if _, err := db.TripsCollection.UpdateMany(ctx,
		bson.M{"collaborators.userId": userID},
		bson.M{"$pull": bson.M{"collaborators": bson.M{"userId": userID}}},
	); err != nil {
		log.Printf("delete-account: collaborator pull error: %v", err)
	}
	if _, err := db.TripsCollection.UpdateMany(ctx,
		bson.M{"collaborators": userID},
		bson.M{"$pull": bson.M{"collaborators": userID}},
	); err != nil {
		log.Printf("delete-account: legacy collaborator pull error: %v", err)
	}

	if _, err := db.NotificationsCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Printf("delete-account: notification cleanup error: %v", err)
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID}); err != nil {
		log.Printf("delete-account: user delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := rdx.RdxDel("users:" + userID); err != nil {
		log.Printf("delete-account: redis cleanup failed: %v", err)
	}
	if _, err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("delete-account: redis token cleanup failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Account deleted successfully"})
}
