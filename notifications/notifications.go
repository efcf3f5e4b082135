// Package notifications serves the per-user notification feed. Entries
// are written by other packages (for example when a member is removed
// from a trip) and only listed and acknowledged here.
package notifications

import (
	"context"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/notifications — newest first, own notifications only.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := db.NotificationsCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Printf("notifications find: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching notifications")
		return
	}
	defer cursor.Close(ctx)

	var notifs []models.Notification
	if err := cursor.All(ctx, &notifs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching notifications")
		return
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"notifications": notifs})
}

// PUT /api/notifications/:notifid/read — the userId filter keeps users
// from acknowledging someone else's notification.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	notifID := ps.ByName("notifid")

	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notifid": notifID, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Notification marked as read"})
}
