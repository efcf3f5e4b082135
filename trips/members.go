package trips

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"globetrotter/access"
	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/mq"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collaborator-list writes go through a compare-and-swap on the trip's
// rev counter so concurrent invites and kicks cannot clobber each
// other. On a lost race the handler reloads and revalidates.
const casAttempts = 3

var errRevConflict = errors.New("trip revision changed")

// saveCollaborators writes the full normalized list, which also
// migrates any legacy bare-ID entries to the {userId, role} shape.
func saveCollaborators(ctx context.Context, trip *models.Trip, collabs []models.Collaborator) error {
	res, err := db.TripsCollection.UpdateOne(ctx,
		bson.M{"tripid": trip.TripID, "rev": trip.Rev},
		bson.M{
			"$set": bson.M{"collaborators": collabs, "updatedAt": time.Now()},
			"$inc": bson.M{"rev": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errRevConflict
	}
	return nil
}

// POST /api/trips/:id/invite
func InviteCollaborator(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if input.Role == "" {
		input.Role = models.RoleVisitor
	}
	if input.Role != models.RolePlanner && input.Role != models.RoleVisitor {
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be planner or visitor")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var target models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&target)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found. They must sign up first.")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		trip, err := loadTrip(ctx, tripID)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
			return
		}

		callerRole := access.ResolveRole(userID, trip)
		if !access.CanInvite(callerRole, input.Role) {
			utils.RespondWithError(w, http.StatusForbidden, "You cannot invite with that role")
			return
		}
		if target.UserID == trip.UserID {
			utils.RespondWithError(w, http.StatusBadRequest, "You are the owner!")
			return
		}
		if _, ok := trip.Collaborator(target.UserID); ok {
			utils.RespondWithError(w, http.StatusConflict, "User is already a collaborator")
			return
		}

		collabs := append(trip.Collaborators, models.Collaborator{
			UserID: target.UserID,
			Role:   input.Role,
		})

		err = saveCollaborators(ctx, trip, collabs)
		if err == errRevConflict {
			continue
		}
		if err != nil {
			log.Printf("invite: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Server Error")
			return
		}

		mq.Emit(ctx, "member-invited", models.Index{
			EntityType: "trip", Method: "POST", EntityId: tripID,
			ItemId: target.UserID, ItemType: input.Role, UserID: userID,
		})

		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"message": "Collaborator added as " + input.Role + "!",
			"user":    utils.M{"name": target.Name},
		})
		return
	}

	utils.RespondWithError(w, http.StatusConflict, "Trip was modified concurrently, please retry")
}

// DELETE /api/trips/:id/members/:userid — self-leave, or owner kick.
// A kick leaves a notification behind for the removed member.
func RemoveMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	memberID := ps.ByName("userid")
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	isSelf := memberID == userID

	for attempt := 0; attempt < casAttempts; attempt++ {
		trip, err := loadTrip(ctx, tripID)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
			return
		}

		if !isSelf && !access.CanManageMembers(access.ResolveRole(userID, trip)) {
			utils.RespondWithError(w, http.StatusForbidden, "Permission denied. Only the owner can remove members.")
			return
		}
		if memberID == trip.UserID {
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot remove the owner")
			return
		}
		if _, ok := trip.Collaborator(memberID); !ok {
			utils.RespondWithError(w, http.StatusNotFound, "Member not found in trip")
			return
		}

		collabs := make([]models.Collaborator, 0, len(trip.Collaborators)-1)
		for _, c := range trip.Collaborators {
			if c.UserID != memberID {
				collabs = append(collabs, c)
			}
		}

		err = saveCollaborators(ctx, trip, collabs)
		if err == errRevConflict {
			continue
		}
		if err != nil {
			log.Printf("remove-member: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Server Error")
			return
		}

		if !isSelf {
			notif := models.Notification{
				NotifID:   utils.GetUUID(),
				UserID:    memberID,
				Type:      models.NotificationKick,
				Message:   `You have been removed from the trip "` + trip.Title + `".`,
				CreatedAt: time.Now(),
			}
			if _, err := db.NotificationsCollection.InsertOne(ctx, notif); err != nil {
				log.Printf("remove-member: notification insert failed: %v", err)
			}
		}

		mq.Emit(ctx, "member-removed", models.Index{
			EntityType: "trip", Method: "DELETE", EntityId: tripID,
			ItemId: memberID, UserID: userID,
		})

		msg := "Member removed successfully"
		if isSelf {
			msg = "You have left the trip."
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": msg})
		return
	}

	utils.RespondWithError(w, http.StatusConflict, "Trip was modified concurrently, please retry")
}
