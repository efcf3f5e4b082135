package chats

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"globetrotter/access"
	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxMessageLen = 2000

func requireMember(ctx context.Context, w http.ResponseWriter, r *http.Request, tripID string) (string, *models.Trip, bool) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return "", nil, false
	}

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return "", nil, false
	}

	if !access.CanChat(access.ResolveRole(userID, &trip)) {
		utils.RespondWithError(w, http.StatusForbidden, "Only trip members can use chat")
		return "", nil, false
	}
	return userID, &trip, true
}

// GET /api/trips/:id/chat — oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, _, ok := requireMember(ctx, w, r, tripID); !ok {
		return
	}

	msgs, err := historyForTrip(ctx, tripID, 0)
	if err != nil {
		log.Printf("chat history: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching messages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"messages": msgs})
}

// PostMessage persists a message and pushes it to connected sockets.
func PostMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tripID := ps.ByName("id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		userID, _, ok := requireMember(ctx, w, r, tripID)
		if !ok {
			return
		}

		var input struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		input.Content = strings.TrimSpace(input.Content)
		if input.Content == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		if len(input.Content) > maxMessageLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Message too long")
			return
		}

		msg, err := storeMessage(ctx, tripID, userID, input.Content)
		if err != nil {
			log.Printf("chat insert: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error sending message")
			return
		}

		if data, err := json.Marshal(msg); err == nil {
			hub.Broadcast(tripID, data)
		}

		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Message sent", "chat": msg})
	}
}

func storeMessage(ctx context.Context, tripID, userID, content string) (*models.Message, error) {
	var sender models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&sender); err != nil {
		return nil, err
	}

	msg := models.Message{
		MessageID: utils.GetUUID(),
		TripID:    tripID,
		UserID:    userID,
		Content:   content,
		Sender:    sender.Summary(),
		CreatedAt: time.Now(),
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// historyForTrip returns messages ascending by creation time. limit 0
// means everything.
func historyForTrip(ctx context.Context, tripID string, limit int64) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts = options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)
	}

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"tripId": tripID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	if limit > 0 {
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}
