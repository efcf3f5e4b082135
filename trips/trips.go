package trips

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/access"
	"globetrotter/db"
	"globetrotter/itinerary"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/mq"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCoverImage = "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?auto=format&fit=crop&w=800&q=80"

func loadTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// parseDate accepts both bare dates from date pickers and full
// RFC 3339 timestamps.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// GET /api/trips
func GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.TripsCollection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trips": trips})
}

// POST /api/trips
func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Title        string               `json:"title"`
		Description  string               `json:"description"`
		StartDate    string               `json:"startDate"`
		EndDate      string               `json:"endDate"`
		Budget       float64              `json:"budget"`
		Destinations []models.Destination `json:"destinations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if input.Title == "" || input.StartDate == "" || input.EndDate == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(input.Title) > models.MaxTitleLen {
		utils.RespondWithError(w, http.StatusBadRequest, "Title cannot be more than 100 characters")
		return
	}
	if len(input.Description) > models.MaxDescriptionLen {
		utils.RespondWithError(w, http.StatusBadRequest, "Description cannot be more than 500 characters")
		return
	}
	start, ok := parseDate(input.StartDate)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	end, ok := parseDate(input.EndDate)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid end date")
		return
	}
	if end.Before(start) {
		utils.RespondWithError(w, http.StatusBadRequest, "End date must not be before start date")
		return
	}
	if input.Budget < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Budget must not be negative")
		return
	}

	trip := models.Trip{
		TripID:        "t" + utils.GenerateRandomString(12),
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		StartDate:     start,
		EndDate:       end,
		CoverImage:    defaultCoverImage,
		Visibility:    models.VisibilityPrivate,
		Budget:        input.Budget,
		Collaborators: []models.Collaborator{},
		Destinations:  input.Destinations,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.TripsCollection.InsertOne(ctx, trip); err != nil {
		log.Printf("create-trip: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating trip")
		return
	}

	mq.Emit(ctx, "trip-created", models.Index{
		EntityType: "trip", Method: "POST", EntityId: trip.TripID, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Trip created", "trip": trip})
}

// GET /api/trips/:id — trip details plus sorted itinerary, role-gated.
func GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	userID := middleware.RequestUserID(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	role := access.ResolveRole(userID, trip)
	if !access.CanRead(role, trip) {
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		}
		return
	}

	items, err := itinerary.ItemsForTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"trip":      trip,
		"itinerary": items,
		"role":      role,
	})
}

// PUT /api/trips/:id — owner-only settings update.
func UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Title        *string              `json:"title"`
		Description  *string              `json:"description"`
		StartDate    *string              `json:"startDate"`
		EndDate      *string              `json:"endDate"`
		Visibility   *string              `json:"visibility"`
		Budget       *float64             `json:"budget"`
		Destinations []models.Destination `json:"destinations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if !access.CanManageTrip(access.ResolveRole(userID, trip)) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the owner can update trip settings")
		return
	}

	set := bson.M{"updatedAt": time.Now()}

	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > models.MaxTitleLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Title cannot be more than 100 characters")
			return
		}
		set["title"] = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) > models.MaxDescriptionLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Description cannot be more than 500 characters")
			return
		}
		set["description"] = *input.Description
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPrivate && *input.Visibility != models.VisibilityPublic {
			utils.RespondWithError(w, http.StatusBadRequest, "Visibility must be private or public")
			return
		}
		set["visibility"] = *input.Visibility
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Budget must not be negative")
			return
		}
		set["budget"] = *input.Budget
	}

	start, end := trip.StartDate, trip.EndDate
	if input.StartDate != nil {
		s, ok := parseDate(*input.StartDate)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid start date")
			return
		}
		start = s
		set["startDate"] = s
	}
	if input.EndDate != nil {
		e, ok := parseDate(*input.EndDate)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid end date")
			return
		}
		end = e
		set["endDate"] = e
	}
	if end.Before(start) {
		utils.RespondWithError(w, http.StatusBadRequest, "End date must not be before start date")
		return
	}
	if input.Destinations != nil {
		set["destinations"] = input.Destinations
	}

	if _, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID}, bson.M{"$set": set}); err != nil {
		log.Printf("update-trip: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip")
		return
	}

	updated, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip")
		return
	}

	mq.Emit(ctx, "trip-updated", models.Index{
		EntityType: "trip", Method: "PUT", EntityId: tripID, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip updated", "trip": updated})
}

// DELETE /api/trips/:id — owner-only, cascades to items and messages.
func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if !access.CanManageTrip(access.ResolveRole(userID, trip)) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the owner can delete the trip")
		return
	}

	if _, err := db.TripsCollection.DeleteOne(ctx, bson.M{"tripid": tripID}); err != nil {
		log.Printf("delete-trip: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}
	if _, err := db.ItineraryCollection.DeleteMany(ctx, bson.M{"tripId": tripID}); err != nil {
		log.Printf("delete-trip: itinerary cleanup: %v", err)
	}
	if _, err := db.MessagesCollection.DeleteMany(ctx, bson.M{"tripId": tripID}); err != nil {
		log.Printf("delete-trip: message cleanup: %v", err)
	}

	mq.Emit(ctx, "trip-deleted", models.Index{
		EntityType: "trip", Method: "DELETE", EntityId: tripID, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted"})
}
