package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortItems orders by day, then by start time as minute-of-day rather
// than string order, so "9:00" comes before "10:00". Blank or broken
// times sort to the front of their day.
func SortItems(items []models.ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day < items[j].Day
		}
		return utils.MinuteOfDay(items[i].StartTime) < utils.MinuteOfDay(items[j].StartTime)
	})
}

// ItemsForTrip returns the trip's items in display order.
func ItemsForTrip(ctx context.Context, tripID string) ([]models.ItineraryItem, error) {
	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"tripId": tripID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ItineraryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ItineraryItem{}
	}
	SortItems(items)
	return items, nil
}

func requireEditor(ctx context.Context, w http.ResponseWriter, r *http.Request, tripID string) (string, bool) {
	userID := middleware.RequestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return "", false
	}

	if !access.CanEditItinerary(access.ResolveRole(userID, &trip)) {
		utils.RespondWithError(w, http.StatusForbidden, "Unauthorized: Read-only access")
		return "", false
	}
	return userID, true
}

// POST /api/trips/:id — add an itinerary item, owner/planner only.
func AddItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireEditor(ctx, w, r, tripID)
	if !ok {
		return
	}

	var item models.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if item.Day < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Day must be a positive number")
		return
	}
	if item.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if item.Cost < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cost must not be negative")
		return
	}
	if item.Type == "" {
		item.Type = models.ItemTypeActivity
	} else if !models.ItemTypes[item.Type] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown item type")
		return
	}
	if item.Status == "" {
		item.Status = models.ItemStatusPlanned
	} else if !models.ItemStatuses[item.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown item status")
		return
	}
	if item.Currency == "" {
		item.Currency = "USD"
	}

	item.ItemID = "i" + utils.GenerateRandomString(12)
	item.TripID = tripID
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	if _, err := db.ItineraryCollection.InsertOne(ctx, item); err != nil {
		log.Printf("add-item: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting item")
		return
	}

	mq.Emit(ctx, "item-added", models.Index{
		EntityType: "itinerary", Method: "POST", EntityId: tripID,
		ItemId: item.ItemID, ItemType: item.Type, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Item added", "item": item})
}

// PUT /api/trips/:id/items/:itemid — partial patch, scoped to the trip.
func UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	itemID := ps.ByName("itemid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireEditor(ctx, w, r, tripID)
	if !ok {
		return
	}

	var input struct {
		Day         *int             `json:"day"`
		Type        *string          `json:"type"`
		Title       *string          `json:"title"`
		Description *string          `json:"description"`
		Location    *models.Location `json:"location"`
		StartTime   *string          `json:"startTime"`
		EndTime     *string          `json:"endTime"`
		Cost        *float64         `json:"cost"`
		Currency    *string          `json:"currency"`
		Status      *string          `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Day != nil {
		if *input.Day < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Day must be a positive number")
			return
		}
		set["day"] = *input.Day
	}
	if input.Type != nil {
		if !models.ItemTypes[*input.Type] {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown item type")
			return
		}
		set["type"] = *input.Type
	}
	if input.Title != nil {
		if *input.Title == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
			return
		}
		set["title"] = *input.Title
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Location != nil {
		set["location"] = *input.Location
	}
	if input.StartTime != nil {
		set["startTime"] = *input.StartTime
	}
	if input.EndTime != nil {
		set["endTime"] = *input.EndTime
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Cost must not be negative")
			return
		}
		set["cost"] = *input.Cost
	}
	if input.Currency != nil {
		set["currency"] = *input.Currency
	}
	if input.Status != nil {
		if !models.ItemStatuses[*input.Status] {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown item status")
			return
		}
		set["status"] = *input.Status
	}

	// tripId in the filter rejects item ids that belong to other trips
	var updated models.ItineraryItem
	err := db.ItineraryCollection.FindOneAndUpdate(ctx,
		bson.M{"itemid": itemID, "tripId": tripID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	} else if err != nil {
		log.Printf("update-item: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating item")
		return
	}

	mq.Emit(ctx, "item-updated", models.Index{
		EntityType: "itinerary", Method: "PUT", EntityId: tripID,
		ItemId: itemID, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Item updated", "item": updated})
}

// DELETE /api/trips/:id/items/:itemid
func DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")
	itemID := ps.ByName("itemid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireEditor(ctx, w, r, tripID)
	if !ok {
		return
	}

	res, err := db.ItineraryCollection.DeleteOne(ctx, bson.M{"itemid": itemID, "tripId": tripID})
	if err != nil {
		log.Printf("delete-item: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	mq.Emit(ctx, "item-deleted", models.Index{
		EntityType: "itinerary", Method: "DELETE", EntityId: tripID,
		ItemId: itemID, UserID: userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Item deleted"})
}
