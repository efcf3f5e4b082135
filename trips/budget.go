package trips

import (
	"context"
	"net/http"
	"time"

	"globetrotter/access"
	"globetrotter/itinerary"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
)

type BudgetSummary struct {
	Budget     float64            `json:"budget"`
	TotalSpent float64            `json:"totalSpent"`
	Remaining  float64            `json:"remaining"`
	ByType     map[string]float64 `json:"byType"`
	ItemCount  int                `json:"itemCount"`
}

// Summarize totals item costs against the trip budget. Remaining goes
// negative when the plan overshoots.
func Summarize(trip *models.Trip, items []models.ItineraryItem) BudgetSummary {
	s := BudgetSummary{
		Budget:    trip.Budget,
		ByType:    make(map[string]float64),
		ItemCount: len(items),
	}
	for _, item := range items {
		s.TotalSpent += item.Cost
		s.ByType[item.Type] += item.Cost
	}
	s.Remaining = trip.Budget - s.TotalSpent
	return s
}

// GET /api/trips/:id/budget
func GetBudget(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	userID := middleware.RequestUserID(r)
	if !access.CanRead(access.ResolveRole(userID, trip), trip) {
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		}
		return
	}

	items, err := itinerary.ItemsForTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Summarize(trip, items))
}
