package trips

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"globetrotter/access"
	"globetrotter/itinerary"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /api/trips/:id/export — the itinerary as a printable PDF,
// grouped by day in display order.
func ExportTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	pdf := buildItineraryPDF(trip, items)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+trip.TripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func buildItineraryPDF(trip *models.Trip, items []models.ItineraryItem) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, trip.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s",
		trip.StartDate.Format("Jan 2, 2006"), trip.EndDate.Format("Jan 2, 2006")))
	pdf.Ln(8)
	if trip.Description != "" {
		pdf.MultiCell(0, 6, trip.Description, "", "L", false)
		pdf.Ln(4)
	}

	currentDay := 0
	for _, item := range items {
		if item.Day != currentDay {
			currentDay = item.Day
			pdf.Ln(4)
			pdf.SetFont("Arial", "B", 13)
			pdf.Cell(0, 8, fmt.Sprintf("Day %d", currentDay))
			pdf.Ln(8)
		}

		pdf.SetFont("Arial", "B", 11)
		line := item.Title
		if item.StartTime != "" {
			line = item.StartTime + "  " + line
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)

		pdf.SetFont("Arial", "", 10)
		if item.Location.Name != "" {
			pdf.Cell(0, 5, item.Location.Name)
			pdf.Ln(5)
		}
		if item.Cost > 0 {
			pdf.Cell(0, 5, fmt.Sprintf("%.2f %s", item.Cost, item.Currency))
			pdf.Ln(5)
		}
		pdf.Ln(2)
	}

	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 8, "No itinerary items yet.")
	}

	return pdf
}
