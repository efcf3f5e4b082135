package trips

import (
	"context"
	"net/http"
	"time"

	"globetrotter/globals"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// GET /api/trips/:id/share — PNG QR code pointing at the trip page.
// Only public trips are shareable this way; a QR for a private trip
// would just lead recipients to an access-denied page.
func ShareTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := loadTrip(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	if trip.Visibility != models.VisibilityPublic {
		utils.RespondWithError(w, http.StatusForbidden, "Only public trips can be shared")
		return
	}

	shareURL := globals.AppBaseURL + "/trips/" + trip.TripID
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
