// Package admin exposes aggregate platform stats. Admins are defined
// server-side by the ADMIN_EMAILS allowlist, never by anything a client
// sends.
package admin

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/rdx"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func adminEmails() map[string]bool {
	set := make(map[string]bool)
	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = true
		}
	}
	return set
}

// RequireAdmin gates a route on the email claim of a valid token being
// in the allowlist.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !adminEmails()[strings.ToLower(claims.Email)] {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, ps)
	}
}

type monthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// GET /api/admin/stats
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	totalTrips, err := db.TripsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	recentUsers, err := fetchRecentUsers(ctx)
	if err != nil {
		log.Printf("admin recent users: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	since := time.Now().AddDate(0, -6, 0)
	signups, err := monthlyCounts(ctx, db.UserCollection, since)
	if err != nil {
		log.Printf("admin signups: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	tripsCreated, err := monthlyCounts(ctx, db.TripsCollection, since)
	if err != nil {
		log.Printf("admin trips: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	activeNow, err := rdx.CountKeys("active:*")
	if err != nil {
		// presence is best effort; stats still serve without Redis
		log.Printf("admin active count: %v", err)
		activeNow = 0
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalUsers":     totalUsers,
		"totalTrips":     totalTrips,
		"activeNow":      activeNow,
		"recentUsers":    recentUsers,
		"signupsByMonth": signups,
		"tripsByMonth":   tripsCreated,
	})
}

func fetchRecentUsers(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5).
		SetProjection(bson.M{"userid": 1, "name": 1, "email": 1, "image": 1})

	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.UserSummary
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	return users, nil
}

// monthlyCounts groups documents by createdAt month-year since the
// cutoff, oldest month first.
func monthlyCounts(ctx context.Context, coll *mongo.Collection, since time.Time) ([]monthCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$createdAt",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	counts := make([]monthCount, 0, len(raw))
	for _, r := range raw {
		counts = append(counts, monthCount{Month: r.ID, Count: r.Count})
	}
	return counts, nil
}
