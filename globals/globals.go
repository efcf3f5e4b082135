package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "change_me_in_production"))

	// Base URL used when building shareable trip links.
	AppBaseURL = getenv("APP_BASE_URL", "http://localhost:3000")
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
