package routes

import (
	"net/http"

	"globetrotter/admin"
	"globetrotter/auth"
	"globetrotter/chats"
	"globetrotter/itinerary"
	"globetrotter/middleware"
	"globetrotter/notifications"
	"globetrotter/profile"
	"globetrotter/ratelim"
	"globetrotter/trips"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/coverpic/*filepath", http.Dir("static/coverpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/signup", ratelim.RateLimit(auth.Signup))
	router.POST("/api/auth/verify-otp", ratelim.RateLimit(auth.VerifyOTP))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/forgot-password", ratelim.RateLimit(auth.ForgotPassword))
	router.PUT("/api/auth/reset-password", ratelim.RateLimit(auth.ResetPassword))
	router.DELETE("/api/auth/delete", middleware.Authenticate(auth.DeleteAccount))
	router.PUT("/api/user/change-password", middleware.Authenticate(auth.ChangePassword))
}

func AddTripRoutes(router *httprouter.Router) {
	router.GET("/api/trips", middleware.Authenticate(trips.GetTrips))
	router.POST("/api/trips", ratelim.RateLimit(middleware.Authenticate(trips.CreateTrip)))

	router.GET("/api/trips/:id", middleware.OptionalAuth(trips.GetTrip))
	router.PUT("/api/trips/:id", middleware.Authenticate(trips.UpdateTrip))
	router.DELETE("/api/trips/:id", middleware.Authenticate(trips.DeleteTrip))

	router.POST("/api/trips/:id", ratelim.RateLimit(middleware.Authenticate(itinerary.AddItem)))
	router.PUT("/api/trips/:id/items/:itemid", middleware.Authenticate(itinerary.UpdateItem))
	router.DELETE("/api/trips/:id/items/:itemid", middleware.Authenticate(itinerary.DeleteItem))

	router.POST("/api/trips/:id/invite", ratelim.RateLimit(middleware.Authenticate(trips.InviteCollaborator)))
	router.DELETE("/api/trips/:id/members/:userid", middleware.Authenticate(trips.RemoveMember))

	router.GET("/api/trips/:id/budget", middleware.OptionalAuth(trips.GetBudget))
	router.GET("/api/trips/:id/export", middleware.OptionalAuth(trips.ExportTrip))
	router.GET("/api/trips/:id/share", ratelim.RateLimit(trips.ShareTrip))
	router.POST("/api/trips/:id/cover", middleware.Authenticate(trips.UploadCover))
}

func AddChatRoutes(router *httprouter.Router, hub *chats.Hub) {
	router.GET("/api/trips/:id/messages", middleware.Authenticate(chats.GetMessages))
	router.POST("/api/trips/:id/messages", ratelim.RateLimit(middleware.Authenticate(chats.PostMessage(hub))))
	router.GET("/ws/trips/:id/chat", chats.WebSocketHandler(hub))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.PUT("/api/notifications/:notifid/read", middleware.Authenticate(notifications.MarkRead))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
	router.POST("/api/profile/picture", ratelim.RateLimit(middleware.Authenticate(profile.UploadProfilePicture)))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/stats", ratelim.RateLimit(admin.RequireAdmin(admin.GetStats)))
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
