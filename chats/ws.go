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

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const historyLimit = 30

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

// WebSocketHandler upgrades GET /ws/trips/:id/chat. Browsers cannot set
// an Authorization header on a socket, so the token also rides in the
// ?token query parameter.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tripID := ps.ByName("id")

		token := r.Header.Get("Authorization")
		if token == "" {
			if q := r.URL.Query().Get("token"); q != "" {
				token = "Bearer " + strings.TrimPrefix(q, "Bearer ")
			}
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID := claims.UserID

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		var trip models.Trip
		err = db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
		cancel()
		if err != nil {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}
		if !access.CanChat(access.ResolveRole(userID, &trip)) {
			http.Error(w, "Only trip members can use chat", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			TripID: tripID,
			UserID: userID,
		}

		// replay recent history before live traffic
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			msgs, err := historyForTrip(ctx, tripID, historyLimit)
			if err != nil {
				log.Println("history:", err)
				return
			}
			for _, m := range msgs {
				if data, err := json.Marshal(m); err == nil {
					client.Send <- data
				}
			}
		}()

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Action != "chat" {
			log.Println("unknown action:", in.Action)
			continue
		}
		content := strings.TrimSpace(in.Content)
		if content == "" || len(content) > maxMessageLen {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		msg, err := storeMessage(ctx, c.TripID, c.UserID, content)
		cancel()
		if err != nil {
			log.Println("insert:", err)
			continue
		}

		if data, err := json.Marshal(msg); err == nil {
			hub.Broadcast(c.TripID, data)
		}
	}
}
