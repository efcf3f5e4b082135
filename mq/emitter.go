package mq

import (
	"context"
	"encoding/json"
	"log"

	"globetrotter/models"
	"globetrotter/rdx"
)

const activityChannel = "activity-events"

// Notify is a fire-and-forget hook for events nobody consumes yet.
func Notify(eventName string, content models.Index) error {
	log.Println(eventName, "notified", content.EntityType, content.EntityId)
	return nil
}

// Emit publishes a mutation event to Redis. Failures are logged, never
// surfaced; activity tracking must not fail a request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, activityChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}

// StartActivityWorker consumes activity events and refreshes the
// per-user presence keys that back the admin dashboard's active gauge.
func StartActivityWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, activityChannel)
	ch := sub.Channel()

	log.Println("[ActivityWorker] listening for activity events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[ActivityWorker] failed to parse event: %v", err)
			continue
		}
		rdx.MarkActive(event.UserID)
	}
}
