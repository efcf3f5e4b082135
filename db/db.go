package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	TripsCollection         *mongo.Collection
	ItineraryCollection     *mongo.Collection
	MessagesCollection      *mongo.Collection
	OTPCollection           *mongo.Collection
	NotificationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("tripdb").Collection("users")
	TripsCollection = Client.Database("tripdb").Collection("trips")
	ItineraryCollection = Client.Database("tripdb").Collection("itinerary")
	MessagesCollection = Client.Database("tripdb").Collection("messages")
	OTPCollection = Client.Database("tripdb").Collection("otps")
	NotificationsCollection = Client.Database("tripdb").Collection("notifications")
}

// EnsureIndexes creates the indexes the handlers rely on. The OTP TTL
// index makes pending signups expire five minutes after creation.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = OTPCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(300),
		},
	})
	if err != nil {
		return err
	}

	_, err = ItineraryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tripId", Value: 1}, {Key: "day", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = MessagesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tripId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = NotificationsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Disconnect closes the Mongo client, used on graceful shutdown.
func Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
}
