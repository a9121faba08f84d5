// Package dbmongo implements the repositories on MongoDB.
package dbmongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillnaav/internal/common"
	"skillnaav/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	NotificationsCollection = "notifications"
	SavedJobsCollection     = "savedjobs"
	OffersCollection        = "offerletters"
	PostingsCollection      = "internshippostings"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	uri := c.GetMongoURI()
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	mc, err := initialize(ctx, client, c.MongoDB.Database)
	if err != nil {
		return nil, err
	}

	log.Println("✅ Connected to MongoDB successfully")
	return mc, nil
}

// initialize pings the deployment and builds the indexes. The client is
// disconnected if either step fails.
func initialize(ctx context.Context, client *mongo.Client, database string) (*MongoClient, error) {
	mc := &MongoClient{
		Client:   client,
		Database: client.Database(database),
	}

	if err := client.Ping(ctx, nil); err != nil {
		mc.abort()
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	if err := EnsureIndexes(ctx, mc.Database); err != nil {
		mc.abort()
		return nil, err
	}
	return mc, nil
}

// abort uses its own deadline since the setup context may already be spent.
func (mc *MongoClient) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.Client.Disconnect(ctx); err != nil {
		log.Printf("Failed to disconnect MongoDB: %v", err)
	}
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// saved-job index is what makes concurrent saves of one pair collapse to a
// single record.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(SavedJobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "jobId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userId_jobId_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create saved job index: %w", err)
	}

	_, err = db.Collection(NotificationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}

	_, err = db.Collection(OffersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "sentDate", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create offer index: %w", err)
	}
	return nil
}

func (mc *MongoClient) Stores() *common.Stores {
	return &common.Stores{
		Notifications: NewNotificationRepository(mc.Database),
		SavedJobs:     NewSavedJobRepository(mc.Database),
		Offers:        NewOfferRepository(mc.Database),
		Postings:      NewPostingRepository(mc.Database),
		Close:         mc.Close,
	}
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
