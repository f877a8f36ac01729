package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

const passwordsCollection = "passwords"

// MongoStore implements vault.Store using MongoDB.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	uri        string
	dbName     string
}

// NewMongoStore creates a MongoDB store. Initialize establishes the
// connection.
func NewMongoStore(uri, dbName string) *MongoStore {
	if dbName == "" {
		dbName = "password_manager"
	}
	return &MongoStore{uri: uri, dbName: dbName}
}

// Initialize connects to MongoDB, pings it and ensures the unique id index.
func (m *MongoStore) Initialize(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clientOptions := options.Client().ApplyURI(m.uri)
	clientOptions.SetMaxPoolSize(10)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.collection = client.Database(m.dbName).Collection(passwordsCollection)

	if _, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create id index: %w", err)
	}
	return nil
}

func (m *MongoStore) Close() error {
	if m.client != nil {
		return m.client.Disconnect(context.Background())
	}
	return nil
}

func (m *MongoStore) Health(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongodb not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) List(ctx context.Context) ([]vault.Record, error) {
	if m.collection == nil {
		return nil, fmt.Errorf("mongodb not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list passwords: %w", err)
	}
	defer cursor.Close(ctx)

	var records []vault.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode passwords: %w", err)
	}
	return records, nil
}

func (m *MongoStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	if m.collection == nil {
		return vault.Record{}, fmt.Errorf("mongodb not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rec := vault.Record{ID: uuid.NewString(), Fields: fields}
	if _, err := m.collection.InsertOne(ctx, rec); err != nil {
		return vault.Record{}, fmt.Errorf("failed to insert password: %w", err)
	}
	return rec, nil
}

func (m *MongoStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	if m.collection == nil {
		return false, fmt.Errorf("mongodb not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"site":     fields.Site,
			"username": fields.Username,
			"password": fields.Password,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.collection == nil {
		return false, fmt.Errorf("mongodb not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := m.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete password: %w", err)
	}
	return res.DeletedCount > 0, nil
}
