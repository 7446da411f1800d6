package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhartig/photogrid/pkg/photogrid"
)

const librariesCollection = "libraries"

// MongoStore is a MongoDB-backed library store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the given
// database. The connection is verified with a ping before the store is
// returned.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(librariesCollection)
	return &MongoStore{client: client, coll: coll}, nil
}

// EnsureIndexes creates the unique name index used by GetByName.
// Safe to call repeatedly.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create name index: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Library, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStore) GetByName(ctx context.Context, name string) (*Library, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Library, error) {
	var doc libraryDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find library: %w", err)
	}
	return doc.toLibrary()
}

func (s *MongoStore) Set(ctx context.Context, lib *Library) error {
	lib.UpdatedAt = time.Now().UTC()

	doc := fromLibrary(lib)
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("store library: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()}); err != nil {
		return fmt.Errorf("delete library: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode library: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate libraries: %w", err)
	}
	return names, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// libraryDoc is the BSON shape of a library. IDs are stored as strings
// so documents stay readable in shells and dumps.
type libraryDoc struct {
	ID        string                      `bson:"_id"`
	Name      string                      `bson:"name"`
	Photos    []photogrid.PhotoLayoutData `bson:"photos"`
	UpdatedAt time.Time                   `bson:"updated_at"`
}

func fromLibrary(lib *Library) libraryDoc {
	return libraryDoc{
		ID:        lib.ID.String(),
		Name:      lib.Name,
		Photos:    lib.Photos,
		UpdatedAt: lib.UpdatedAt,
	}
}

func (d libraryDoc) toLibrary() (*Library, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse library id %q: %w", d.ID, err)
	}

	return &Library{
		ID:        id,
		Name:      d.Name,
		Photos:    d.Photos,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

var _ Store = (*MongoStore)(nil)
