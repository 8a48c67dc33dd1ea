// Package remote stores backups in MongoDB, one database per store.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collectionName = "backups"

type document struct {
	Version   int       `bson:"version"`
	Data      bson.Raw  `bson:"data"`
	CreatedAt time.Time `bson:"createdAt"`
}

type MongoStore struct {
	client *mongo.Client
	logger logger.ZapLogger

	mu      sync.Mutex
	indexed map[string]bool
}

var _ backup.RemoteStore = (*MongoStore)(nil)

func NewMongoStore(ctx context.Context, uri string, log logger.ZapLogger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client:  client,
		logger:  log,
		indexed: make(map[string]bool),
	}, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) collection(ctx context.Context, database string) (*mongo.Collection, error) {
	coll := m.client.Database(database).Collection(collectionName)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexed[database] {
		return coll, nil
	}

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "version", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create backup indexes: %w", err)
	}
	m.indexed[database] = true
	return coll, nil
}

func (m *MongoStore) MaxVersion(ctx context.Context, database string) (int, error) {
	coll, err := m.collection(ctx, database)
	if err != nil {
		return 0, err
	}

	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.D{{Key: "version", Value: 1}})

	var doc document
	err = coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (m *MongoStore) Insert(ctx context.Context, database string, b *backup.RemoteBackup) error {
	coll, err := m.collection(ctx, database)
	if err != nil {
		return err
	}

	data, err := toBSON(b.Data)
	if err != nil {
		return err
	}

	_, err = coll.InsertOne(ctx, document{Version: b.Version, Data: data, CreatedAt: b.CreatedAt})
	if mongo.IsDuplicateKeyError(err) {
		return backup.ErrDuplicateVersion
	}
	if err != nil {
		return err
	}
	m.logger.Debug("backup document inserted", zap.String("database", database), zap.Int("version", b.Version))
	return nil
}

func (m *MongoStore) Latest(ctx context.Context, database string) (*backup.RemoteBackup, error) {
	coll, err := m.collection(ctx, database)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "version", Value: -1}})

	var doc document
	err = coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := toJSON(doc.Data)
	if err != nil {
		return nil, err
	}
	return &backup.RemoteBackup{Version: doc.Version, Data: data, CreatedAt: doc.CreatedAt}, nil
}

// toBSON keeps the snapshot as a nested document.
func toBSON(data []byte) (bson.Raw, error) {
	var raw bson.Raw
	if err := bson.UnmarshalExtJSON(data, false, &raw); err != nil {
		return nil, fmt.Errorf("convert backup to bson: %w", err)
	}
	return raw, nil
}

func toJSON(raw bson.Raw) ([]byte, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("convert backup to json: %w", err)
	}
	return data, nil
}
