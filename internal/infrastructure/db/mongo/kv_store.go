package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/ports"
)

type KVStore struct {
	coll    *mongo.Collection
	profile string
}

var (
	_ ports.KVStore = (*KVStore)(nil)
	_ ports.Pinger  = (*KVStore)(nil)
)

func NewKVStore(coll *mongo.Collection, profile string) *KVStore {
	return &KVStore{coll: coll, profile: profile}
}

type entry struct {
	ID      string `bson:"_id"`
	Profile string `bson:"profile"`
	Key     string `bson:"key"`
	Value   []byte `bson:"value"`
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := s.coll.FindOne(ctx, bson.M{"_id": s.id(key)}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return e.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	doc := entry{ID: s.id(key), Profile: s.profile, Key: key, Value: value}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.id(key)}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *KVStore) Close() error {
	return s.coll.Database().Client().Disconnect(context.Background())
}

func (s *KVStore) id(key string) string {
	return s.profile + ":" + key
}
