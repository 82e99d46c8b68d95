package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a mongo database.
type MongoStore struct {
	database *mongo.Database
}

// NewMongoStore wraps an already-connected database.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{database: database}
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.database.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, record interface{}) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.database.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, record, opts)
	return err
}

func (s *MongoStore) UpdateFields(ctx context.Context, collection, id string, ops map[string]FieldOp) error {
	update := bson.M{}
	for field, op := range ops {
		switch op.Kind {
		case OpSet:
			merge(update, "$set", field, op.Value)
		case OpArrayUnion:
			merge(update, "$addToSet", field, bson.M{"$each": op.Values})
		case OpArrayRemove:
			merge(update, "$pull", field, bson.M{"$in": op.Values})
		default:
			return fmt.Errorf("store: unknown field op %d for %q", op.Kind, field)
		}
	}

	res, err := s.database.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListAll(ctx context.Context, collection string, out interface{}) error {
	cursor, err := s.database.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func merge(update bson.M, operator, field string, value interface{}) {
	section, ok := update[operator].(bson.M)
	if !ok {
		section = bson.M{}
		update[operator] = section
	}
	section[field] = value
}
