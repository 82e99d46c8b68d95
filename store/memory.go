package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-process Store used by tests and local development.
// Documents round-trip through bson so the codec behavior matches the Mongo
// implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, record interface{}) error {
	raw, err := bson.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	docs[id] = raw
	return nil
}

func (s *MemoryStore) UpdateFields(ctx context.Context, collection, id string, ops map[string]FieldOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}

	for field, op := range ops {
		switch op.Kind {
		case OpSet:
			doc[field] = op.Value
		case OpArrayUnion:
			doc[field] = arrayUnion(doc[field], op.Values)
		case OpArrayRemove:
			doc[field] = arrayRemove(doc[field], op.Values)
		default:
			return fmt.Errorf("store: unknown field op %d for %q", op.Kind, field)
		}
	}

	updated, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	s.collections[collection][id] = updated
	return nil
}

// ListAll decodes every document in the collection into out, which must be a
// pointer to a slice. Documents are returned in id order so listings are
// deterministic.
func (s *MemoryStore) ListAll(ctx context.Context, collection string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: ListAll requires a pointer to a slice, got %T", out)
	}

	docs := s.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sliceValue := outValue.Elem()
	elemType := sliceValue.Type().Elem()
	result := reflect.MakeSlice(sliceValue.Type(), 0, len(ids))
	for _, id := range ids {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(docs[id], elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceValue.Set(result)
	return nil
}

func arrayUnion(current interface{}, values []interface{}) []interface{} {
	merged := toSlice(current)
	for _, v := range values {
		if !containsValue(merged, v) {
			merged = append(merged, v)
		}
	}
	return merged
}

func arrayRemove(current interface{}, values []interface{}) []interface{} {
	kept := make([]interface{}, 0)
	for _, existing := range toSlice(current) {
		if !containsValue(values, existing) {
			kept = append(kept, existing)
		}
	}
	return kept
}

func toSlice(v interface{}) []interface{} {
	switch typed := v.(type) {
	case nil:
		return nil
	case bson.A:
		return []interface{}(typed)
	case []interface{}:
		return typed
	default:
		return []interface{}{typed}
	}
}

func containsValue(haystack []interface{}, needle interface{}) bool {
	for _, v := range haystack {
		if reflect.DeepEqual(v, needle) {
			return true
		}
	}
	return false
}
