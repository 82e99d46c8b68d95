// Package store is the narrow document-store surface the services write
// through: get/set/update-with-field-ops/list over id-keyed collections.
// No multi-document transactions are offered; every cross-record update is
// issued as independent single-document writes.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("store: document not found")

// OpKind selects how a FieldOp mutates its field.
type OpKind int

const (
	OpSet OpKind = iota
	OpArrayUnion
	OpArrayRemove
)

// FieldOp is a single-field mutation: replace the value, add elements to an
// array treated as a set, or remove elements from it.
type FieldOp struct {
	Kind   OpKind
	Value  interface{}
	Values []interface{}
}

// Set replaces the field's value.
func Set(v interface{}) FieldOp {
	return FieldOp{Kind: OpSet, Value: v}
}

// ArrayUnion adds the given elements to an array field, skipping duplicates.
func ArrayUnion(vs ...interface{}) FieldOp {
	return FieldOp{Kind: OpArrayUnion, Values: vs}
}

// ArrayRemove removes all occurrences of the given elements from an array field.
func ArrayRemove(vs ...interface{}) FieldOp {
	return FieldOp{Kind: OpArrayRemove, Values: vs}
}

// Store is the document store contract shared by the Mongo-backed
// implementation and the in-memory one used in tests and local development.
type Store interface {
	Get(ctx context.Context, collection, id string, out interface{}) error
	Set(ctx context.Context, collection, id string, record interface{}) error
	UpdateFields(ctx context.Context, collection, id string, ops map[string]FieldOp) error
	ListAll(ctx context.Context, collection string, out interface{}) error
}

// StringsUnion is a convenience for ArrayUnion over string ids.
func StringsUnion(ids ...string) FieldOp {
	vs := make([]interface{}, len(ids))
	for i, id := range ids {
		vs[i] = id
	}
	return FieldOp{Kind: OpArrayUnion, Values: vs}
}

// StringsRemove is a convenience for ArrayRemove over string ids.
func StringsRemove(ids ...string) FieldOp {
	vs := make([]interface{}, len(ids))
	for i, id := range ids {
		vs[i] = id
	}
	return FieldOp{Kind: OpArrayRemove, Values: vs}
}
