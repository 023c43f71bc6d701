// Package bolt stores facility documents as JSON values in an embedded bbolt
// database, one bucket per collection.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"go.etcd.io/bbolt"
)

// Store is a bbolt-backed document store. Its natural order is byte order
// of the facility ids.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

// Open opens (or creates) the database at path and ensures the collection
// bucket exists.
func Open(path, collection string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open boltdb: %w", err)
	}

	bucket := []byte(collection)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", collection, err)
	}

	return &Store{db: db, bucket: bucket}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutFacility stores or replaces the document for id.
func (s *Store) PutFacility(_ context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("put facility: empty id")
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal facility %s: %w", id, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(id), data)
	})
}

// ListFacilities returns every document in key order.
func (s *Store) ListFacilities(_ context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			fields, err := unmarshalFields(v)
			if err != nil {
				return fmt.Errorf("decode facility %s: %w", k, err)
			}
			docs = append(docs, domain.Document{ID: string(k), Fields: fields})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return docs, nil
}

// GetFacility returns the document for id.
func (s *Store) GetFacility(_ context.Context, id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(id))
		if v == nil {
			return domain.ErrFacilityNotFound
		}
		fields, err := unmarshalFields(v)
		if err != nil {
			return fmt.Errorf("decode facility %s: %w", id, err)
		}
		doc = domain.Document{ID: id, Fields: fields}
		return nil
	})
	return doc, err
}

// UpdateFacility merges fields into the stored document inside a single
// read-write transaction.
func (s *Store) UpdateFacility(_ context.Context, id string, fields map[string]any) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		v := b.Get([]byte(id))
		if v == nil {
			return fmt.Errorf("update facility %s: %w", id, domain.ErrFacilityNotFound)
		}
		doc, err := unmarshalFields(v)
		if err != nil {
			return fmt.Errorf("decode facility %s: %w", id, err)
		}
		for k, val := range fields {
			doc[k] = val
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal facility %s: %w", id, err)
		}
		return b.Put([]byte(id), data)
	})
}

// Ping verifies the collection bucket is readable.
func (s *Store) Ping(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return fmt.Errorf("bucket %q missing", s.bucket)
		}
		return nil
	})
}

func unmarshalFields(data []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
