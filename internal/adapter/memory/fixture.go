package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/google/uuid"
)

// fixtureIDField carries the document id inside a fixture object.
const fixtureIDField = "id"

// Putter is any store that accepts full documents.
type Putter interface {
	PutFacility(ctx context.Context, id string, fields map[string]any) error
}

// ReadFixture parses a JSON array of facility objects. Objects without an
// "id" are assigned a random UUID.
func ReadFixture(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %q: %w", path, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse fixture %q: %w", path, err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		id, _ := row[fixtureIDField].(string)
		if id == "" {
			id = uuid.NewString()
		}
		delete(row, fixtureIDField)
		docs = append(docs, domain.Document{ID: id, Fields: row})
	}
	return docs, nil
}

// WriteFixture writes docs as an indented JSON array, creating parent
// directories as needed.
func WriteFixture(path string, docs []domain.Document) error {
	rows := make([]map[string]any, len(docs))
	for i, doc := range docs {
		row := copyFields(doc.Fields)
		row[fixtureIDField] = doc.ID
		rows[i] = row
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write fixture %q: %w", path, err)
	}
	return nil
}

// Seed puts every document into store, stopping at the first failure.
func Seed(ctx context.Context, store Putter, docs []domain.Document) error {
	for _, doc := range docs {
		if err := store.PutFacility(ctx, doc.ID, doc.Fields); err != nil {
			return fmt.Errorf("seed facility %s: %w", doc.ID, err)
		}
	}
	return nil
}
