package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is a facility store over one collection of facility_documents.
// Its natural order is insertion order (created_at, then id).
type Repository struct {
	pool       *pgxpool.Pool
	collection string
}

// NewRepository scopes a repository to collection.
func NewRepository(pool *pgxpool.Pool, collection string) *Repository {
	return &Repository{pool: pool, collection: collection}
}

// PutFacility inserts or fully replaces the document for id. A replaced
// document keeps its original created_at.
func (r *Repository) PutFacility(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return errors.New("put facility: empty id")
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal facility %s: %w", id, err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO facility_documents (collection, id, doc)
        VALUES ($1, $2, $3::jsonb)
        ON CONFLICT (collection, id) DO UPDATE
        SET doc = EXCLUDED.doc, updated_at = clock_timestamp()
    `, r.collection, id, string(doc))
	if err != nil {
		return fmt.Errorf("put facility %s: %w", id, err)
	}
	return nil
}

// ListFacilities returns every document of the collection.
func (r *Repository) ListFacilities(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, doc
        FROM facility_documents
        WHERE collection = $1
        ORDER BY created_at, id
    `, r.collection)
	if err != nil {
		return nil, fmt.Errorf("query facilities: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		fields, err := unmarshalFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode facility %s: %w", id, err)
		}
		docs = append(docs, domain.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facilities: %w", err)
	}
	return docs, nil
}

// GetFacility returns the document for id.
func (r *Repository) GetFacility(ctx context.Context, id string) (domain.Document, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
        SELECT doc FROM facility_documents WHERE collection = $1 AND id = $2
    `, r.collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, domain.ErrFacilityNotFound
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("get facility %s: %w", id, err)
	}

	fields, err := unmarshalFields(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("decode facility %s: %w", id, err)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

// UpdateFacility merges fields into the stored document with the jsonb
// concatenation operator, so concurrent writers of disjoint keys do not
// clobber each other.
func (r *Repository) UpdateFacility(ctx context.Context, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal update for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, `
        UPDATE facility_documents
        SET doc = doc || $3::jsonb, updated_at = clock_timestamp()
        WHERE collection = $1 AND id = $2
    `, r.collection, id, string(patch))
	if err != nil {
		return fmt.Errorf("update facility %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update facility %s: %w", id, domain.ErrFacilityNotFound)
	}
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func unmarshalFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
