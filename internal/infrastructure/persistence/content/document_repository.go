// Package content provides the document repository
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/persistence/database"
)

// DocumentRepository persists rich-text documents with their node trees
// stored as JSON payloads.
type DocumentRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewDocumentRepository(db *sql.DB, logger *logging.ChanneledLogger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (r *DocumentRepository) EnsureSchema() error {
	query := `CREATE TABLE IF NOT EXISTS documents (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL,
        slug TEXT NOT NULL UNIQUE,
        nodes_payload TEXT NOT NULL,
        created TEXT NOT NULL,
        changed TEXT NOT NULL
    )`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(id string) (*document.Document, error) {
	query := `SELECT id, title, slug, nodes_payload, created, changed
              FROM documents WHERE id = ?`

	start := time.Now()
	defer func() { database.CheckAndLogSlowQuery(r.logger, "documents.get_by_id", time.Since(start)) }()

	return r.scanOne(r.db.QueryRow(query, id))
}

func (r *DocumentRepository) GetBySlug(slug string) (*document.Document, error) {
	query := `SELECT id, title, slug, nodes_payload, created, changed
              FROM documents WHERE slug = ?`

	return r.scanOne(r.db.QueryRow(query, slug))
}

func (r *DocumentRepository) List() ([]*document.Document, error) {
	query := `SELECT id, title, slug, nodes_payload, created, changed
              FROM documents ORDER BY title`

	start := time.Now()
	rows, err := r.db.Query(query)
	database.CheckAndLogSlowQuery(r.logger, "documents.list", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		doc, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) Create(doc *document.Document) error {
	nodesJSON, err := doc.NodesJSON()
	if err != nil {
		return fmt.Errorf("failed to encode document nodes: %w", err)
	}

	query := `INSERT INTO documents (id, title, slug, nodes_payload, created, changed)
              VALUES (?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query, doc.ID, doc.Title, doc.Slug, string(nodesJSON),
		doc.CreatedAt.UTC().Format(time.RFC3339), doc.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) Update(doc *document.Document) error {
	nodesJSON, err := doc.NodesJSON()
	if err != nil {
		return fmt.Errorf("failed to encode document nodes: %w", err)
	}

	query := `UPDATE documents SET title = ?, slug = ?, nodes_payload = ?, changed = ?
              WHERE id = ?`

	result, err := r.db.Exec(query, doc.Title, doc.Slug, string(nodesJSON),
		doc.UpdatedAt.UTC().Format(time.RFC3339), doc.ID)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *DocumentRepository) Delete(id string) error {
	query := `DELETE FROM documents WHERE id = ?`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *DocumentRepository) scanOne(row *sql.Row) (*document.Document, error) {
	doc, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return doc, err
}

func (r *DocumentRepository) scanRow(row rowScanner) (*document.Document, error) {
	var doc document.Document
	var nodesPayload, created, changed string

	if err := row.Scan(&doc.ID, &doc.Title, &doc.Slug, &nodesPayload, &created, &changed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	if err := json.Unmarshal([]byte(nodesPayload), &doc.Nodes); err != nil {
		return nil, fmt.Errorf("failed to decode document nodes for %s: %w", doc.ID, err)
	}

	if t, err := time.Parse(time.RFC3339, created); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, changed); err == nil {
		doc.UpdatedAt = t
	}

	return &doc, nil
}
