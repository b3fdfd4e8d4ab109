// Package document provides domain entities for rich-text document trees
package document

import (
	"encoding/json"
	"time"
)

// Document is a stored rich-text document: a title, a slug, and the node
// tree captured as the editor produced it.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Nodes     []Node    `json:"nodes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NodesJSON renders the node tree back to its JSON payload form for storage.
func (d *Document) NodesJSON() ([]byte, error) {
	return json.Marshal(d.Nodes)
}

// Repository defines persistence operations for documents.
type Repository interface {
	GetByID(id string) (*Document, error)
	GetBySlug(slug string) (*Document, error)
	List() ([]*Document, error)
	Create(doc *Document) error
	Update(doc *Document) error
	Delete(id string) error
}
