package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Document represents one corpus file moving through the pipeline
type Document struct {
	ID        string    `json:"id"`
	Source    Source    `json:"source"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Source describes where a document came from
type Source struct {
	Type string `json:"type"`           // pdf, text
	URL  string `json:"url,omitempty"`  // source URL if fetched from the web
	Path string `json:"path,omitempty"` // local path on disk
}

// Content holds the document's actual data
type Content struct {
	Raw      []byte            `json:"-"`        // raw bytes, never serialized
	Text     string            `json:"text"`     // extracted text content
	Metadata map[string]string `json:"metadata"` // arbitrary metadata
}

// SidecarPath returns the .txt path written next to a source PDF
func (d *Document) SidecarPath() string {
	path := d.Source.Path
	ext := filepath.Ext(path)
	if ext == "" {
		return path + ".txt"
	}
	return strings.TrimSuffix(path, ext) + ".txt"
}

// Folder returns the directory a document belongs to, used for per-folder
// aggregation in the quality and sentiment reports.
func (d *Document) Folder() string {
	return filepath.Dir(d.Source.Path)
}

// Validate checks if the document has required fields
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document ID cannot be empty")
	}
	if d.Source.Type == "" {
		return fmt.Errorf("document source type cannot be empty")
	}
	if d.Source.URL == "" && d.Source.Path == "" {
		return fmt.Errorf("document must have either URL or path")
	}
	return nil
}
