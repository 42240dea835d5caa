package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_SidecarPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "pdf file",
			path:     "corpus_pdfs/foia/report.pdf",
			expected: "corpus_pdfs/foia/report.txt",
		},
		{
			name:     "uppercase extension",
			path:     "corpus_pdfs/SCAN001.PDF",
			expected: "corpus_pdfs/SCAN001.txt",
		},
		{
			name:     "no extension",
			path:     "corpus_pdfs/attachment",
			expected: "corpus_pdfs/attachment.txt",
		},
		{
			name:     "dotted name",
			path:     "corpus_pdfs/exhibit.v2.pdf",
			expected: "corpus_pdfs/exhibit.v2.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Source: Source{Type: "pdf", Path: tt.path}}
			assert.Equal(t, tt.expected, doc.SidecarPath())
		})
	}
}

func TestDocument_Folder(t *testing.T) {
	doc := &Document{Source: Source{Type: "pdf", Path: "corpus_pdfs/court-records/vol1/doc.pdf"}}
	assert.Equal(t, "corpus_pdfs/court-records/vol1", doc.Folder())
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid document",
			doc: &Document{
				ID: "test-123",
				Source: Source{
					Type: "pdf",
					URL:  "https://example.com/doc.pdf",
				},
				Content: Content{Text: "Test content"},
			},
			wantErr: false,
		},
		{
			name: "valid local document",
			doc: &Document{
				ID:     "test-456",
				Source: Source{Type: "pdf", Path: "corpus_pdfs/doc.pdf"},
			},
			wantErr: false,
		},
		{
			name: "missing ID",
			doc: &Document{
				Source: Source{
					Type: "pdf",
					URL:  "https://example.com/doc.pdf",
				},
			},
			wantErr: true,
			errMsg:  "document ID cannot be empty",
		},
		{
			name: "missing source type",
			doc: &Document{
				ID: "test-123",
				Source: Source{
					URL: "https://example.com/doc.pdf",
				},
			},
			wantErr: true,
			errMsg:  "document source type cannot be empty",
		},
		{
			name: "missing source URL and path",
			doc: &Document{
				ID:     "test-123",
				Source: Source{Type: "pdf"},
			},
			wantErr: true,
			errMsg:  "document must have either URL or path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
