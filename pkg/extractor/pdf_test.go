package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextFromPDF(t *testing.T) {
	tests := []struct {
		name        string
		content     []byte
		expectError bool
	}{
		{
			name:        "empty content",
			content:     []byte{},
			expectError: true,
		},
		{
			name:        "invalid PDF content",
			content:     []byte("This is not a PDF file"),
			expectError: true,
		},
		{
			name:        "nil content",
			content:     nil,
			expectError: true,
		},
	}

	extractor := &PDFExtractor{}
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, metadata, err := extractor.Extract(ctx, tt.content)
			
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, text)
				// Metadata may still be returned even on error
				assert.Contains(t, metadata, "type")
				assert.Equal(t, "pdf", metadata["type"])
				
				// Check error type
				_, ok := err.(*PDFProcessingError)
				assert.True(t, ok, "Expected PDFProcessingError, got %T", err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, text)
				assert.NotEmpty(t, metadata)
			}
		})
	}
}

// minimalPDF builds a one-page PDF with an empty content stream, the shape
// a scanned-image document has after its raster data is stripped.
func minimalPDF() []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")

	var offsets []int
	obj := func(s string) {
		offsets = append(offsets, b.Len())
		b.WriteString(s)
	}
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	obj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>\nendobj\n")
	obj("4 0 obj\n<< /Length 0 >>\nstream\nendstream\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 5\n0000000000 65535 f \n")
	for _, off := range offsets {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	b.WriteString("trailer\n<< /Size 5 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(fmt.Sprintf("%d\n", xref))
	b.WriteString("%%EOF\n")
	return b.Bytes()
}

func TestExtract_ScannedPDFReturnsErrNoText(t *testing.T) {
	extractor := &PDFExtractor{}

	text, metadata, err := extractor.Extract(context.Background(), minimalPDF())

	assert.True(t, errors.Is(err, ErrNoText), "expected ErrNoText, got %v", err)
	assert.Empty(t, text)
	assert.Equal(t, "empty", metadata["status"])
	assert.Equal(t, "1", metadata["pages"])
}

func TestPDFExtractor_ErrorTypes(t *testing.T) {
	// Test PDFProcessingError
	err := &PDFProcessingError{Message: "test PDF processing"}
	assert.Equal(t, "test PDF processing", err.Error())
}

func TestPDFExtractor_ContentSizeValidation(t *testing.T) {
	extractor := &PDFExtractor{}
	ctx := context.Background()

	// Test with very large content (simulated)
	largeContent := make([]byte, 1024) // 1KB
	// Fill with invalid PDF header
	copy(largeContent, []byte("Not a PDF"))

	text, metadata, err := extractor.Extract(ctx, largeContent)
	
	assert.Error(t, err)
	assert.Empty(t, text)
	// Metadata may still be returned even on error
	assert.Contains(t, metadata, "type")
	assert.Equal(t, "pdf", metadata["type"])
	
	// Should be a PDFProcessingError due to invalid format
	_, ok := err.(*PDFProcessingError)
	assert.True(t, ok)
}