package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFProcessingError represents a non-retryable PDF processing error
type PDFProcessingError struct {
	Message string
}

func (e *PDFProcessingError) Error() string {
	return e.Message
}

// ErrNoText marks a structurally valid PDF without a text layer, the
// scanned-image case. Callers record these as empty documents rather than
// extraction failures.
var ErrNoText = &PDFProcessingError{Message: "PDF contains no extractable text"}

// PDFExtractor handles PDF file extraction
type PDFExtractor struct {
	MaxPages int // 0 means no limit
}

// Extract extracts text and metadata from PDF content
func (p *PDFExtractor) Extract(ctx context.Context, content []byte) (string, map[string]string, error) {
	metadata := map[string]string{
		"type": "pdf",
		"size": fmt.Sprintf("%d", len(content)),
	}

	// Check if it's actually a PDF
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return "", metadata, &PDFProcessingError{
			Message: fmt.Sprintf("not a valid PDF file - content starts with: %q", string(content[:min(20, len(content))])),
		}
	}

	reader := bytes.NewReader(content)
	doc, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", metadata, &PDFProcessingError{
			Message: fmt.Sprintf("failed to parse PDF: %v", err),
		}
	}

	var textBuilder strings.Builder
	var pageCount int

	for i := 1; i <= doc.NumPage(); i++ {
		pageCount++

		if p.MaxPages > 0 && pageCount > p.MaxPages {
			break
		}

		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken font maps are skipped, the rest still count
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text := strings.TrimSpace(textBuilder.String())

	metadata["pages"] = fmt.Sprintf("%d", doc.NumPage())
	metadata["extracted_pages"] = fmt.Sprintf("%d", pageCount)
	metadata["text_length"] = fmt.Sprintf("%d", len(text))

	// Scanned-image PDFs come back empty; the caller still writes the empty
	// sidecar so the quality report can classify the document.
	if text == "" {
		metadata["status"] = "empty"
		return "", metadata, ErrNoText
	}

	metadata["status"] = "success"
	return text, metadata, nil
}
