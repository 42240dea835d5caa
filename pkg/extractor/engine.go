package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

type Engine struct {
	extractors map[string]Extractor
}

type Extractor interface {
	Extract(ctx context.Context, content []byte) (string, map[string]string, error)
}

func NewEngine() *Engine {
	return &Engine{
		extractors: map[string]Extractor{
			"text": &TextExtractor{},
			"txt":  &TextExtractor{},
			"pdf":  &PDFExtractor{MaxPages: 0},
		},
	}
}

func (e *Engine) Extract(ctx context.Context, content []byte, contentType string) (string, map[string]string, error) {
	extractor, ok := e.extractors[strings.ToLower(contentType)]
	if !ok {
		// Default to text extraction
		extractor = e.extractors["text"]
	}

	return extractor.Extract(ctx, content)
}

// TextExtractor handles plain text files
type TextExtractor struct{}

func (t *TextExtractor) Extract(ctx context.Context, content []byte) (string, map[string]string, error) {
	text := string(content)
	metadata := map[string]string{
		"type":       "text",
		"characters": fmt.Sprintf("%d", len(text)),
		"lines":      fmt.Sprintf("%d", bytes.Count(content, []byte("\n"))+1),
	}
	return text, metadata, nil
}
