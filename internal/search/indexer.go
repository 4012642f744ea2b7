// Package search is the outbound boundary to the full-text indexer. The
// indexer itself is an external collaborator; this core only hands it
// rendered documents in their plain-text form.
package search

import (
	"context"

	"github.com/rs/zerolog"
)

// Document is what the indexer receives after a content document save.
// PlainText is the HTML-stripped form of the rendered content, never the raw
// markup.
type Document struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	PlainText string   `json:"plain_text"`
	Tags      []string `json:"tags"`
	Slug      string   `json:"slug"`
}

// Indexer consumes documents for full-text indexing.
type Indexer interface {
	Index(ctx context.Context, doc Document) error
}

// LogIndexer records index requests in the structured log. It stands in for
// the real indexer in deployments without one.
type LogIndexer struct {
	log zerolog.Logger
}

// NewLogIndexer creates a log-backed indexer
func NewLogIndexer(log zerolog.Logger) *LogIndexer {
	return &LogIndexer{log: log.With().Str("component", "indexer").Logger()}
}

// Index logs the document
func (i *LogIndexer) Index(_ context.Context, doc Document) error {
	i.log.Info().
		Int64("id", doc.ID).
		Str("slug", doc.Slug).
		Str("title", doc.Title).
		Int("text_len", len(doc.PlainText)).
		Msg("Document indexed")
	return nil
}
