package models

import (
	"context"
	"time"
)

// Paper is a single arXiv search result.
type Paper struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Abstract    string    `json:"abstract"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// Searcher queries the paper index for the most recent submission matching
// a keyword within a single category.
type Searcher interface {
	Search(ctx context.Context, keyword, category string) ([]Paper, error)
}

// Summarizer turns a paper into a short formatted summary.
type Summarizer interface {
	Summarize(ctx context.Context, paper Paper) (string, error)
}

// Notifier posts a text message to the chat channel.
type Notifier interface {
	Post(ctx context.Context, text string) error
}
