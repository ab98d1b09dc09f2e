package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paperwatch/paperwatch/internal/keywords"
	"github.com/paperwatch/paperwatch/internal/models"
)

// Options tune a single orchestration pass.
type Options struct {
	// Categories searched per keyword, in order.
	Categories []string
	// SampleSize is how many keywords one run draws from the store.
	SampleSize int
	// MaxMatchesPerKeyword stops the category scan once this many new
	// papers have been found for a keyword.
	MaxMatchesPerKeyword int
}

// Orchestrator drives one search-and-notify pass: sample keywords, query
// the paper index per category, dedupe, summarize, post.
type Orchestrator struct {
	searcher   models.Searcher
	summarizer models.Summarizer
	notifier   models.Notifier
	store      *keywords.Store
	opts       Options
	log        *slog.Logger
}

func New(searcher models.Searcher, summarizer models.Summarizer, notifier models.Notifier, store *keywords.Store, opts Options, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		searcher:   searcher,
		summarizer: summarizer,
		notifier:   notifier,
		store:      store,
		opts:       opts,
		log:        log,
	}
}

// Run samples keywords from the store and searches each in sequence. One
// seen-title set is shared across the whole run, so a paper matched under
// one keyword is not posted again under another.
func (o *Orchestrator) Run(ctx context.Context) error {
	sample, err := o.store.Sample(o.opts.SampleSize)
	if err != nil {
		return fmt.Errorf("sample keywords: %w", err)
	}

	seen := make(map[string]struct{})
	for _, keyword := range sample {
		o.SearchAndNotify(ctx, keyword, seen)
	}
	return nil
}

// SearchAndNotify scans the categories for one keyword, recording every
// newly found title in seen. Search failures skip the category; post and
// summarization failures never abort the pass.
func (o *Orchestrator) SearchAndNotify(ctx context.Context, keyword string, seen map[string]struct{}) {
	var matches []models.Paper

	for _, category := range o.opts.Categories {
		papers, err := o.searcher.Search(ctx, keyword, category)
		if err != nil {
			o.log.Warn("search failed",
				slog.String("keyword", keyword),
				slog.String("category", category),
				slog.Any("err", err),
			)
			continue
		}

		for _, paper := range papers {
			if _, ok := seen[paper.Title]; ok {
				continue
			}
			matches = append(matches, paper)
			seen[paper.Title] = struct{}{}
		}

		if len(matches) >= o.opts.MaxMatchesPerKeyword {
			break
		}
	}

	if len(matches) == 0 {
		divider := strings.Repeat("=", 40)
		o.post(ctx, fmt.Sprintf("%s\nキーワード %s に該当する論文が見つかりませんでした\n%s", divider, keyword, divider))
		return
	}

	for _, paper := range matches {
		text, err := o.summarizer.Summarize(ctx, paper)
		if err != nil {
			// Soft failure: the error becomes the posted message body.
			text = fmt.Sprintf("Error: %v", err)
		}
		o.post(ctx, keyword+": \n"+text)
	}
}

func (o *Orchestrator) post(ctx context.Context, text string) {
	if err := o.notifier.Post(ctx, text); err != nil {
		o.log.Error("post message", slog.Any("err", err))
	}
}
