package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paperwatch/paperwatch/internal/keywords"
	"github.com/paperwatch/paperwatch/internal/models"
)

// Dispatcher interprets mention text as bot commands: "nowlist" replies
// with the current keyword list, anything else registers a new keyword.
type Dispatcher struct {
	store    *keywords.Store
	notifier models.Notifier
	log      *slog.Logger
}

func NewDispatcher(store *keywords.Store, notifier models.Notifier, log *slog.Logger) *Dispatcher {
	return &Dispatcher{store: store, notifier: notifier, log: log}
}

// HandleMention processes the raw mention text, which still carries the
// bot's own name as its first token.
func (d *Dispatcher) HandleMention(ctx context.Context, text string) {
	if strings.Contains(strings.ToLower(text), "nowlist") {
		list := strings.Join(d.store.List(), "\n")
		d.post(ctx, "現在のキーワードリスト:\n"+list)
		return
	}

	// Drop the leading mention token and re-join the rest with single
	// spaces. An empty remainder is stored as-is.
	keyword := ""
	if fields := strings.Fields(text); len(fields) > 1 {
		keyword = strings.Join(fields[1:], " ")
	}

	d.store.Add(keyword)
	d.post(ctx, fmt.Sprintf("キーワード '%s' をリストに追加しました。", keyword))
}

func (d *Dispatcher) post(ctx context.Context, text string) {
	if err := d.notifier.Post(ctx, text); err != nil {
		d.log.Error("post message", slog.Any("err", err))
	}
}
