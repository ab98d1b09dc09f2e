package slack_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwatch/paperwatch/internal/keywords"
	"github.com/paperwatch/paperwatch/internal/slack"
)

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Post(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func newDispatcher(store *keywords.Store) (*slack.Dispatcher, *stubNotifier) {
	notifier := &stubNotifier{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return slack.NewDispatcher(store, notifier, log), notifier
}

func TestNowlistRepliesWithKeywordsAndDoesNotMutate(t *testing.T) {
	store := keywords.New([]string{"AI", "LLM"})
	d, notifier := newDispatcher(store)

	d.HandleMention(context.Background(), "@paperwatch nowlist")

	require.Equal(t, []string{"AI", "LLM"}, store.List())
	require.Len(t, notifier.messages, 1)
	require.Equal(t, "現在のキーワードリスト:\nAI\nLLM", notifier.messages[0])
}

func TestNowlistIsCaseInsensitive(t *testing.T) {
	store := keywords.New([]string{"AI"})
	d, notifier := newDispatcher(store)

	d.HandleMention(context.Background(), "@paperwatch NowList")

	require.Equal(t, []string{"AI"}, store.List())
	require.Len(t, notifier.messages, 1)
}

func TestMentionAddsKeyword(t *testing.T) {
	store := keywords.New([]string{"AI"})
	d, notifier := newDispatcher(store)

	d.HandleMention(context.Background(), "@paperwatch machine learning")

	require.Equal(t, []string{"AI", "machine learning"}, store.List())
	require.Len(t, notifier.messages, 1)
	require.Equal(t, "キーワード 'machine learning' をリストに追加しました。", notifier.messages[0])
}

func TestMentionCollapsesWhitespace(t *testing.T) {
	store := keywords.New(nil)
	d, _ := newDispatcher(store)

	d.HandleMention(context.Background(), "@paperwatch   graph   neural  networks ")

	require.Equal(t, []string{"graph neural networks"}, store.List())
}

func TestBareMentionAddsEmptyKeyword(t *testing.T) {
	store := keywords.New(nil)
	d, notifier := newDispatcher(store)

	d.HandleMention(context.Background(), "@paperwatch")

	require.Equal(t, []string{""}, store.List())
	require.Len(t, notifier.messages, 1)
}
