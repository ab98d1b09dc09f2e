package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// Runner fires one search-and-notify pass.
type Runner interface {
	Run(ctx context.Context) error
}

// Dispatcher handles inbound mention text.
type Dispatcher interface {
	HandleMention(ctx context.Context, text string)
}

// Server exposes the run trigger and the Slack events callback.
type Server struct {
	log           *slog.Logger
	runner        Runner
	dispatcher    Dispatcher
	signingSecret string
}

func New(log *slog.Logger, runner Runner, dispatcher Dispatcher, signingSecret string) *Server {
	return &Server{
		log:           log,
		runner:        runner,
		dispatcher:    dispatcher,
		signingSecret: signingSecret,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/run", s.handleRun)
	r.Post("/slack/events", s.handleEvents)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRun triggers one orchestration pass. The response is always a
// success payload; notification failures are internal and already logged.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Run(r.Context()); err != nil {
		s.log.Error("run failed", slog.Any("err", err))
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "search completed"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	if s.signingSecret != "" {
		if err := verifySignature(r.Header, s.signingSecret, body); err != nil {
			s.log.Warn("signature verification failed", slog.Any("err", err))
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "parse event", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			http.Error(w, "parse challenge", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge.Challenge))

	case slackevents.CallbackEvent:
		if mention, ok := event.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
			// Fire-and-forget: the request returns before the command is
			// processed, and handler failures are only logged.
			go func(text string) {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				s.dispatcher.HandleMention(ctx, text)
			}(mention.Text)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))

	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

func verifySignature(header http.Header, secret string, body []byte) error {
	verifier, err := slackapi.NewSecretsVerifier(header, secret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
