package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/inbox-triage/internal/transport/middleware"
)

// NewRouter assembles the HTTP surface. Every endpoint except /healthz
// sits behind the shared-key check; method-qualified patterns make the
// mux answer 405 for wrong verbs on its own.
func NewRouter(
	actions *ActionHandler,
	items *InboxHandler,
	digests *DigestHandler,
	health *HealthHandler,
	sharedKey string,
	logger *slog.Logger,
) http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("GET /action/move", actions.Move)
	protected.HandleFunc("POST /action/move", actions.Move)
	protected.HandleFunc("GET /action/undo", actions.Undo)
	protected.HandleFunc("GET /confirm", actions.Confirm)
	protected.HandleFunc("POST /action/task/update", actions.Apply)
	protected.HandleFunc("GET /inbox", items.List)
	protected.HandleFunc("POST /inbox", items.Create)
	protected.HandleFunc("POST /inbox/email", items.CreateFromEmail)
	protected.HandleFunc("GET /digest", digests.Preview)
	protected.HandleFunc("POST /digest/send", digests.Send)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", health.Live)
	mux.Handle("/", middleware.SharedKey(sharedKey)(protected))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
	)(mux)
}
