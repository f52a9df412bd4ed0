package handlers

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"digitdraw/internal/metrics"
	"digitdraw/internal/round"
	"digitdraw/pkg/realtime"
)

// Deps are the shared objects every route needs.
type Deps struct {
	Store   *round.Store
	Clock   round.Clock
	Policy  round.Policy
	Hub     *realtime.Broadcaster[round.Event]
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	Static  fs.FS
	// Ready reports whether the round scheduler is running; nil means always.
	Ready func() bool
}

// NewRouter assembles the HTTP surface. Live streams sit outside the
// request timeout.
func NewRouter(d Deps) chi.Router {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(CountRequests(d.Metrics))
	}

	stateHandler := NewStateHandler(d.Store, d.Clock, d.Policy, log)
	liveHandler := NewLiveHandler(d.Store, d.Clock, d.Hub, d.Metrics, log)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if d.Ready != nil && !d.Ready() {
				writeJSON(w, log, http.StatusServiceUnavailable, map[string]string{"status": "scheduler stopped"})
				return
			}
			writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
		})
		if d.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
		}
		stateHandler.RegisterRoutes(r)
	})
	liveHandler.RegisterRoutes(r)

	if d.Static != nil {
		r.Handle("/*", http.FileServer(http.FS(d.Static)))
	}
	return r
}
