package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"digitdraw/internal/metrics"
	"digitdraw/internal/round"
	"digitdraw/pkg/realtime"
)

const (
	keepAliveInterval = 25 * time.Second
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
)

// LiveHandler pushes the state to clients whenever a round is revealed or recorded.
type LiveHandler struct {
	store    *round.Store
	clock    round.Clock
	hub      *realtime.Broadcaster[round.Event]
	log      *zap.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
}

func NewLiveHandler(store *round.Store, clock round.Clock, hub *realtime.Broadcaster[round.Event], m *metrics.Metrics, log *zap.Logger) *LiveHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LiveHandler{
		store:   store,
		clock:   clock,
		hub:     hub,
		log:     log.Named("live"),
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Read-only public feed; any origin may subscribe.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.stream)
	r.Get("/ws", h.socket)
}

func (h *LiveHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)
	done := h.track("sse")
	defer done()

	sendState := func(event string) bool {
		payload, err := json.Marshal(buildState(h.clock, h.store))
		if err != nil {
			h.log.Error("marshal state", zap.Error(err))
			return false
		}
		if err := writeSSE(w, event, string(payload)); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !sendState("state") {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub:
			if !ok || !sendState(string(event)) {
				return
			}
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// wsMessage is the envelope written to websocket clients.
type wsMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func (h *LiveHandler) socket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	log := h.log.With(zap.String("client", uuid.NewString()))
	log.Debug("websocket connected", zap.String("remote", r.RemoteAddr))

	sub := h.hub.Subscribe()
	done := h.track("websocket")
	closed := make(chan struct{})

	go h.readPump(conn, closed)
	h.writePump(r.Context(), conn, sub, closed, log)

	h.hub.Unsubscribe(sub)
	done()
	_ = conn.Close()
	log.Debug("websocket disconnected")
}

// readPump discards client frames and signals when the peer goes away.
func (h *LiveHandler) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

func (h *LiveHandler) writePump(ctx context.Context, conn *websocket.Conn, sub chan round.Event, closed <-chan struct{}, log *zap.Logger) {
	ping := time.NewTicker(keepAliveInterval)
	defer ping.Stop()

	send := func(event string) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		msg := wsMessage{Event: event, Data: buildState(h.clock, h.store)}
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("websocket write", zap.Error(err))
			return false
		}
		return true
	}

	if !send("state") {
		return
	}
	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		case <-closed:
			return
		case event, ok := <-sub:
			if !ok || !send(string(event)) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// track counts a live client until the returned func is called.
func (h *LiveHandler) track(transport string) func() {
	if h.metrics == nil {
		return func() {}
	}
	g := h.metrics.LiveSubscribers.WithLabelValues(transport)
	g.Inc()
	return g.Dec
}

func writeSSE(w http.ResponseWriter, event string, data string) error {
	if event != "" {
		if _, err := w.Write([]byte("event: " + event + "\n")); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte("data: " + data + "\n\n")); err != nil {
		return err
	}
	return nil
}
