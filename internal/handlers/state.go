package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"digitdraw/internal/round"
	"digitdraw/internal/viewmodel"
	"digitdraw/internal/views"
)

const dateLayout = "2006-01-02"

// StateHandler serves read-only snapshots of the round state.
type StateHandler struct {
	store  *round.Store
	clock  round.Clock
	policy round.Policy
	log    *zap.Logger
}

func NewStateHandler(store *round.Store, clock round.Clock, policy round.Policy, log *zap.Logger) *StateHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateHandler{store: store, clock: clock, policy: policy, log: log}
}

func (h *StateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.state)
	r.Get("/api/result", h.result)
	r.Get("/history", h.historyPage)
}

func (h *StateHandler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, buildState(h.clock, h.store))
}

func (h *StateHandler) result(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	pd := round.ComputePeriod(now)
	snap := h.store.Snapshot()
	sec := round.Local(now).Second()
	number := any(viewmodel.NumberPlaceholder)
	if snap.HasCurrent && snap.Current.Period == pd.Period {
		number = snap.Current.Number
	}
	writeJSON(w, h.log, http.StatusOK, viewmodel.Result{
		Period:  pd.Period,
		Number:  number,
		Preview: sec >= h.policy.RevealAt,
		Seconds: sec,
		History: toHistoryEntries(snap.History),
	})
}

func (h *StateHandler) historyPage(w http.ResponseWriter, r *http.Request) {
	state := buildState(h.clock, h.store)
	number := viewmodel.NumberPlaceholder
	if n, ok := state.Number.(int); ok {
		number = strconv.Itoa(n)
	}
	render(w, r, h.log, views.HistoryPage(viewmodel.HistoryPage{
		Title:     "Digit Draw",
		Date:      state.Date,
		Time:      state.Time,
		Period:    state.Period,
		Countdown: state.Countdown,
		Number:    number,
		Policy:    h.policy.Name,
		Entries:   state.History,
	}))
}

// buildState recomputes the period for now and pairs it with the store
// snapshot. Date is the gaming day the period belongs to.
func buildState(clock round.Clock, store *round.Store) viewmodel.State {
	now := round.Local(clock.Now())
	pd := round.ComputePeriod(now)
	snap := store.Snapshot()
	return viewmodel.State{
		Date:      pd.GameDate.Format(dateLayout),
		Time:      now.Format(round.TimeLayout),
		Countdown: pd.SecondsLeft,
		Period:    pd.Period,
		Number:    displayNumber(snap),
		History:   toHistoryEntries(snap.History),
	}
}

func displayNumber(snap round.Snapshot) any {
	if !snap.HasCurrent {
		return viewmodel.NumberPlaceholder
	}
	return snap.Current.Number
}

func toHistoryEntries(rounds []round.Round) []viewmodel.HistoryEntry {
	out := make([]viewmodel.HistoryEntry, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, viewmodel.HistoryEntry{
			Period: r.Period,
			Number: r.Number,
			Time:   r.Time,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("encode response", zap.Error(err))
	}
}
