package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

func render(w http.ResponseWriter, r *http.Request, log *zap.Logger, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		log.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
