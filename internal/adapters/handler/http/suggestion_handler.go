package http

import (
	"errors"
	"net/http"

	"github.com/vncsmyrnk/pollboard/internal/adapters/memory/cookie"
	"github.com/vncsmyrnk/pollboard/internal/adapters/status"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type SuggestionHandler struct {
	service  ports.SuggestionService
	statuses *status.Board
	renderer *Renderer
	metrics  *Metrics
}

func NewSuggestionHandler(service ports.SuggestionService, statuses *status.Board, renderer *Renderer, metrics *Metrics) *SuggestionHandler {
	return &SuggestionHandler{
		service:  service,
		statuses: statuses,
		renderer: renderer,
		metrics:  metrics,
	}
}

func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	var form suggestionForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	visitor := visitorFrom(r.Context())
	err := h.service.Submit(r.Context(), ports.SuggestionInput{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	})
	if err == nil {
		h.metrics.suggestions.WithLabelValues(resultSuccess).Inc()
		h.statuses.Show(visitor, status.Success, msgSuggestionSent)
		http.Redirect(w, r, "/#suggest", http.StatusSeeOther)
		return
	}

	code := http.StatusInternalServerError
	if errors.Is(err, domain.ErrEmptyMessage) {
		code = http.StatusUnprocessableEntity
		h.metrics.suggestions.WithLabelValues(resultRejected).Inc()
		h.statuses.Show(visitor, status.Error, msgEmptyMessage)
	} else {
		h.metrics.suggestions.WithLabelValues(resultFailed).Inc()
		h.statuses.Show(visitor, status.Error, msgSuggestionFailed)
	}

	h.renderer.render(w, r, code, pageState{memory: cookie.New(w, r), form: form})
}
