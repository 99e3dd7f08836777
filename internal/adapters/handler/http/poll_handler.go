package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/adapters/memory/cookie"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type PollHandler struct {
	votes    ports.VoteService
	renderer *Renderer
	metrics  *Metrics
	logger   logrus.FieldLogger
}

func NewPollHandler(votes ports.VoteService, renderer *Renderer, metrics *Metrics, logger logrus.FieldLogger) *PollHandler {
	return &PollHandler{
		votes:    votes,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

type voteForm struct {
	Option string `schema:"option"`
}

func (h *PollHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, r, http.StatusOK, pageState{memory: cookie.New(w, r)})
}

func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")
	memory := cookie.New(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	var form voteForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.VoteInput{
		VisitorID: visitorFrom(r.Context()),
		PollID:    pollID,
		Memory:    memory,
	}
	state := pageState{memory: memory, alertPoll: pollID}

	if form.Option != "" {
		index, err := strconv.Atoi(form.Option)
		if err != nil {
			h.metrics.votes.WithLabelValues(resultRejected).Inc()
			state.alert = msgInvalidOption
			h.renderer.render(w, r, http.StatusUnprocessableEntity, state)
			return
		}
		input.OptionIndex = &index
	}

	card, err := h.votes.Vote(r.Context(), input)
	if err != nil {
		code := http.StatusInternalServerError
		result := resultRejected
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			code = http.StatusConflict
		case errors.Is(err, domain.ErrNoOptionSelected):
			code = http.StatusUnprocessableEntity
			state.alert = msgSelectOption
		case errors.Is(err, domain.ErrInvalidOption):
			code = http.StatusUnprocessableEntity
			state.alert = msgInvalidOption
		case errors.Is(err, domain.ErrPollNotFound):
			code = http.StatusNotFound
			state.alert = msgPollNotFound
		default:
			result = resultFailed
			state.alert = msgVoteFailed
		}
		h.metrics.votes.WithLabelValues(result).Inc()
		h.renderer.render(w, r, code, state)
		return
	}

	h.metrics.votes.WithLabelValues(resultSuccess).Inc()
	state.card = card
	h.renderer.render(w, r, http.StatusOK, state)
}
