package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/adapters/status"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

const (
	msgNoPolls          = "No active polls at the moment. Check back soon!"
	msgPollsUnavailable = "Failed to load polls. Please try again later."
	msgSelectOption     = "Please select an option"
	msgInvalidOption    = "That option is not part of this poll."
	msgPollNotFound     = "This poll is no longer available."
	msgVoteFailed       = "Failed to submit vote. Please try again."
	msgEmptyMessage     = "Please enter your suggestion"
	msgSuggestionSent   = "Thank you! Your suggestion has been submitted successfully."
	msgSuggestionFailed = "Failed to submit suggestion. Please try again."
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{"age": humanize.Time}).
		ParseFS(templateFS, "templates/*.html"),
)

type suggestionForm struct {
	Name    string `schema:"name"`
	Email   string `schema:"email"`
	Message string `schema:"message"`
}

type cardView struct {
	domain.PollCard
	Rows  []domain.OptionResult
	Alert string
}

type pageView struct {
	NoPolls     string
	LoadFailed  string
	Cards       []cardView
	Status      *status.Status
	Form        suggestionForm
	StatusDelay int64
}

// pageState is what a handler wants to change on the page it renders.
type pageState struct {
	memory ports.VoteMemory
	// card is used for its poll instead of reading the poll's votes again.
	card *domain.PollCard
	// alert is shown on the card of alertPoll.
	alert     string
	alertPoll string
	form      suggestionForm
}

// Renderer loads the board for a visitor and renders the single page.
type Renderer struct {
	polls    ports.PollService
	statuses *status.Board
	metrics  *Metrics
	logger   logrus.FieldLogger
}

func NewRenderer(polls ports.PollService, statuses *status.Board, metrics *Metrics, logger logrus.FieldLogger) *Renderer {
	return &Renderer{
		polls:    polls,
		statuses: statuses,
		metrics:  metrics,
		logger:   logger,
	}
}

func (rd *Renderer) render(w http.ResponseWriter, r *http.Request, code int, state pageState) {
	view := pageView{
		NoPolls:     msgNoPolls,
		Form:        state.form,
		StatusDelay: status.ClearAfter.Milliseconds(),
	}

	var known []domain.PollCard
	if state.card != nil {
		known = append(known, *state.card)
	}

	board, err := rd.polls.Board(r.Context(), state.memory, known...)
	if err != nil {
		rd.metrics.boardLoads.WithLabelValues(resultFailed).Inc()
		view.LoadFailed = msgPollsUnavailable
	} else {
		rd.metrics.boardLoads.WithLabelValues(resultSuccess).Inc()
		view.Cards = cardViews(board, state)
	}

	if s, ok := rd.statuses.Current(visitorFrom(r.Context())); ok {
		view.Status = &s
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		rd.logger.WithError(err).Error("Error rendering page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.WithError(err).Debug("Error writing page")
	}
}

func cardViews(board *domain.Board, state pageState) []cardView {
	views := make([]cardView, 0, len(board.Cards))
	for _, card := range board.Cards {
		v := cardView{PollCard: card}
		if card.Voted {
			v.Rows = card.Results()
		}
		if card.Poll.ID == state.alertPoll {
			v.Alert = state.alert
		}
		views = append(views, v)
	}
	return views
}
