package http

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Polls       *PollHandler
	Suggestions *SuggestionHandler
	Metrics     *Metrics
	Logger      logrus.FieldLogger
	// RateLimit is the number of form posts allowed per second and client.
	RateLimit float64
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: cfg.Logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	lmt := tollbooth.NewLimiter(cfg.RateLimit, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr"})
	lmt.SetMessage("Too many submissions. Please wait a moment and try again.")
	limited := func(next http.HandlerFunc) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(gziphandler.GzipHandler)
		r.Use(Visitor)

		r.Get("/", cfg.Polls.Page)
		r.Method(http.MethodPost, "/polls/{id}/votes", limited(cfg.Polls.Vote))
		r.Method(http.MethodPost, "/suggestions", limited(cfg.Suggestions.Submit))
	})

	return r
}
