package integration

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/vncsmyrnk/pollboard/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollboard/internal/adapters/status"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

type testApp struct {
	db     *sqlx.DB
	server *httptest.Server
	client *http.Client
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	db := setupDB(t)
	logger, _ := test.NewNullLogger()

	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	suggestionRepo := repo.NewSuggestionRepository(db)

	pollSvc := services.NewPollService(pollRepo, voteRepo, logger)
	voteSvc := services.NewVoteService(pollSvc, voteRepo, logger)
	suggestionSvc := services.NewSuggestionService(suggestionRepo, logger)

	statuses := status.NewBoard(status.ClearAfter)
	metrics := handler.NewMetrics()
	renderer := handler.NewRenderer(pollSvc, statuses, metrics, logger)
	router := handler.NewHandler(handler.RouterConfig{
		Polls:       handler.NewPollHandler(voteSvc, renderer, metrics, logger),
		Suggestions: handler.NewSuggestionHandler(suggestionSvc, statuses, renderer, metrics),
		Metrics:     metrics,
		Logger:      logger,
		RateLimit:   100,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{db: db, server: server, client: &http.Client{Jar: jar}}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (a *testApp) count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.Get(&n, query, args...))
	return n
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestVoteFlow(t *testing.T) {
	app := setupTestApp(t)
	pollID := seedPoll(t, app.db, "Color?", []string{"Red", "Blue"}, true, time.Now().Add(-time.Hour))
	seedVotes(t, app.db, pollID, 0, 0, 1)

	code, body := app.get(t, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Color?")
	assert.Contains(t, body, "Submit Vote")

	code, body = app.post(t, "/polls/"+pollID+"/votes", url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, "Please select an option")
	assert.Equal(t, 3, app.count(t, `SELECT count(*) FROM poll_votes WHERE poll_id = $1`, pollID))

	code, body = app.post(t, "/polls/"+pollID+"/votes", url.Values{"option": {"1"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Thank you for voting!")
	assert.Equal(t, 2, strings.Count(body, "2 votes (50%)"))
	assert.Equal(t, 4, app.count(t, `SELECT count(*) FROM poll_votes WHERE poll_id = $1`, pollID))

	code, body = app.get(t, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Thank you for voting!")
	assert.NotContains(t, body, "Submit Vote")

	code, _ = app.post(t, "/polls/"+pollID+"/votes", url.Values{"option": {"0"}})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, 4, app.count(t, `SELECT count(*) FROM poll_votes WHERE poll_id = $1`, pollID))
}

func TestSuggestionFlow(t *testing.T) {
	app := setupTestApp(t)

	code, body := app.post(t, "/suggestions", url.Values{"message": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, "Please enter your suggestion")
	assert.Equal(t, 0, app.count(t, `SELECT count(*) FROM suggestions`))

	// the client follows the redirect back to the page
	code, body = app.post(t, "/suggestions", url.Values{"message": {"Add dark mode"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Thank you! Your suggestion has been submitted successfully.")
	assert.Contains(t, body, "No active polls at the moment. Check back soon!")
	assert.Equal(t, 1, app.count(t, `SELECT count(*) FROM suggestions WHERE name = '' AND email = '' AND message = 'Add dark mode'`))
}
