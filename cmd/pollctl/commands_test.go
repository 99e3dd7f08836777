package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollboard/internal/adapters/memory/bunt"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

type stubPolls struct {
	polls []*domain.Poll
	err   error
}

func (s *stubPolls) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	return s.polls, s.err
}

func (s *stubPolls) GetActive(ctx context.Context, id string) (*domain.Poll, error) {
	for _, p := range s.polls {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPollNotFound
}

type stubVotes struct {
	votes   []domain.Vote
	saved   []domain.Vote
	saveErr error
}

func (s *stubVotes) ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error) {
	return s.votes, nil
}

func (s *stubVotes) Save(ctx context.Context, vote *domain.Vote) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, *vote)
	return nil
}

type stubSuggestions struct {
	saved []domain.Suggestion
	err   error
}

func (s *stubSuggestions) Save(ctx context.Context, suggestion *domain.Suggestion) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, *suggestion)
	return nil
}

type fixture struct {
	ui          *cli.MockUi
	polls       *stubPolls
	votes       *stubVotes
	suggestions *stubSuggestions
	memory      *bunt.Memory
	env         *environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()

	memory, err := bunt.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { memory.Close() })

	f := &fixture{
		ui: cli.NewMockUi(),
		polls: &stubPolls{polls: []*domain.Poll{{
			ID:        "p1",
			Question:  "Color?",
			Options:   []string{"Red", "Blue"},
			IsActive:  true,
			CreatedAt: time.Now().Add(-2 * time.Hour),
		}}},
		votes: &stubVotes{votes: []domain.Vote{
			*domain.NewVote("p1", 0), *domain.NewVote("p1", 0), *domain.NewVote("p1", 1),
		}},
		suggestions: &stubSuggestions{},
		memory:      memory,
	}

	pollService := services.NewPollService(f.polls, f.votes, logger)
	f.env = &environment{
		ctx:         context.Background(),
		ui:          f.ui,
		polls:       pollService,
		votes:       services.NewVoteService(pollService, f.votes, logger),
		suggestions: services.NewSuggestionService(f.suggestions, logger),
		memory:      memory,
		visitorID:   "test",
	}
	return f
}

func (f *fixture) run(t *testing.T, name string, args ...string) int {
	t.Helper()
	cmd, err := f.env.commands()[name]()
	require.NoError(t, err)
	return cmd.Run(args)
}

func TestPolls_Ballot(t *testing.T) {
	f := newFixture(t)

	code := f.run(t, "polls")

	require.Equal(t, 0, code)
	out := f.ui.OutputWriter.String()
	assert.Contains(t, out, "Color?  [p1, created 2 hours ago]")
	assert.Contains(t, out, "  1) Red")
	assert.Contains(t, out, "  2) Blue")
	assert.NotContains(t, out, msgThanks)
}

func TestPolls_Results(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.memory.MarkVoted("p1"))

	code := f.run(t, "polls")

	require.Equal(t, 0, code)
	out := f.ui.OutputWriter.String()
	assert.Contains(t, out, msgThanks)
	assert.Contains(t, out, "2 votes")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "1 vote ")
	assert.Contains(t, out, "33%")
	assert.NotContains(t, out, "1) Red")
}

func TestPolls_EmptyAndFailure(t *testing.T) {
	f := newFixture(t)
	f.polls.polls = nil
	assert.Equal(t, 0, f.run(t, "polls"))
	assert.Contains(t, f.ui.OutputWriter.String(), msgNoPolls)

	f = newFixture(t)
	f.polls.err = errors.New("connection refused")
	assert.Equal(t, 1, f.run(t, "polls"))
	assert.Contains(t, f.ui.ErrorWriter.String(), msgPollsUnavailable)
}

func TestVote(t *testing.T) {
	f := newFixture(t)

	code := f.run(t, "vote", "p1", "2")

	require.Equal(t, 0, code)
	require.Len(t, f.votes.saved, 1)
	assert.Equal(t, 1, f.votes.saved[0].OptionIndex)

	voted, err := f.memory.HasVoted("p1")
	require.NoError(t, err)
	assert.True(t, voted)

	out := f.ui.OutputWriter.String()
	assert.Contains(t, out, msgThanks)
	assert.Equal(t, 2, strings.Count(out, "50%"))
}

func TestVote_AsksForOption(t *testing.T) {
	f := newFixture(t)
	f.ui.InputReader = strings.NewReader("1\n")

	code := f.run(t, "vote", "p1")

	require.Equal(t, 0, code)
	require.Len(t, f.votes.saved, 1)
	assert.Equal(t, 0, f.votes.saved[0].OptionIndex)
}

func TestVote_NoSelection(t *testing.T) {
	f := newFixture(t)
	f.ui.InputReader = strings.NewReader("\n")

	code := f.run(t, "vote", "p1")

	assert.Equal(t, 1, code)
	assert.Contains(t, f.ui.ErrorWriter.String(), msgSelectOption)
	assert.Empty(t, f.votes.saved)

	voted, err := f.memory.HasVoted("p1")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestVote_Failures(t *testing.T) {
	tests := map[string]struct {
		args    []string
		saveErr error
		voted   bool
		message string
	}{
		"out of range":  {args: []string{"p1", "3"}, message: msgInvalidOption},
		"not a number":  {args: []string{"p1", "blue"}, message: msgInvalidOption},
		"unknown poll":  {args: []string{"p9", "1"}, message: msgPollNotFound},
		"already voted": {args: []string{"p1", "1"}, voted: true, message: msgAlreadyVoted},
		"insert failed": {args: []string{"p1", "1"}, saveErr: errors.New("503"), message: msgVoteFailed},
		"no arguments":  {args: nil, message: "Usage: pollctl vote"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.votes.saveErr = tt.saveErr
			if tt.voted {
				require.NoError(t, f.memory.MarkVoted("p1"))
			}

			code := f.run(t, "vote", tt.args...)

			assert.Equal(t, 1, code)
			assert.Contains(t, f.ui.ErrorWriter.String(), tt.message)
			assert.Empty(t, f.votes.saved)
		})
	}
}

func TestSuggest(t *testing.T) {
	f := newFixture(t)

	code := f.run(t, "suggest", "-message", "Add dark mode")

	require.Equal(t, 0, code)
	require.Len(t, f.suggestions.saved, 1)
	assert.Equal(t, domain.Suggestion{Message: "Add dark mode"}, f.suggestions.saved[0])
	assert.Contains(t, f.ui.OutputWriter.String(), msgSuggestionSent)
}

func TestSuggest_Failures(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 1, f.run(t, "suggest", "-name", "Ana", "-message", "  "))
	assert.Contains(t, f.ui.ErrorWriter.String(), msgEmptyMessage)
	assert.Empty(t, f.suggestions.saved)

	f = newFixture(t)
	f.suggestions.err = errors.New("timeout")
	assert.Equal(t, 1, f.run(t, "suggest", "-message", "Add dark mode"))
	assert.Contains(t, f.ui.ErrorWriter.String(), msgSuggestionFailed)
}

func TestVoted(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 0, f.run(t, "vote", "p1", "1"))

	code := f.run(t, "voted")

	require.Equal(t, 0, code)
	assert.Contains(t, f.ui.OutputWriter.String(), "p1\n")
}
