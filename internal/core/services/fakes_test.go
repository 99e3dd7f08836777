package services

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

type fakePollRepo struct {
	polls   []*domain.Poll
	err     error
	listed  int
	fetched int
}

func (r *fakePollRepo) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	r.listed++
	if r.err != nil {
		return nil, r.err
	}
	return r.polls, nil
}

func (r *fakePollRepo) GetActive(ctx context.Context, id string) (*domain.Poll, error) {
	r.fetched++
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.polls {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPollNotFound
}

type fakeVoteRepo struct {
	mu      sync.Mutex
	votes   map[string][]domain.Vote
	listErr map[string]error
	saveErr error
	order   []string
	saved   []domain.Vote

	// onList and onSave let a test observe or hold a call in flight.
	onList func(pollID string)
	onSave func()
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{
		votes:   make(map[string][]domain.Vote),
		listErr: make(map[string]error),
	}
}

func (r *fakeVoteRepo) ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error) {
	r.mu.Lock()
	r.order = append(r.order, pollID)
	err := r.listErr[pollID]
	votes := append([]domain.Vote(nil), r.votes[pollID]...)
	onList := r.onList
	r.mu.Unlock()

	if onList != nil {
		onList(pollID)
	}
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *fakeVoteRepo) Save(ctx context.Context, vote *domain.Vote) error {
	if r.onSave != nil {
		r.onSave()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, *vote)
	r.votes[vote.PollID] = append(r.votes[vote.PollID], *vote)
	return nil
}

func (r *fakeVoteRepo) listCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *fakeVoteRepo) savedVotes() []domain.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Vote(nil), r.saved...)
}

type fakeMemory struct {
	mu     sync.Mutex
	voted  map[string]bool
	hasErr error
}

func newFakeMemory(voted ...string) *fakeMemory {
	m := &fakeMemory{voted: make(map[string]bool)}
	for _, id := range voted {
		m.voted[id] = true
	}
	return m
}

func (m *fakeMemory) HasVoted(pollID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasErr != nil {
		return false, m.hasErr
	}
	return m.voted[pollID], nil
}

func (m *fakeMemory) MarkVoted(pollID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voted[pollID] = true
	return nil
}

type fakeSuggestionRepo struct {
	saved []domain.Suggestion
	err   error
}

func (r *fakeSuggestionRepo) Save(ctx context.Context, s *domain.Suggestion) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, *s)
	return nil
}

func colorPoll() *domain.Poll {
	return &domain.Poll{ID: "p1", Question: "Color?", Options: []string{"Red", "Blue"}, IsActive: true}
}

func colorVotes() []domain.Vote {
	return []domain.Vote{
		{PollID: "p1", OptionIndex: 0},
		{PollID: "p1", OptionIndex: 0},
		{PollID: "p1", OptionIndex: 1},
	}
}

func intPtr(i int) *int {
	return &i
}
