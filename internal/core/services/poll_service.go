package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type pollService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	logger   logrus.FieldLogger
}

func NewPollService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, logger logrus.FieldLogger) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		logger:   logger,
	}
}

// Board lists the active polls and builds their cards one after the other,
// in list order. A poll without options is skipped.
func (s *pollService) Board(ctx context.Context, memory ports.VoteMemory, known ...domain.PollCard) (*domain.Board, error) {
	polls, err := s.pollRepo.ListActive(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error loading polls")
		return nil, fmt.Errorf("%w: %w", domain.ErrPollsUnavailable, err)
	}

	board := &domain.Board{Cards: make([]domain.PollCard, 0, len(polls))}
	for _, poll := range polls {
		if !poll.Votable() {
			s.logger.WithField("poll_id", poll.ID).Warn("Skipping poll without options")
			continue
		}
		if card, ok := knownCard(known, poll.ID); ok {
			board.Cards = append(board.Cards, card)
			continue
		}
		board.Cards = append(board.Cards, s.card(ctx, poll, memory))
	}

	return board, nil
}

func (s *pollService) Card(ctx context.Context, pollID string, memory ports.VoteMemory) (*domain.PollCard, error) {
	poll, err := s.pollRepo.GetActive(ctx, pollID)
	if err != nil {
		return nil, err
	}

	card := s.card(ctx, poll, memory)
	return &card, nil
}

// card never fails: a vote set that cannot be loaded counts as no votes and
// an unreadable marker counts as not voted.
func (s *pollService) card(ctx context.Context, poll *domain.Poll, memory ports.VoteMemory) domain.PollCard {
	log := s.logger.WithField("poll_id", poll.ID)

	votes, err := s.voteRepo.ListByPoll(ctx, poll.ID)
	if err != nil {
		log.WithError(err).Error("Error loading votes")
		votes = nil
	}

	voted, err := memory.HasVoted(poll.ID)
	if err != nil {
		log.WithError(err).Warn("Error reading voted marker")
		voted = false
	}

	return domain.PollCard{
		Poll:  *poll,
		Tally: poll.Tally(votes),
		Voted: voted,
	}
}

func knownCard(known []domain.PollCard, pollID string) (domain.PollCard, bool) {
	for _, card := range known {
		if card.Poll.ID == pollID {
			return card, true
		}
	}
	return domain.PollCard{}, false
}
