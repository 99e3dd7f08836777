package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

type voteService struct {
	polls    ports.PollService
	voteRepo ports.VoteRepository
	logger   logrus.FieldLogger

	// inflight collapses overlapping submissions of one visitor on one poll
	// into a single insert.
	inflight singleflight.Group
}

func NewVoteService(polls ports.PollService, voteRepo ports.VoteRepository, logger logrus.FieldLogger) ports.VoteService {
	return &voteService{
		polls:    polls,
		voteRepo: voteRepo,
		logger:   logger,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.PollCard, error) {
	log := s.logger.WithField("poll_id", input.PollID)

	voted, err := input.Memory.HasVoted(input.PollID)
	if err != nil {
		log.WithError(err).Warn("Error reading voted marker")
	}
	if voted {
		return nil, domain.ErrAlreadyVoted
	}

	if input.OptionIndex == nil {
		return nil, domain.ErrNoOptionSelected
	}

	card, err := s.polls.Card(ctx, input.PollID, input.Memory)
	if err != nil {
		return nil, err
	}

	index := *input.OptionIndex
	if !card.Poll.ValidOption(index) {
		return nil, domain.ErrInvalidOption
	}

	// the insert is shared by every overlapping caller, so it must not be
	// cancelled with the first caller's request
	saveCtx := context.WithoutCancel(ctx)
	key := input.VisitorID + "/" + input.PollID
	inserted, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		return index, s.voteRepo.Save(saveCtx, domain.NewVote(input.PollID, index))
	})
	if err != nil {
		log.WithError(err).Error("Error submitting vote")
		return nil, fmt.Errorf("%w: %w", domain.ErrVoteFailed, err)
	}
	if shared {
		log.Debug("Vote submission shared with an in-flight request")
	}
	index = inserted.(int)

	if err := input.Memory.MarkVoted(input.PollID); err != nil {
		log.WithError(err).Warn("Vote recorded but voted marker could not be stored")
	}

	tally, err := card.Tally.WithVote(index)
	if err != nil {
		return nil, err
	}
	card.Tally = tally
	card.Voted = true

	log.WithField("option_index", index).Info("Vote submitted")
	return card, nil
}
