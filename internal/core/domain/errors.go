package domain

import "github.com/pkg/errors"

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrPollsUnavailable = errors.New("failed to load polls")
	ErrInvalidOption    = errors.New("invalid option for this poll")
	ErrNoOptionSelected = errors.New("no option selected")
	ErrAlreadyVoted     = errors.New("visitor has already voted on this poll")
	ErrPendingVote      = errors.New("tally already carries a pending vote")
	ErrVoteFailed       = errors.New("failed to submit vote")
	ErrEmptyMessage     = errors.New("suggestion message is empty")
	ErrSuggestionFailed = errors.New("failed to submit suggestion")
	ErrDecode           = errors.New("malformed record")
)
