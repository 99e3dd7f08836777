package rest

import (
	"bytes"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// opaqueID accepts both string and numeric identifiers.
type opaqueID string

func (id *opaqueID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = opaqueID(s)
		return nil
	}
	if _, err := strconv.ParseInt(string(data), 10, 64); err != nil {
		return errors.Errorf("id must be a string or an integer, got %s", data)
	}
	*id = opaqueID(data)
	return nil
}

type pollRecord struct {
	ID        *opaqueID  `json:"id"`
	Question  *string    `json:"question"`
	Options   *[]string  `json:"options"`
	IsActive  *bool      `json:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
}

func (r *pollRecord) toDomain() (*domain.Poll, error) {
	switch {
	case r.ID == nil:
		return nil, missing("polls", "id")
	case r.Question == nil:
		return nil, missing("polls", "question")
	case r.Options == nil:
		return nil, missing("polls", "options")
	case r.IsActive == nil:
		return nil, missing("polls", "is_active")
	case r.CreatedAt == nil:
		return nil, missing("polls", "created_at")
	}

	return &domain.Poll{
		ID:        string(*r.ID),
		Question:  *r.Question,
		Options:   *r.Options,
		IsActive:  *r.IsActive,
		CreatedAt: *r.CreatedAt,
	}, nil
}

type voteRecord struct {
	OptionIndex *int `json:"option_index"`
}

type voteInsert struct {
	PollID      string `json:"poll_id"`
	OptionIndex int    `json:"option_index"`
	VoterIP     string `json:"voter_ip"`
}

type suggestionInsert struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func missing(collection, field string) error {
	return errors.Wrapf(domain.ErrDecode, "%s: missing field %q", collection, field)
}
