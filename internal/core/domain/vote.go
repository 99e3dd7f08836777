package domain

// Vote is one visitor's choice for a poll. VoterIP is always submitted
// empty; the backend may fill it in.
type Vote struct {
	PollID      string `json:"poll_id"`
	OptionIndex int    `json:"option_index"`
	VoterIP     string `json:"voter_ip"`
}

// NewVote builds the record inserted for a ballot submission.
func NewVote(pollID string, optionIndex int) *Vote {
	return &Vote{
		PollID:      pollID,
		OptionIndex: optionIndex,
		VoterIP:     "",
	}
}
