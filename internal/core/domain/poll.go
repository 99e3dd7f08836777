package domain

import "time"

// Poll is read from the backend's polls collection. Options are addressed by
// their index, so their order is significant.
type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Votable reports whether the poll can be shown as a ballot.
func (p *Poll) Votable() bool {
	return len(p.Options) > 0
}

// ValidOption reports whether index addresses one of the poll's options.
func (p *Poll) ValidOption(index int) bool {
	return index >= 0 && index < len(p.Options)
}

// Tally counts the votes addressing one of the poll's options. Votes with
// an index outside the options are left out so counts add up to the total.
func (p *Poll) Tally(votes []Vote) Tally {
	valid := make([]Vote, 0, len(votes))
	for _, v := range votes {
		if p.ValidOption(v.OptionIndex) {
			valid = append(valid, v)
		}
	}
	return NewTally(valid)
}

// PollCard is everything needed to render one poll: the poll itself, its
// tally and whether this visitor already voted on it.
type PollCard struct {
	Poll  Poll
	Tally Tally
	Voted bool
}

// Results computes the results view for the card.
func (c *PollCard) Results() []OptionResult {
	return Results(c.Poll.Options, c.Tally)
}

// Board is the list of cards rendered for one visitor.
type Board struct {
	Cards []PollCard
}

// Empty reports whether there is nothing to render.
func (b *Board) Empty() bool {
	return len(b.Cards) == 0
}
