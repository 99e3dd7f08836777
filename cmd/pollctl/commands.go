package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/table"
	"github.com/mitchellh/cli"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

const (
	msgNoPolls          = "No active polls at the moment. Check back soon!"
	msgPollsUnavailable = "Failed to load polls. Please try again later."
	msgThanks           = "Thank you for voting!"
	msgSelectOption     = "Please select an option"
	msgInvalidOption    = "That option is not part of this poll."
	msgAlreadyVoted     = "You already voted on this poll."
	msgPollNotFound     = "This poll is no longer available."
	msgVoteFailed       = "Failed to submit vote. Please try again."
	msgEmptyMessage     = "Please enter your suggestion"
	msgSuggestionSent   = "Thank you! Your suggestion has been submitted successfully."
	msgSuggestionFailed = "Failed to submit suggestion. Please try again."
)

// votedLister is implemented by memories that can enumerate their markers.
type votedLister interface {
	Voted() ([]string, error)
}

type environment struct {
	ctx         context.Context
	ui          cli.Ui
	polls       ports.PollService
	votes       ports.VoteService
	suggestions ports.SuggestionService
	memory      ports.VoteMemory
	visitorID   string
}

func (e *environment) commands() map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"polls": func() (cli.Command, error) {
			return &pollsCommand{env: e}, nil
		},
		"vote": func() (cli.Command, error) {
			return &voteCommand{env: e}, nil
		},
		"suggest": func() (cli.Command, error) {
			return &suggestCommand{env: e}, nil
		},
		"voted": func() (cli.Command, error) {
			return &votedCommand{env: e}, nil
		},
	}
}

type pollsCommand struct {
	env *environment
}

func (c *pollsCommand) Synopsis() string { return "List active polls" }

func (c *pollsCommand) Help() string {
	return strings.TrimSpace(`
Usage: pollctl polls

  Lists active polls, newest first. Polls already voted on from this
  device show their results; the others list their numbered options.
`)
}

func (c *pollsCommand) Run(args []string) int {
	ui := c.env.ui
	board, err := c.env.polls.Board(c.env.ctx, c.env.memory)
	if err != nil {
		ui.Error(msgPollsUnavailable)
		return 1
	}
	if board.Empty() {
		ui.Output(msgNoPolls)
		return 0
	}

	for i := range board.Cards {
		card := &board.Cards[i]
		ui.Output(cardHeader(card))
		if card.Voted {
			ui.Output(msgThanks)
			ui.Output(resultsTable(card))
		} else {
			for n, option := range card.Poll.Options {
				ui.Output(fmt.Sprintf("  %d) %s", n+1, option))
			}
			ui.Output(fmt.Sprintf("  vote with: pollctl vote %s <option-number>", card.Poll.ID))
		}
		ui.Output("")
	}
	return 0
}

type voteCommand struct {
	env *environment
}

func (c *voteCommand) Synopsis() string { return "Vote on a poll" }

func (c *voteCommand) Help() string {
	return strings.TrimSpace(`
Usage: pollctl vote <poll-id> [option-number]

  Casts a vote for the numbered option. Without an option number the
  option is asked for interactively.
`)
}

func (c *voteCommand) Run(args []string) int {
	ui := c.env.ui
	if len(args) < 1 || len(args) > 2 {
		ui.Error(c.Help())
		return 1
	}

	input := ports.VoteInput{
		VisitorID: c.env.visitorID,
		PollID:    args[0],
		Memory:    c.env.memory,
	}

	answer := ""
	if len(args) == 2 {
		answer = args[1]
	} else {
		a, err := ui.Ask("Option number:")
		if err != nil && !errors.Is(err, io.EOF) {
			ui.Error(err.Error())
			return 1
		}
		answer = a
	}

	answer = strings.TrimSpace(answer)
	if answer != "" {
		n, err := strconv.Atoi(answer)
		if err != nil {
			ui.Error(msgInvalidOption)
			return 1
		}
		index := n - 1
		input.OptionIndex = &index
	}

	card, err := c.env.votes.Vote(c.env.ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			ui.Warn(msgAlreadyVoted)
		case errors.Is(err, domain.ErrNoOptionSelected):
			ui.Error(msgSelectOption)
		case errors.Is(err, domain.ErrInvalidOption):
			ui.Error(msgInvalidOption)
		case errors.Is(err, domain.ErrPollNotFound):
			ui.Error(msgPollNotFound)
		default:
			ui.Error(msgVoteFailed)
		}
		return 1
	}

	ui.Output(cardHeader(card))
	ui.Info(msgThanks)
	ui.Output(resultsTable(card))
	return 0
}

type suggestCommand struct {
	env *environment
}

func (c *suggestCommand) Synopsis() string { return "Suggest a new poll" }

func (c *suggestCommand) Help() string {
	return strings.TrimSpace(`
Usage: pollctl suggest -message <text> [-name <name>] [-email <email>]

  Sends a poll suggestion. Only the message is required.
`)
}

func (c *suggestCommand) Run(args []string) int {
	ui := c.env.ui

	var input ports.SuggestionInput
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&input.Message, "message", "", "")
	fs.StringVar(&input.Name, "name", "", "")
	fs.StringVar(&input.Email, "email", "", "")
	if err := fs.Parse(args); err != nil {
		ui.Error(c.Help())
		return 1
	}

	if err := c.env.suggestions.Submit(c.env.ctx, input); err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			ui.Error(msgEmptyMessage)
		} else {
			ui.Error(msgSuggestionFailed)
		}
		return 1
	}

	ui.Info(msgSuggestionSent)
	return 0
}

type votedCommand struct {
	env *environment
}

func (c *votedCommand) Synopsis() string { return "List polls voted on from this device" }

func (c *votedCommand) Help() string {
	return "Usage: pollctl voted"
}

func (c *votedCommand) Run(args []string) int {
	lister, ok := c.env.memory.(votedLister)
	if !ok {
		c.env.ui.Error("vote memory cannot list its markers")
		return 1
	}

	ids, err := lister.Voted()
	if err != nil {
		c.env.ui.Error(err.Error())
		return 1
	}
	for _, id := range ids {
		c.env.ui.Output(id)
	}
	return 0
}

func cardHeader(card *domain.PollCard) string {
	return fmt.Sprintf("%s  [%s, created %s]", card.Poll.Question, card.Poll.ID, humanize.Time(card.Poll.CreatedAt))
}

func resultsTable(card *domain.PollCard) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Option", "Votes", "%"})
	for _, r := range card.Results() {
		t.AppendRow(table.Row{r.Index + 1, r.Label, r.Phrase, fmt.Sprintf("%d%%", r.Percent)})
	}
	t.AppendFooter(table.Row{"", "Total", domain.VotePhrase(card.Tally.Total()), ""})
	t.SetStyle(table.StyleLight)
	return t.Render()
}
