// Command pollctl votes on active polls and sends suggestions from the
// terminal. Voted markers are kept in a local file.
//
//	pollctl [-backend rest|postgres] [-backend-url url] [-vote-memory path] ... <command> [args]
//
// Flags before the command take precedence over the environment.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/cli"
	"github.com/vncsmyrnk/pollboard/internal/adapters/memory/bunt"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository"
	"github.com/vncsmyrnk/pollboard/internal/config"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
	"github.com/vncsmyrnk/pollboard/internal/logging"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ui := &cli.BasicUi{Reader: os.Stdin, Writer: os.Stdout, ErrorWriter: os.Stderr}

	cfg, err := config.Load("pollctl", args)
	if err != nil {
		ui.Error(fmt.Sprintf("invalid configuration: %s", err))
		return 1
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	gateway, err := repository.Open(ctx, cfg)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer gateway.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.VoteMemoryPath), 0o755); err != nil {
		ui.Error(err.Error())
		return 1
	}
	memory, err := bunt.Open(cfg.VoteMemoryPath)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer memory.Close()

	pollService := services.NewPollService(gateway.Polls, gateway.Votes, logger)
	env := &environment{
		ctx:         ctx,
		ui:          ui,
		polls:       pollService,
		votes:       services.NewVoteService(pollService, gateway.Votes, logger),
		suggestions: services.NewSuggestionService(gateway.Suggestions, logger),
		memory:      memory,
		visitorID:   "pollctl",
	}

	c := cli.NewCLI("pollctl", version)
	c.Args = cfg.Args
	c.Commands = env.commands()

	status, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
	}
	return status
}
