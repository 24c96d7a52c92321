package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fiesc/examsched/adapter/cli"
	"github.com/fiesc/examsched/adapter/cli/assignment"
	"github.com/fiesc/examsched/adapter/cli/directory"
	"github.com/fiesc/examsched/adapter/cli/period"
	"github.com/fiesc/examsched/internal/app"
	"github.com/fiesc/examsched/pkg/config"
	"github.com/fiesc/examsched/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}
	cli.SetLogger(logger)

	// Initialize the container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Relay staged events in the background while the CLI runs.
		if container.OutboxProcessor != nil {
			go func() {
				if err := container.OutboxProcessor.Start(ctx); err != nil {
					logger.Warn("outbox processor failed to start", "error", err)
				}
			}()
		}

		cliApp = cli.NewApp(
			container.CreateAssignmentHandler,
			container.ProposeDateHandler,
			container.ReviewProposalHandler,
			container.ResolveAlternateHandler,
			container.ConfirmHandler,
			container.CancelHandler,
			container.AssignRoomHandler,
			container.CreatePeriodHandler,
			container.SetPeriodActiveHandler,
			container.ListAssignmentsHandler,
			container.GetAssignmentHandler,
			container.ListPeriodsHandler,
		)

		if cfg.ActorID != "" {
			actorID, err := uuid.Parse(cfg.ActorID)
			if err != nil {
				logger.Error("invalid EXAMSCHED_ACTOR_ID", "error", err)
				os.Exit(1)
			}
			cliApp.SetActor(actorID, cfg.ActorRole, cfg.ActorGroup)
		}

		if container.LocalDirectory != nil {
			cliApp.SetLocalDirectory(container.LocalDirectory)
		}
	}

	cli.SetApp(cliApp)

	cli.AddCommand(assignment.Cmd)
	cli.AddCommand(period.Cmd)
	cli.AddCommand(directory.Cmd)

	cli.Execute()
}
