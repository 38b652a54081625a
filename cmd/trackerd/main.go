package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"donordrive-tracker/internal/config"
	"donordrive-tracker/internal/fetch"
	"donordrive-tracker/internal/store"
	"donordrive-tracker/internal/tracker"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	participant := tracker.NewParticipant(tracker.Config{
		ParticipantID:  cfg.ParticipantID,
		TeamID:         cfg.TeamID,
		CurrencySymbol: cfg.CurrencySymbol,
		DisplayCount:   cfg.DonorsToDisplay,
		BaseAPIURL:     cfg.BaseAPIURL,
	}, fetch.NewClient(), logger)

	outputs := store.NewTextStore(cfg.OutputFolder)
	src := &snapshotSource{currencySymbol: cfg.CurrencySymbol}

	runCycle := func() {
		state := participant.Run(context.Background())
		var teamState *tracker.TeamState
		if team := participant.Team(); team != nil {
			ts := team.State()
			teamState = &ts
		}
		src.update(state, teamState)
		writeOutputs(logger, outputs, state, teamState)
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	if _, err := c.AddFunc(cfg.PollSchedule, runCycle); err != nil {
		logger.Fatal("invalid poll schedule", zap.Error(err),
			zap.String("schedule", cfg.PollSchedule))
	}

	// First cycle runs immediately; cron fires the rest.
	runCycle()
	c.Start()
	logger.Info("tracker started",
		zap.String("participant", cfg.ParticipantID),
		zap.String("schedule", cfg.PollSchedule))

	if cfg.MCPEnabled {
		go serveTools(logger, src, cfg.MCPListenAddr, cfg.MCPPath)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping poller")
	<-c.Stop().Done()
	logger.Info("poller stopped")
}

// writeOutputs persists every formatted output mapping as text files. A
// write failure is logged and the remaining groups are still attempted.
func writeOutputs(logger *zap.Logger, outputs *store.TextStore, state tracker.ParticipantState, teamState *tracker.TeamState) {
	groups := []map[string]string{
		state.Outputs.Totals,
		state.Outputs.Donations,
		state.Outputs.Donors,
	}
	if teamState != nil {
		groups = append(groups,
			teamState.Outputs.Totals,
			teamState.Outputs.Participants,
			teamState.Outputs.Donations,
		)
	}
	for _, group := range groups {
		if err := outputs.WriteAll(group); err != nil {
			logger.Warn("couldn't write output files", zap.Error(err))
		}
	}
}
