// Package scheduler implements the long-running scheduled check command.
package scheduler

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/vidwatch/cmd/check"
	"github.com/jonesrussell/vidwatch/cmd/common"
)

// Command returns the scheduler command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run channel checks on a schedule",
		Long: `Run continuously, checking all monitored channels on the configured
cron schedule (hourly by default). Runs until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}
}

// runScheduler starts the cron loop and blocks until interrupted.
func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	if err := deps.Config.Monitor.Validate(); err != nil {
		return err
	}

	components, err := common.NewComponents(deps)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := deps.Logger
	channels := deps.Config.Monitor.Channels
	spec := deps.Config.Scheduler.Cron

	// Standard 5-field cron expressions (minute hour day month weekday).
	cronParser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	_, err = c.AddFunc(spec, func() {
		if passErr := check.RunPass(ctx, components.Poller, channels, log); passErr != nil {
			log.Error("Scheduled check finished with failures", "error", passErr)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	log.Info("Scheduler started", "cron", spec, "channels", len(channels))
	c.Start()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	log.Info("Scheduler stopped")
	return nil
}
