// Package check implements the one-shot channel check command.
package check

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vidwatch/cmd/common"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/poller"
)

// Command returns the check command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check all monitored channels once",
		Long: `Check every configured channel for a new upload and process any video
that has not been analyzed yet. Designed for scheduled runs (cron,
EventBridge) as well as manual invocation; overlapping runs are safe.`,
		RunE: runCheck,
	}
}

// runCheck executes one pass over all configured channels.
func runCheck(cmd *cobra.Command, _ []string) error {
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

	return RunPass(cmd.Context(), components.Poller, deps.Config.Monitor.Channels, deps.Logger)
}

// RunPass checks the given channels and logs a batch summary. It returns an
// error only when at least one channel failed, after every channel has been
// checked: one bad channel never aborts the rest.
func RunPass(ctx context.Context, p *poller.Poller, channels []string, log logger.Interface) error {
	log.Info("Checking channels for new videos", "count", len(channels))

	results := p.CheckAll(ctx, channels)

	var processed, failed int
	for _, result := range results {
		switch result.Outcome {
		case poller.OutcomeProcessed:
			processed++
		case poller.OutcomeFailed:
			failed++
			log.Error("Channel check failed",
				"channel_url", result.ChannelURL, "error", result.Err)
		}
	}

	log.Info("Channel check complete",
		"total", len(results),
		"processed", processed,
		"failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d channel checks failed", failed, len(results))
	}
	return nil
}
