// Package analyze implements direct single-video analysis.
package analyze

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vidwatch/cmd/common"
	"github.com/jonesrussell/vidwatch/internal/pipeline"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

// Command returns the analyze command for use in the root command.
func Command() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "analyze <video-url>",
		Short: "Analyze a single video",
		Long: `Run the full pipeline for one video URL: fetch the transcript,
summarize it, save the note, and send the notification. The video is
recorded in the processed index when it completes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-analyze even if already processed")

	return cmd
}

// runAnalyze processes one video URL end to end.
func runAnalyze(cmd *cobra.Command, videoURL string, force bool) error {
	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		return fmt.Errorf("could not extract video ID from: %s", videoURL)
	}

	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	components, err := common.NewComponents(deps)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if !force && components.Tracker.IsProcessed(ctx, videoID) {
		deps.Logger.Info("Video already processed", "video_id", videoID)
		fmt.Println("Video already processed; use --force to re-analyze")
		return nil
	}

	meta := components.YouTube.VideoMetadata(ctx, videoID)

	// Direct runs commit without a prior claim; the tracker tolerates that.
	if err := components.Runner.Run(ctx, pipeline.Item{
		VideoID:     videoID,
		VideoURL:    meta.URL,
		Title:       meta.Title,
		ChannelName: meta.ChannelName,
	}); err != nil {
		return err
	}

	fmt.Printf("Analyzed: %s\n", meta.Title)
	return nil
}
