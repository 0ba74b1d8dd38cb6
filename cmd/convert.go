package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/repositories"
	"github.com/desertthunder/plx/internal/review"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
)

// ConvertYouTube converts a YouTube playlist into a new Spotify playlist.
func (r *Runner) ConvertYouTube(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlist_id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}

	dest, err := r.spotifyDestination(ctx, cmd)
	if err != nil {
		return err
	}
	src, err := r.youtubeSource(ctx, cmd)
	if err != nil {
		return err
	}
	return r.convert(ctx, cmd, src, dest, tasks.ConvertOpts{Kind: models.YouTube, Source: playlistID})
}

// ConvertAppleMusic converts a saved Apple Music playlist page into a new Spotify playlist.
func (r *Runner) ConvertAppleMusic(ctx context.Context, cmd *cli.Command) error {
	htmlFile := cmd.StringArg("html_file")
	if htmlFile == "" {
		return fmt.Errorf("%w: html_file", shared.ErrMissingArgument)
	}

	dest, err := r.spotifyDestination(ctx, cmd)
	if err != nil {
		return err
	}
	return r.convert(ctx, cmd, r.apple, dest, tasks.ConvertOpts{Kind: models.AppleMusic, Source: htmlFile})
}

func (r *Runner) convert(ctx context.Context, cmd *cli.Command, src services.SourceReader, dest services.Destination, opts tasks.ConvertOpts) error {
	db, closeDB, err := r.reportLog(ctx)
	if err != nil {
		r.logger.Warn("report log unavailable, run will not be recorded", "error", err)
	}
	defer closeDB()

	resolver := tasks.NewResolver(dest, r.config.Search.RateLimit, r.logger)
	conv := &tasks.Converter{
		Source:   src,
		Dest:     dest,
		Resolver: resolver,
		Logger:   r.logger,
		Now:      r.now,
	}
	if db != nil {
		conv.Recorder = repositories.NewReportRepository(db)
	}
	if !cmd.Bool("skip-review") {
		conv.Reviewer = review.NewReviewer(r.reviewPrompter(), r.output, resolver.Search, r.logger)
	}

	r.logger.Info("starting conversion", "source", opts.Kind, "playlist", opts.Source)
	run, err := conv.Run(ctx, opts, r.showProgress)
	if err != nil {
		return err
	}

	r.printRun(run)
	return nil
}

// showProgress renders conversion updates as they arrive.
func (r *Runner) showProgress(update tasks.ProgressUpdate) {
	switch update.Phase {
	case tasks.FetchSource:
		r.writePlain("📥 %s\n", update.Message)
	case tasks.SearchTracks:
		r.writePlain("   %s\n", update.Message)
	case tasks.Review:
		r.writePlain("\n🔍 %s\n", update.Message)
	case tasks.CreatePlaylist:
		r.writePlain("\n📝 %s\n", update.Message)
	case tasks.AddTracks, tasks.ExportPlaylist:
		r.writePlain("   %s\n", update.Message)
	}
}

func (r *Runner) printRun(run *models.Run) {
	r.writePlain("\n")
	r.writePlainHeader("Conversion Complete!")
	r.writePlain("Source: %s (%s)\n", run.PlaylistTitle, run.SourceKind.Label())
	r.writePlain("Spotify playlist: %s\n", run.DestinationID)
	r.writePlain("Written: %d/%d\n", run.Written, run.Total)
	r.writePlain("Run: %s\n", run.ID)
	r.printEntries(run.Entries)
}

func (r *Runner) printEntries(entries []models.RunEntry) {
	for _, e := range entries {
		switch e.Kind {
		case models.EntryDiscarded:
			r.writePlain("Permanently removed: %s | %s\n", e.TrackName, e.Query)
		case models.EntryUnresolved:
			r.writePlain("Did not find: %s\n", e.Query)
		}
	}
}
