package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// Reviewer lets a human settle a resolution before anything is written.
type Reviewer interface {
	Review(ctx context.Context, res models.Resolution) (models.Outcome, error)
}

// Recorder stores finished runs.
type Recorder interface {
	SaveRun(ctx context.Context, run *models.Run) error
}

// Converter runs one source playlist through normalize, resolve, review and write.
type Converter struct {
	Source   services.SourceReader
	Dest     services.Destination
	Reviewer Reviewer // nil keeps every candidate
	Recorder Recorder // nil skips the report log
	Logger   *log.Logger

	// Resolver matches queries; nil builds one over Dest paced at RateLimit.
	Resolver *Resolver
	// RateLimit paces catalog searches in requests per second; zero disables pacing.
	RateLimit float64
	Now       func() time.Time
}

// ConvertOpts selects the source playlist.
type ConvertOpts struct {
	Kind   models.SourceKind
	Source string // playlist ID or export file path
}

// Run converts the playlist and returns the recorded run. Progress is reported synchronously.
func (c *Converter) Run(ctx context.Context, opts ConvertOpts, progress ProgressFunc) (*models.Run, error) {
	logger := c.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	logger = shared.WithLogger(logger, "source", opts.Kind)

	progress.send(fetchSourceUpdate(opts.Kind, opts.Source))
	title, err := c.Source.PlaylistTitle(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist title: %w", err)
	}
	entries, err := c.Source.ListEntries(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist entries: %w", err)
	}
	progress.send(foundSourceUpdate(title, len(entries)))

	resolver := c.Resolver
	if resolver == nil {
		resolver = NewResolver(c.Dest, c.RateLimit, logger)
	}
	res, err := resolver.ResolveAll(ctx, BuildQueries(opts.Kind, entries), progress)
	if err != nil {
		return nil, err
	}
	progress.send(reviewUpdate(res))

	outcome := models.Accept(res)
	if c.Reviewer != nil {
		if outcome, err = c.Reviewer.Review(ctx, res); err != nil {
			return nil, fmt.Errorf("review aborted: %w", err)
		}
	}

	writer := NewWriter(c.Dest, logger)
	owner, err := c.Dest.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	playlistID, err := writer.CreatePlaylist(ctx, owner, title, Description(opts.Kind, title))
	if err != nil {
		return nil, err
	}
	progress.send(createPlaylistUpdate(playlistID, title))

	ids := outcome.TrackIDs()
	if err := writer.AppendTracks(ctx, playlistID, ids, progress); err != nil {
		return nil, err
	}

	run := c.newRun(opts, title, playlistID, len(entries), outcome)
	if c.Recorder != nil {
		if err := c.Recorder.SaveRun(ctx, run); err != nil {
			logger.Warn("could not record conversion", "err", err)
		}
	}
	logger.Info("conversion finished", "playlist", playlistID, "written", run.Written, "total", run.Total)
	return run, nil
}

func (c *Converter) newRun(opts ConvertOpts, title, playlistID string, total int, o models.Outcome) *models.Run {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	unresolved := lo.Map(o.Ignored, func(u models.UnresolvedEntry, _ int) models.RunEntry {
		return models.RunEntry{Kind: models.EntryUnresolved, Query: u.Query, OriginID: u.OriginID, Position: u.Position}
	})
	discarded := lo.Map(o.Discarded, func(d models.Candidate, _ int) models.RunEntry {
		return models.RunEntry{
			Kind:      models.EntryDiscarded,
			Query:     d.Query,
			OriginID:  d.OriginID,
			TrackName: d.Track.Name,
			Position:  d.Position,
		}
	})

	return &models.Run{
		ID:            shared.GenerateID(),
		SourceKind:    opts.Kind,
		Source:        opts.Source,
		PlaylistTitle: title,
		DestinationID: playlistID,
		Total:         total,
		Written:       len(o.Final),
		CreatedAt:     now().UTC(),
		Entries:       append(unresolved, discarded...),
	}
}

// Export reads a destination playlist back with all of its items.
func Export(ctx context.Context, src services.PlaylistExporter, playlistID string, progress ProgressFunc) (*models.PlaylistExport, error) {
	pl, err := src.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	items, err := src.PlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	progress.send(exportUpdate(pl.Name, len(items)))
	return &models.PlaylistExport{Playlist: *pl, Items: items}, nil
}
