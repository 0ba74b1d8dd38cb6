package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// BatchSize is the most tracks added to a playlist per request.
const BatchSize = 100

// Description is the text set on converted playlists.
func Description(kind models.SourceKind, title string) string {
	return fmt.Sprintf("Converted from %s: %s", kind.Label(), title)
}

// Writer creates the destination playlist and fills it in batches.
type Writer struct {
	dest   services.PlaylistWriter
	logger *log.Logger
}

func NewWriter(dest services.PlaylistWriter, logger *log.Logger) *Writer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Writer{dest: dest, logger: shared.WithLogger(logger, "task", "write")}
}

// CreatePlaylist creates a private playlist for ownerID and returns its ID.
func (w *Writer) CreatePlaylist(ctx context.Context, ownerID, title, description string) (string, error) {
	id, err := w.dest.CreatePlaylist(ctx, ownerID, title, description)
	if err != nil {
		return "", fmt.Errorf("failed to create playlist %q: %w", title, err)
	}
	return id, nil
}

// AppendTracks adds ids in order, [BatchSize] at a time. After each batch the
// cumulative count is reported. A failed batch stops the append; earlier
// batches stay in the playlist.
func (w *Writer) AppendTracks(ctx context.Context, playlistID string, ids []string, progress ProgressFunc) error {
	added := 0
	for i, batch := range lo.Chunk(ids, BatchSize) {
		if err := w.dest.AddTracks(ctx, playlistID, batch); err != nil {
			return fmt.Errorf("batch %d (%d/%d added): %w", i+1, added, len(ids), err)
		}
		added += len(batch)
		w.logger.Debug("added batch", "playlist", playlistID, "batch", i+1, "added", added)
		progress.send(addTracksUpdate(added, len(ids)))
	}
	return nil
}
