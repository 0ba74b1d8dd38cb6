package tasks

import (
	"fmt"

	"github.com/desertthunder/plx/internal/models"
)

// ProgressUpdate represents a progress event during a conversion or export.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// ProgressFunc receives updates synchronously, on the caller's goroutine.
type ProgressFunc func(ProgressUpdate)

func (f ProgressFunc) send(u ProgressUpdate) {
	if f != nil {
		f(u)
	}
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	SearchTracks
	Review
	CreatePlaylist
	AddTracks
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case SearchTracks:
		return "search_tracks"
	case Review:
		return "review"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

func fetchSourceUpdate(kind models.SourceKind, source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Message: fmt.Sprintf("Getting %s playlist items (%s)...", kind.Label(), source),
	}
}

func foundSourceUpdate(title string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Found playlist: %s (%d entries)", title, total),
	}
}

func searchUpdate(step, total int, query string, c *models.Candidate) ProgressUpdate {
	if c == nil {
		return ProgressUpdate{
			Phase:   SearchTracks,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] Track not found for %s", step, total, query),
		}
	}
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s  ==  %s", step, total, c.Track.Name, c.Track.ArtistNames(), query),
		Data:    c,
	}
}

func reviewUpdate(res models.Resolution) ProgressUpdate {
	return ProgressUpdate{
		Phase: Review,
		Total: res.Total(),
		Message: fmt.Sprintf("Found %d of %d tracks (%d flagged, %d not found)",
			len(res.Candidates), res.Total(), res.FlaggedCount(), len(res.Unresolved)),
		Data: res,
	}
}

func createPlaylistUpdate(id, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", name, id),
		Data:    id,
	}
}

func addTracksUpdate(added, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    added,
		Total:   total,
		Message: fmt.Sprintf("Added %d/%d tracks", added, total),
	}
}

func exportUpdate(name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Exported %s (%d tracks)", name, count),
	}
}
