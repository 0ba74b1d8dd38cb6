package services

import (
	"context"

	"github.com/desertthunder/plx/internal/models"
)

// SourceReader lists the entries of a source playlist in listing order.
//
// source is a playlist ID for YouTube and a file path for Apple Music.
type SourceReader interface {
	ListEntries(ctx context.Context, source string) ([]models.RawEntry, error)
	PlaylistTitle(ctx context.Context, source string) (string, error)
}

// Searcher finds destination catalog tracks for a free-text query.
type Searcher interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)
}

// PlaylistWriter creates destination playlists and fills them.
type PlaylistWriter interface {
	CurrentUserID(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, ownerID, name, description string) (string, error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// PlaylistExporter reads a destination playlist back.
type PlaylistExporter interface {
	Playlist(ctx context.Context, playlistID string) (*models.Playlist, error)
	PlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error)
}

// Destination is everything a conversion and an export need from the destination service.
type Destination interface {
	Searcher
	PlaylistWriter
	PlaylistExporter
}
