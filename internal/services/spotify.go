package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// SpotifyScopes are the permissions plx asks for at login.
var SpotifyScopes = []string{
	spotifyauth.ScopePlaylistModifyPrivate,
	spotifyauth.ScopePlaylistModifyPublic,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopeUserReadPrivate,
}

const exportPageSize = 50

// NewSpotifyAuth builds the OAuth2 authenticator for the Spotify accounts service.
func NewSpotifyAuth(clientID, clientSecret, redirectURL string) (*spotifyauth.Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client id and secret are required", shared.ErrMissingCredentials)
	}
	return spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithRedirectURL(redirectURL),
		spotifyauth.WithScopes(SpotifyScopes...),
	), nil
}

// SpotifyService implements [Destination] on the Spotify Web API.
type SpotifyService struct {
	client *spotify.Client
	logger *log.Logger
}

// NewSpotifyService wraps an authorized HTTP client. Tests pass [spotify.WithBaseURL] to target a local server.
func NewSpotifyService(httpClient *http.Client, logger *log.Logger, opts ...spotify.ClientOption) *SpotifyService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyService{
		client: spotify.New(httpClient, opts...),
		logger: shared.WithLogger(logger, "service", "spotify"),
	}
}

// SearchTracks returns at most limit tracks for query, in the catalog's ranking order.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	res, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, wrapSpotifyError(err, "search %q", query)
	}
	if res.Tracks == nil {
		return nil, nil
	}
	s.logger.Debug("search", "query", query, "results", len(res.Tracks.Tracks))
	return lo.Map(res.Tracks.Tracks, func(t spotify.FullTrack, _ int) models.Track { return toTrack(t) }), nil
}

// CurrentUserID returns the ID of the account the token belongs to.
func (s *SpotifyService) CurrentUserID(ctx context.Context) (string, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return "", wrapSpotifyError(err, "current user")
	}
	return user.ID, nil
}

// CreatePlaylist creates a private, non-collaborative playlist owned by ownerID.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, ownerID, name, description string) (string, error) {
	pl, err := s.client.CreatePlaylistForUser(ctx, ownerID, name, description, false, false)
	if err != nil {
		return "", wrapSpotifyError(err, "create playlist %q", name)
	}
	s.logger.Info("created playlist", "id", pl.ID, "name", pl.Name)
	return pl.ID.String(), nil
}

// AddTracks appends trackIDs to the playlist in a single request. Callers keep batches at or under 100.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	ids := lo.Map(trackIDs, func(id string, _ int) spotify.ID { return spotify.ID(id) })
	if _, err := s.client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), ids...); err != nil {
		return wrapSpotifyError(err, "add %d tracks to %s", len(ids), playlistID)
	}
	return nil
}

// Playlist returns playlist metadata.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	pl, err := s.client.GetPlaylist(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, wrapSpotifyError(err, "playlist %s", playlistID)
	}
	return &models.Playlist{ID: pl.ID.String(), Name: pl.Name, OwnerID: pl.Owner.ID}, nil
}

// PlaylistItems pages through every item of a playlist, 50 at a time. Episodes and local files without a track are skipped.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	page, err := s.client.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(exportPageSize))
	if err != nil {
		return nil, wrapSpotifyError(err, "playlist items %s", playlistID)
	}

	var items []models.PlaylistItem
	for n := 1; ; n++ {
		for _, item := range page.Items {
			if item.Track.Track == nil {
				continue
			}
			added, _ := time.Parse(spotify.TimestampLayout, item.AddedAt)
			items = append(items, models.PlaylistItem{AddedAt: added, Track: toTrack(*item.Track.Track)})
		}
		s.logger.Debug("fetched playlist page", "page", n, "items", len(items))

		err := s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, wrapSpotifyError(err, "playlist items %s page %d", playlistID, n+1)
		}
	}
	return items, nil
}

func toTrack(t spotify.FullTrack) models.Track {
	return models.Track{
		ID:      t.ID.String(),
		Name:    t.Name,
		Artists: lo.Map(t.Artists, func(a spotify.SimpleArtist, _ int) string { return a.Name }),
		Album:   t.Album.Name,
		URI:     string(t.URI),
	}
}

func wrapSpotifyError(err error, format string, args ...any) error {
	op := fmt.Sprintf(format, args...)

	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s: %v", shared.ErrTokenExpired, op, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", shared.ErrPlaylistNotFound, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, op, err)
}
