package services

import (
	"context"
	"fmt"
	"os"
	"slices"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

const (
	youtubePageSize = 50

	// UnavailableDescription is the placeholder description of deleted or private videos.
	UnavailableDescription = "This video is unavailable."
)

// YouTubeReader implements [SourceReader] for YouTube playlists through the Data API v3.
type YouTubeReader struct {
	svc    *ytapi.Service
	logger *log.Logger
}

// NewYouTubeReader creates the Data API client. Pass [option.WithAPIKey] for public
// playlists or [option.WithHTTPClient] with an OAuth client.
func NewYouTubeReader(ctx context.Context, logger *log.Logger, opts ...option.ClientOption) (*YouTubeReader, error) {
	svc, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &YouTubeReader{svc: svc, logger: shared.WithLogger(logger, "service", "youtube")}, nil
}

// GoogleOAuthConfig reads a Google client-secret file for read-only YouTube access.
func GoogleOAuthConfig(secretFile, redirectURL string) (*oauth2.Config, error) {
	path, err := shared.ExpandPath(secretFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: client secret file %s not found", shared.ErrMissingCredentials, path)
		}
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, ytapi.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrInvalidConfig, path, err)
	}
	cfg.RedirectURL = redirectURL
	return cfg, nil
}

// ListEntries returns the playlist's entries oldest first.
//
// The API lists newest additions first, so the collected pages are reversed
// as a whole. Unavailable videos are dropped, and non-ASCII titles are
// replaced by their English localization when YouTube has one.
func (r *YouTubeReader) ListEntries(ctx context.Context, playlistID string) ([]models.RawEntry, error) {
	var (
		entries []models.RawEntry
		token   string
	)

	for page := 1; ; page++ {
		call := r.svc.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(youtubePageSize).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: playlist items %s: %v", shared.ErrAPIRequest, playlistID, err)
		}
		r.logger.Debug("fetched playlist page", "page", page, "items", len(res.Items))

		for _, item := range res.Items {
			if item.Snippet == nil || item.Snippet.Description == UnavailableDescription {
				continue
			}
			entries = append(entries, r.toEntry(ctx, item.Snippet))
		}

		if res.NextPageToken == "" {
			break
		}
		token = res.NextPageToken
	}

	slices.Reverse(entries)
	return entries, nil
}

func (r *YouTubeReader) toEntry(ctx context.Context, s *ytapi.PlaylistItemSnippet) models.RawEntry {
	e := models.RawEntry{
		Title:       s.Title,
		Description: s.Description,
		OwnerName:   s.VideoOwnerChannelTitle,
	}
	if s.ResourceId != nil {
		e.SourceID = s.ResourceId.VideoId
	}

	if !isASCII(e.Title) && e.SourceID != "" {
		if title, err := r.localizedTitle(ctx, e.SourceID); err != nil {
			r.logger.Warn("could not localize title", "video", e.SourceID, "err", err)
		} else if title != "" {
			e.Title = title
		}
	}
	return e
}

func (r *YouTubeReader) localizedTitle(ctx context.Context, videoID string) (string, error) {
	res, err := r.svc.Videos.List([]string{"snippet"}).Id(videoID).Hl("en").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: video %s: %v", shared.ErrAPIRequest, videoID, err)
	}
	if len(res.Items) == 0 || res.Items[0].Snippet == nil || res.Items[0].Snippet.Localized == nil {
		return "", nil
	}
	return res.Items[0].Snippet.Localized.Title, nil
}

// PlaylistTitle returns the playlist's display title.
func (r *YouTubeReader) PlaylistTitle(ctx context.Context, playlistID string) (string, error) {
	res, err := r.svc.Playlists.List([]string{"snippet"}).Id(playlistID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: playlist %s: %v", shared.ErrAPIRequest, playlistID, err)
	}
	if len(res.Items) == 0 || res.Items[0].Snippet == nil {
		return "", fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	return res.Items[0].Snippet.Title, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
