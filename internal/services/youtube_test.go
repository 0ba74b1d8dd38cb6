package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"github.com/desertthunder/plx/internal/shared"
)

func playlistItem(videoID, title, description, owner string) map[string]any {
	return map[string]any{
		"snippet": map[string]any{
			"title":                  title,
			"description":            description,
			"videoOwnerChannelTitle": owner,
			"resourceId":             map[string]any{"kind": "youtube#video", "videoId": videoID},
		},
	}
}

func newYouTubeTestReader(t *testing.T, handler http.HandlerFunc) *YouTubeReader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := NewYouTubeReader(context.Background(), shared.NewLogger(io.Discard),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	return r
}

func TestYouTubeReader(t *testing.T) {
	ctx := context.Background()

	t.Run("ListEntries", func(t *testing.T) {
		var localized []string
		reader := newYouTubeTestReader(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			q := r.URL.Query()
			switch {
			case strings.HasSuffix(r.URL.Path, "/playlistItems"):
				if q.Get("playlistId") != "PL1" || q.Get("maxResults") != "50" {
					t.Errorf("unexpected params %v", q)
				}
				if q.Get("pageToken") == "" {
					json.NewEncoder(w).Encode(map[string]any{
						"items": []any{
							playlistItem("v4", "Newest (Official Video)", "", "Band"),
							playlistItem("v3", "歌", "", "歌手"),
						},
						"nextPageToken": "p2",
					})
					return
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []any{
						playlistItem("v2", "Deleted video", UnavailableDescription, ""),
						playlistItem("v1", "Oldest", "Auto-generated by YouTube.", "Band - Topic"),
					},
				})
			case strings.HasSuffix(r.URL.Path, "/videos"):
				localized = append(localized, q.Get("id"))
				if q.Get("hl") != "en" {
					t.Errorf("expected hl=en, got %s", q.Get("hl"))
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []any{map[string]any{
						"id":      q.Get("id"),
						"snippet": map[string]any{"title": "歌", "localized": map[string]any{"title": "Song"}},
					}},
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})

		entries, err := reader.ListEntries(ctx, "PL1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"Oldest", "Song", "Newest (Official Video)"}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
		}
		for i, title := range want {
			if entries[i].Title != title {
				t.Errorf("entry %d: expected %q, got %q", i, title, entries[i].Title)
			}
		}
		if entries[0].OwnerName != "Band - Topic" || entries[0].SourceID != "v1" {
			t.Errorf("unexpected first entry %+v", entries[0])
		}
		if len(localized) != 1 || localized[0] != "v3" {
			t.Errorf("expected one localization lookup for v3, got %v", localized)
		}
	})

	t.Run("PlaylistTitle", func(t *testing.T) {
		reader := newYouTubeTestReader(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("id") == "missing" {
				json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []any{map[string]any{"id": "PL1", "snippet": map[string]any{"title": "Road Trip"}}},
			})
		})

		title, err := reader.PlaylistTitle(ctx, "PL1")
		if err != nil || title != "Road Trip" {
			t.Errorf("PlaylistTitle() = %q, %v", title, err)
		}

		if _, err := reader.PlaylistTitle(ctx, "missing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("API error", func(t *testing.T) {
		reader := newYouTubeTestReader(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
		})

		if _, err := reader.ListEntries(ctx, "PL1"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestGoogleOAuthConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := GoogleOAuthConfig(filepath.Join(dir, "nope.json"), "http://127.0.0.1:3000/callback")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("installed app secret", func(t *testing.T) {
		path := filepath.Join(dir, "client_secret.json")
		secret := `{"installed":{"client_id":"cid.apps.googleusercontent.com","client_secret":"shh",
"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",
"redirect_uris":["http://localhost"]}}`
		if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
			t.Fatalf("failed to write secret: %v", err)
		}

		cfg, err := GoogleOAuthConfig(path, "http://127.0.0.1:3000/callback")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ClientID != "cid.apps.googleusercontent.com" {
			t.Errorf("unexpected client id %s", cfg.ClientID)
		}
		if cfg.RedirectURL != "http://127.0.0.1:3000/callback" {
			t.Errorf("redirect URL should be overridden, got %s", cfg.RedirectURL)
		}
	})
}
