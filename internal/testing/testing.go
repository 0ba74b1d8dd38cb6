// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// MockSource is a test double for [services.SourceReader]
type MockSource struct {
	Title   string
	Entries []models.RawEntry
	Err     error
}

func (m *MockSource) ListEntries(ctx context.Context, source string) ([]models.RawEntry, error) {
	return m.Entries, m.Err
}

func (m *MockSource) PlaylistTitle(ctx context.Context, source string) (string, error) {
	return m.Title, m.Err
}

// MockDestination is a test double for [services.Destination].
//
// Search results are looked up by exact query; unknown queries return no tracks.
type MockDestination struct {
	Results  map[string][]models.Track
	Items    []models.PlaylistItem
	UserID   string
	SearchFn func(query string) ([]models.Track, error)

	Queries   []string
	Created   []string
	Batches   [][]string
	AddErr    error
	CreateErr error
}

func NewMockDestination() *MockDestination {
	return &MockDestination{Results: map[string][]models.Track{}, UserID: "user-1"}
}

func (m *MockDestination) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchFn != nil {
		return m.SearchFn(query)
	}
	res := m.Results[query]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *MockDestination) CurrentUserID(ctx context.Context) (string, error) {
	return m.UserID, nil
}

func (m *MockDestination) CreatePlaylist(ctx context.Context, ownerID, name, description string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.Created = append(m.Created, name+"|"+description)
	return fmt.Sprintf("playlist-%d", len(m.Created)), nil
}

func (m *MockDestination) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	m.Batches = append(m.Batches, append([]string(nil), trackIDs...))
	return nil
}

func (m *MockDestination) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if playlistID == "" {
		return nil, shared.ErrPlaylistNotFound
	}
	return &models.Playlist{ID: playlistID, Name: "Mock Playlist", OwnerID: m.UserID}, nil
}

func (m *MockDestination) PlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	return m.Items, nil
}

// NewTrack builds a catalog track with a single artist.
func NewTrack(id, name, artist, album string) models.Track {
	return models.Track{ID: id, Name: name, Artists: []string{artist}, Album: album, URI: "spotify:track:" + id}
}

// Script joins prompt answers into the newline-separated input a line prompter reads.
func Script(answers ...string) io.Reader {
	if len(answers) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(answers, "\n") + "\n")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
