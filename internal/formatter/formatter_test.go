package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	th "github.com/desertthunder/plx/internal/testing"
)

func sampleExport() *models.PlaylistExport {
	added := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return &models.PlaylistExport{
		Playlist: models.Playlist{ID: "test123", Name: "Test Playlist"},
		Items: []models.PlaylistItem{
			{AddedAt: added, Track: th.NewTrack("track1", "Song One", "Artist One", "Album One")},
			{AddedAt: added, Track: models.Track{ID: "track2", Name: "Song Two", Artists: []string{"Artist Two", "Artist One"}}},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "[\n    {\n        \"added_at\"") {
			t.Errorf("expected 4-space indented array, got: %s", output)
		}
		if !strings.Contains(output, `"name": "Song One"`) {
			t.Errorf("JSON missing track name")
		}
	})

	t.Run("ExportToJSON empty", func(t *testing.T) {
		data, err := ExportToJSON(&models.PlaylistExport{})
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if string(data) != "[]\n" {
			t.Errorf("expected empty array, got %q", data)
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Added At,ID,Name,Artists,Album,URI") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2024-03-01T09:30:00Z,track1,Song One,Artist One,Album One,spotify:track:track1") {
			t.Errorf("CSV missing track1 row, got: %s", output)
		}
		if !strings.Contains(output, `"Artist Two, Artist One"`) {
			t.Errorf("CSV should quote joined artists, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"# Test Playlist", "**Tracks**: 2", "1. Artist One - Song One (Album One)", "2. Artist Two, Artist One - Song Two\n"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "Playlist: Test Playlist\nTracks: 2\n\n1. Artist One - Song One\n") {
			t.Errorf("unexpected text output: %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in   string
		want Format
	}{
		{in: "json", want: JSON},
		{in: "CSV", want: CSV},
		{in: "md", want: Markdown},
		{in: "markdown", want: Markdown},
		{in: "text", want: Text},
		{in: "txt", want: Text},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if err != nil || got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tc.in, got, err)
			}
		})
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	th.MustChdir(t, dir)

	t.Run("default filename", func(t *testing.T) {
		path, err := WriteExport(sampleExport(), JSON, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "test123-spotify-tracks.json" {
			t.Errorf("unexpected path %s", path)
		}
		th.AssertFileExists(t, filepath.Join(dir, path))

		items, err := ReadJSONExport(path)
		if err != nil {
			t.Fatalf("ReadJSONExport failed: %v", err)
		}
		if len(items) != 2 || items[1].Track.Artists[0] != "Artist Two" {
			t.Errorf("unexpected items %+v", items)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		out := filepath.Join(dir, "out.md")
		path, err := WriteExport(sampleExport(), Markdown, out)
		if err != nil || path != out {
			t.Fatalf("WriteExport() = %s, %v", path, err)
		}
		if !strings.HasPrefix(th.MustReadFile(t, out), "# Test Playlist") {
			t.Error("markdown file has unexpected content")
		}
	})

	t.Run("read errors", func(t *testing.T) {
		if _, err := ReadJSONExport(filepath.Join(dir, "missing.json")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}

		bad := filepath.Join(dir, "bad.json")
		th.MustWriteFile(t, bad, "{not json")
		if _, err := ReadJSONExport(bad); !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}

func TestStats(t *testing.T) {
	items := []models.PlaylistItem{
		{Track: models.Track{Name: "a", Artists: []string{"X"}}},
		{Track: models.Track{Name: "b", Artists: []string{"Y", "X"}}},
		{Track: models.Track{Name: "c", Artists: []string{"Z"}}},
		{Track: models.Track{Name: "d", Artists: []string{"Y"}}},
	}

	s := Stats(items, 2)
	if s.Tracks != 4 || s.Artists != 3 {
		t.Errorf("unexpected totals %+v", s)
	}
	if len(s.TopArtists) != 2 {
		t.Fatalf("expected 2 top artists, got %d", len(s.TopArtists))
	}
	if s.TopArtists[0] != (ArtistCount{Artist: "X", Tracks: 2}) || s.TopArtists[1] != (ArtistCount{Artist: "Y", Tracks: 2}) {
		t.Errorf("unexpected ranking %+v", s.TopArtists)
	}

	out := string(RenderStats("Mix", s))
	if !strings.Contains(out, "Tracks: 4\nArtists: 3\n") || !strings.Contains(out, " 1. X (2)") {
		t.Errorf("unexpected rendering: %s", out)
	}
}
