// package formatter writes exported playlists to disk as JSON, CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Format is an export file format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
)

// Formats lists the supported formats in the order they are documented.
var Formats = []Format{JSON, CSV, Markdown, Text}

var extensions = map[Format]string{JSON: "json", CSV: "csv", Markdown: "md", Text: "txt"}

// ParseFormat accepts a format name, case-insensitively. "md" and "text" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV, Markdown, Text:
		return f, nil
	case "md":
		return Markdown, nil
	case "text":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want json, csv, markdown or txt)", shared.ErrInvalidArgument, s)
	}
}

// DefaultFilename is {playlistID}-spotify-tracks with the format's extension.
func DefaultFilename(playlistID string, f Format) string {
	return fmt.Sprintf("%s-spotify-tracks.%s", playlistID, extensions[f])
}

// ExportToJSON renders the playlist items as a JSON array indented with four spaces.
func ExportToJSON(export *models.PlaylistExport) ([]byte, error) {
	items := export.Items
	if items == nil {
		items = []models.PlaylistItem{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode playlist items: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV renders one row per item with columns: Added At, ID, Name, Artists, Album, URI
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Added At", "ID", "Name", "Artists", "Album", "URI"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range export.Items {
		record := []string{
			formatTime(item.AddedAt),
			item.Track.ID,
			item.Track.Name,
			item.Track.ArtistNames(),
			item.Track.Album,
			item.Track.URI,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, a track count and a numbered track list.
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Playlist.Name)
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(export.Items))

	buf.WriteString("## Tracks\n\n")
	for i, item := range export.Items {
		albumPart := ""
		if item.Track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", item.Track.Album)
		}
		fmt.Fprintf(&buf, "%d. %s - %s%s\n", i+1, item.Track.ArtistNames(), item.Track.Name, albumPart)
	}
	return buf.Bytes(), nil
}

// ExportToText renders the playlist as plain text
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", export.Playlist.Name)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(export.Items))
	for i, item := range export.Items {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, item.Track.ArtistNames(), item.Track.Name)
	}
	return buf.Bytes(), nil
}

// Render encodes export in format f.
func Render(export *models.PlaylistExport, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return ExportToJSON(export)
	case CSV:
		return ExportToCSV(export)
	case Markdown:
		return ExportToMarkdown(export)
	case Text:
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// WriteExport renders export and writes it to path, defaulting to [DefaultFilename]. It returns the path written.
func WriteExport(export *models.PlaylistExport, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(export.Playlist.ID, f)
	}

	data, err := Render(export, f)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s export: %w", f, err)
	}
	return path, nil
}

// ReadJSONExport loads items previously written by [ExportToJSON].
func ReadJSONExport(path string) ([]models.PlaylistItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found, run export-spotify-playlist first", shared.ErrInvalidArgument, path)
		}
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var items []models.PlaylistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrParse, path, err)
	}
	return items, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
