package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Selectors for a playlist page saved from the Apple Music web player.
const (
	appleRowSelector    = "div.songs-list-row"
	appleSongSelector   = "div.songs-list__col--song div.songs-list-row__song-name"
	appleArtistSelector = "div.songs-list__col--secondary span"
	appleTitleSelector  = "h1"
)

// AppleMusicReader implements [SourceReader] over an HTML export of an Apple Music playlist.
type AppleMusicReader struct{}

func NewAppleMusicReader() *AppleMusicReader { return &AppleMusicReader{} }

// ListEntries parses the saved page at path (a leading ~ is expanded).
func (r *AppleMusicReader) ListEntries(_ context.Context, path string) ([]models.RawEntry, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return ParseAppleMusicEntries(doc)
}

// PlaylistTitle returns the text of the page's first h1.
func (r *AppleMusicReader) PlaylistTitle(_ context.Context, path string) (string, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return "", err
	}
	return ParseAppleMusicTitle(doc)
}

// NewDocument parses an Apple Music page from r.
func NewDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParse, err)
	}
	return doc, nil
}

// ParseAppleMusicEntries extracts one entry per song row, in page order.
// A page without rows, or a row missing its title or artist, is rejected.
func ParseAppleMusicEntries(doc *goquery.Document) ([]models.RawEntry, error) {
	rows := doc.Find(appleRowSelector)
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: no %s elements", shared.ErrParse, appleRowSelector)
	}

	entries := make([]models.RawEntry, 0, rows.Length())
	var parseErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		song := row.Find(appleSongSelector).First()
		artist := row.Find(appleArtistSelector).First()
		if song.Length() == 0 || artist.Length() == 0 {
			parseErr = fmt.Errorf("%w: row %d is missing its song name or artist", shared.ErrParse, i+1)
			return false
		}
		entries = append(entries, models.RawEntry{
			Title:     strings.TrimSpace(song.Text()),
			OwnerName: strings.TrimSpace(artist.Text()),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}

// ParseAppleMusicTitle returns the trimmed text of the first h1.
func ParseAppleMusicTitle(doc *goquery.Document) (string, error) {
	h1 := doc.Find(appleTitleSelector).First()
	if h1.Length() == 0 {
		return "", fmt.Errorf("%w: no playlist title", shared.ErrParse)
	}
	return strings.TrimSpace(h1.Text()), nil
}

func loadDocument(path string) (*goquery.Document, error) {
	expanded, err := shared.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	defer f.Close()

	return NewDocument(f)
}
