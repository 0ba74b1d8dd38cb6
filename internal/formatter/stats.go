package formatter

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/desertthunder/plx/internal/models"
)

// ArtistCount is the number of tracks credited to one artist.
type ArtistCount struct {
	Artist string
	Tracks int
}

// PlaylistStats summarizes an exported playlist.
type PlaylistStats struct {
	Tracks     int
	Artists    int
	TopArtists []ArtistCount
}

// Stats counts tracks and artist credits. TopArtists holds at most top entries,
// most tracks first, ties broken by name.
func Stats(items []models.PlaylistItem, top int) PlaylistStats {
	credits := lo.FlatMap(items, func(item models.PlaylistItem, _ int) []string {
		return lo.Uniq(item.Track.Artists)
	})
	counts := lo.CountValues(credits)

	ranked := make([]ArtistCount, 0, len(counts))
	for artist, n := range counts {
		ranked = append(ranked, ArtistCount{Artist: artist, Tracks: n})
	}
	slices.SortFunc(ranked, func(a, b ArtistCount) int {
		if c := cmp.Compare(b.Tracks, a.Tracks); c != 0 {
			return c
		}
		return cmp.Compare(a.Artist, b.Artist)
	})
	if top >= 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	return PlaylistStats{Tracks: len(items), Artists: len(counts), TopArtists: ranked}
}

// RenderStats formats stats for the terminal.
func RenderStats(name string, s PlaylistStats) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Playlist: %s\n", name)
	fmt.Fprintf(&buf, "Tracks: %d\n", s.Tracks)
	fmt.Fprintf(&buf, "Artists: %d\n", s.Artists)
	if len(s.TopArtists) > 0 {
		buf.WriteString("\nTop artists:\n")
		for i, a := range s.TopArtists {
			fmt.Fprintf(&buf, "%2d. %s (%d)\n", i+1, a.Artist, a.Tracks)
		}
	}
	return buf.Bytes()
}
