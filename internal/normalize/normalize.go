// Package normalize turns raw source titles into catalog search queries.
//
// The rewrites are literal substring operations applied in a fixed order.
// YouTube titles lose video decorations ("Official Video", "[HD]", ...),
// Apple Music titles lose featuring/remaster clauses and punctuation that
// confuses field-filtered search. Both paths are idempotent on their output.
package normalize

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/desertthunder/plx/internal/models"
)

const (
	// AutoGeneratedMarker appears in the description of YouTube's auto-generated "Topic" uploads.
	AutoGeneratedMarker = "Auto-generated by YouTube."
	topicSuffix         = " - Topic"

	// MaxQueryRunes is the longest query sent as-is; longer ones are cut to TruncatedRunes.
	MaxQueryRunes  = 120
	TruncatedRunes = 69
)

var baseDecorations = []string{
	"MV", "Official Music Video", "Official Video", "Official Lyric Video",
	"Official HD Video", "Official Audio", "LyricVideo", "MusicVideo", "Audio",
	"Video", "HD", "Original Song", "HQ", "Color Coded",
	"()", "[]", "【 】", "（）", "( )", "[ ]", "【  】", "（ ）", "From", "Lyrics", "|",
}

// Decorations is the ordered removal list: every base token, then every base token upper-cased.
var Decorations = append(
	append([]string{}, baseDecorations...),
	lo.Map(baseDecorations, func(s string, _ int) string { return strings.ToUpper(s) })...,
)

var (
	titlePunctuation  = []string{"'", `"`, ":", "&", "?"}
	artistPunctuation = []string{"'", `"`, ":", "!"}
)

// IsAutoGenerated reports whether a YouTube description marks an auto-generated upload.
func IsAutoGenerated(description string) bool {
	return strings.Contains(description, AutoGeneratedMarker)
}

// YouTubeQuery builds the search query for a YouTube playlist entry.
//
// Auto-generated uploads carry clean metadata and become "title - artist"
// without decoration stripping. Anything else has its decorations stripped.
// Every query is truncated.
func YouTubeQuery(e models.RawEntry) string {
	if IsAutoGenerated(e.Description) {
		return Truncate(fmt.Sprintf("%s - %s", e.Title, strings.TrimSuffix(e.OwnerName, topicSuffix)))
	}
	return Truncate(StripDecorations(e.Title))
}

// StripDecorations removes every [Decorations] token from title, in order, and trims the result.
func StripDecorations(title string) string {
	for _, token := range Decorations {
		title = strings.ReplaceAll(title, token, "")
	}
	return strings.TrimSpace(title)
}

// AppleMusicQuery builds the field-filtered search query for an Apple Music entry.
func AppleMusicQuery(title, artist string) string {
	title = StripFlaggedClause(title)
	title = removeAll(title, titlePunctuation)
	title = Truncate(title)

	artist = CutArtist(removeAll(artist, artistPunctuation))
	return fmt.Sprintf("track:%s artist:%s", strings.TrimSpace(title), strings.TrimSpace(artist))
}

// Truncate replaces s with its first [TruncatedRunes] runes when it is longer than [MaxQueryRunes] runes.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) > MaxQueryRunes {
		return string(r[:TruncatedRunes])
	}
	return s
}

// CutArtist keeps the part of a credit before the first "&", then before the first ",".
func CutArtist(artist string) string {
	artist, _, _ = strings.Cut(artist, "&")
	artist, _, _ = strings.Cut(artist, ",")
	return artist
}

func removeAll(s string, chars []string) string {
	for _, c := range chars {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}
