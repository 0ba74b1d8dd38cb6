package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/desertthunder/plx/internal/models"
)

func TestYouTubeQuery(t *testing.T) {
	tt := []struct {
		name  string
		entry models.RawEntry
		want  string
	}{
		{
			name:  "official video decoration",
			entry: models.RawEntry{Title: "Artist - Song (Official Video)", OwnerName: "ArtistVEVO"},
			want:  "Artist - Song",
		},
		{
			name:  "upper-cased decoration and bracket pair",
			entry: models.RawEntry{Title: "Song [OFFICIAL AUDIO]", OwnerName: "Channel"},
			want:  "Song",
		},
		{
			name:  "pipe and lyrics",
			entry: models.RawEntry{Title: "Band | Track Lyrics", OwnerName: "Channel"},
			want:  "Band  Track",
		},
		{
			name:  "fullwidth brackets",
			entry: models.RawEntry{Title: "Song （）", OwnerName: "Channel"},
			want:  "Song",
		},
		{
			name: "auto-generated upload",
			entry: models.RawEntry{
				Title:       "Song (Official Video)",
				Description: "Provided to YouTube by Label\n\nAuto-generated by YouTube.",
				OwnerName:   "Artist - Topic",
			},
			want: "Song (Official Video) - Artist",
		},
		{
			name: "long auto-generated upload is truncated",
			entry: models.RawEntry{
				Title:       strings.Repeat("a", 130),
				Description: "Auto-generated by YouTube.",
				OwnerName:   "Band - Topic",
			},
			want: strings.Repeat("a", TruncatedRunes),
		},
		{
			name:  "no decorations",
			entry: models.RawEntry{Title: "Plain Song Name", OwnerName: "Channel"},
			want:  "Plain Song Name",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := YouTubeQuery(tc.entry)
			if got != tc.want {
				t.Errorf("YouTubeQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStripDecorations(t *testing.T) {
	t.Run("no token survives", func(t *testing.T) {
		for _, token := range []string{"Official Music Video", "Lyrics", "HQ", "Color Coded"} {
			got := StripDecorations("Song " + token)
			if strings.Contains(got, token) {
				t.Errorf("StripDecorations(%q) still contains %q: %q", "Song "+token, token, got)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		titles := []string{
			"Artist - Song (Official Music Video) [HD]",
			"Song | From Movie",
			"Simple",
		}
		for _, title := range titles {
			once := StripDecorations(title)
			if twice := StripDecorations(once); twice != once {
				t.Errorf("second pass changed %q to %q", once, twice)
			}
		}
	})

	t.Run("upper-cased tokens follow base tokens", func(t *testing.T) {
		if len(Decorations) != 2*len(baseDecorations) {
			t.Fatalf("expected %d decorations, got %d", 2*len(baseDecorations), len(Decorations))
		}
		if Decorations[len(baseDecorations)] != "MV" || Decorations[len(baseDecorations)+1] != "OFFICIAL MUSIC VIDEO" {
			t.Errorf("unexpected upper-cased ordering: %v", Decorations[len(baseDecorations):len(baseDecorations)+2])
		}
	})
}

func TestTruncate(t *testing.T) {
	tt := []struct {
		name  string
		runes int
		want  int
	}{
		{name: "short", runes: 10, want: 10},
		{name: "at limit", runes: MaxQueryRunes, want: MaxQueryRunes},
		{name: "one over", runes: MaxQueryRunes + 1, want: TruncatedRunes},
		{name: "long", runes: 300, want: TruncatedRunes},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(strings.Repeat("a", tc.runes))
			if n := utf8.RuneCountInString(got); n != tc.want {
				t.Errorf("Truncate() kept %d runes, want %d", n, tc.want)
			}
		})
	}

	t.Run("multibyte", func(t *testing.T) {
		got := Truncate(strings.Repeat("歌", 121))
		if !utf8.ValidString(got) || utf8.RuneCountInString(got) != TruncatedRunes {
			t.Errorf("expected %d valid runes, got %q", TruncatedRunes, got)
		}
	})
}

func TestAppleMusicQuery(t *testing.T) {
	tt := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "featuring clause",
			title:  "Song (feat. Someone)",
			artist: "Artist",
			want:   "track:Song artist:Artist",
		},
		{
			name:   "remaster bracket",
			title:  "Song [2011 Remaster]",
			artist: "Band",
			want:   "track:Song artist:Band",
		},
		{
			name:   "punctuation",
			title:  `Don't Stop: "Live" & Loud?`,
			artist: "P!nk",
			want:   "track:Dont Stop Live  Loud artist:Pnk",
		},
		{
			name:   "artist credits cut",
			title:  "Duet",
			artist: "First & Second, Third",
			want:   "track:Duet artist:First",
		},
		{
			name:   "comma credit",
			title:  "Duet",
			artist: "First, Second",
			want:   "track:Duet artist:First",
		},
		{
			name:   "unflagged clause stays",
			title:  "Song (Part 2)",
			artist: "Artist",
			want:   "track:Song (Part 2) artist:Artist",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := AppleMusicQuery(tc.title, tc.artist)
			if got != tc.want {
				t.Errorf("AppleMusicQuery() = %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("long title truncated", func(t *testing.T) {
		got := AppleMusicQuery(strings.Repeat("x", 130), "A")
		want := "track:" + strings.Repeat("x", TruncatedRunes) + " artist:A"
		if got != want {
			t.Errorf("AppleMusicQuery() = %q, want %q", got, want)
		}
	})
}

func TestStripFlaggedClause(t *testing.T) {
	tt := []struct {
		name  string
		title string
		want  string
	}{
		{name: "parenthesis", title: "Song (Radio Edit)", want: "Song "},
		{name: "bracket", title: "Song [Bonus Track]", want: "Song "},
		{name: "only first clause removed", title: "Song (feat. A) (Remastered)", want: "Song  (Remastered)"},
		{name: "parenthesis wins over bracket", title: "Song [with B] (with A)", want: "Song [with B] "},
		{name: "reversed delimiters", title: "Song ) with (", want: "Song ) with ("},
		{name: "no clause", title: "Plain", want: "Plain"},
		{name: "upper case flag", title: "SONG (FEAT. X)", want: "SONG "},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFlaggedClause(tc.title); got != tc.want {
				t.Errorf("StripFlaggedClause(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestIsFlaggedName(t *testing.T) {
	tt := []struct {
		name string
		want bool
	}{
		{name: "Song - Remix", want: true},
		{name: "Song (Instrumental)", want: true},
		{name: "Song - Live VERSION", want: true},
		{name: "Song Ver. 2", want: true},
		{name: "Song", want: false},
		{name: "Forever", want: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFlaggedName(tc.name); got != tc.want {
				t.Errorf("IsFlaggedName(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}
