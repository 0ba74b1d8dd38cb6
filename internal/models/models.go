package models

import (
	"fmt"
	"strings"
	"time"
)

// SourceKind names the service a conversion reads from.
type SourceKind string

const (
	YouTube    SourceKind = "youtube"
	AppleMusic SourceKind = "apple_music"
)

// Label is the human readable service name used in playlist descriptions.
func (k SourceKind) Label() string {
	switch k {
	case YouTube:
		return "YouTube"
	case AppleMusic:
		return "Apple Music"
	default:
		return string(k)
	}
}

// RawEntry is one source playlist entry as read, before normalization.
type RawEntry struct {
	Title       string
	Description string
	OwnerName   string // channel title on YouTube, artist on Apple Music
	SourceID    string // video ID on YouTube, empty on Apple Music
}

// Track is a destination catalog track.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	Album   string   `json:"album"`
	URI     string   `json:"uri,omitempty"`
}

// ArtistNames joins the track's artists for display.
func (t Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

// String renders "name - artists - album".
func (t Track) String() string {
	return fmt.Sprintf("%s - %s - %s", t.Name, t.ArtistNames(), t.Album)
}

// Candidate is a provisional match for a source entry.
type Candidate struct {
	Track        Track
	Query        string
	OtherResults []Track // full search result set, first element equals Track
	OriginID     string
	Position     int // index of the entry in the source listing
	Flagged      bool
}

// UnresolvedEntry is a source entry whose search returned nothing.
type UnresolvedEntry struct {
	Query    string
	OriginID string
	Position int
}

// Resolution is the outcome of matching a whole source listing.
type Resolution struct {
	Candidates []Candidate
	Unresolved []UnresolvedEntry
}

// Total is the number of source entries the resolution accounts for.
func (r Resolution) Total() int {
	return len(r.Candidates) + len(r.Unresolved)
}

// FlaggedCount counts candidates that need a closer look.
func (r Resolution) FlaggedCount() int {
	n := 0
	for _, c := range r.Candidates {
		if c.Flagged {
			n++
		}
	}
	return n
}

// Outcome is a reviewed resolution: what gets written and what gets reported.
type Outcome struct {
	Final     []Candidate       // source order, written to the destination
	Discarded []Candidate       // removed during review
	Ignored   []UnresolvedEntry // never matched
}

// Accept builds the outcome of an unreviewed resolution: every candidate is kept.
func Accept(r Resolution) Outcome {
	return Outcome{
		Final:   append([]Candidate(nil), r.Candidates...),
		Ignored: append([]UnresolvedEntry(nil), r.Unresolved...),
	}
}

// TrackIDs returns the final track IDs in order.
func (o Outcome) TrackIDs() []string {
	ids := make([]string, len(o.Final))
	for i, c := range o.Final {
		ids[i] = c.Track.ID
	}
	return ids
}

type DecisionKind int

const (
	Keep DecisionKind = iota
	Replace
	Discard
)

func (k DecisionKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Replace:
		return "replace"
	case Discard:
		return "discard"
	default:
		return ""
	}
}

// Decision is a reviewer's verdict on a candidate. Track is set only for Replace.
type Decision struct {
	Kind  DecisionKind
	Track *Track
}

func KeepDecision() Decision           { return Decision{Kind: Keep} }
func DiscardDecision() Decision        { return Decision{Kind: Discard} }
func ReplaceDecision(t Track) Decision { return Decision{Kind: Replace, Track: &t} }

// Playlist is destination playlist metadata.
type Playlist struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id,omitempty"`
}

// PlaylistItem is one exported destination playlist entry.
type PlaylistItem struct {
	AddedAt time.Time `json:"added_at"`
	Track   Track     `json:"track"`
}

// PlaylistExport is a destination playlist with every item read back.
type PlaylistExport struct {
	Playlist Playlist
	Items    []PlaylistItem
}

// EntryKind classifies entries recorded in the report log.
type EntryKind string

const (
	EntryUnresolved EntryKind = "unresolved"
	EntryDiscarded  EntryKind = "discarded"
)

// Run is one recorded conversion.
type Run struct {
	ID            string     `json:"id"`
	SourceKind    SourceKind `json:"source_kind"`
	Source        string     `json:"source"`
	PlaylistTitle string     `json:"playlist_title"`
	DestinationID string     `json:"destination_id"`
	Total         int        `json:"total"`
	Written       int        `json:"written"`
	CreatedAt     time.Time  `json:"created_at"`
	Entries       []RunEntry `json:"entries,omitempty"`
}

// RunEntry is a source entry that did not make it into the destination playlist.
type RunEntry struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Kind      EntryKind `json:"kind"`
	Query     string    `json:"query"`
	OriginID  string    `json:"origin_id,omitempty"`
	TrackName string    `json:"track_name,omitempty"`
	Position  int       `json:"position"`
}
