package models

import (
	"slices"
	"testing"
)

func TestResolution(t *testing.T) {
	res := Resolution{
		Candidates: []Candidate{
			{Track: Track{ID: "a"}, Position: 0},
			{Track: Track{ID: "b"}, Position: 2, Flagged: true},
		},
		Unresolved: []UnresolvedEntry{{Query: "missing", Position: 1}},
	}

	if res.Total() != 3 {
		t.Errorf("Total() = %d, want 3", res.Total())
	}
	if res.FlaggedCount() != 1 {
		t.Errorf("FlaggedCount() = %d, want 1", res.FlaggedCount())
	}

	out := Accept(res)
	if !slices.Equal(out.TrackIDs(), []string{"a", "b"}) {
		t.Errorf("TrackIDs() = %v, want [a b]", out.TrackIDs())
	}
	if len(out.Ignored) != 1 || len(out.Discarded) != 0 {
		t.Errorf("unexpected outcome %+v", out)
	}

	out.Final[0].Track.ID = "changed"
	if res.Candidates[0].Track.ID != "a" {
		t.Error("Accept should copy the candidates")
	}
}

func TestTrack(t *testing.T) {
	track := Track{Name: "Nightcall", Artists: []string{"Kavinsky", "Lovefoxxx"}, Album: "OutRun"}
	if got := track.String(); got != "Nightcall - Kavinsky, Lovefoxxx - OutRun" {
		t.Errorf("String() = %q", got)
	}
}

func TestLabels(t *testing.T) {
	tc := []struct {
		name string
		got  string
		want string
	}{
		{name: "youtube", got: YouTube.Label(), want: "YouTube"},
		{name: "apple music", got: AppleMusic.Label(), want: "Apple Music"},
		{name: "unknown kind", got: SourceKind("deezer").Label(), want: "deezer"},
		{name: "replace decision", got: ReplaceDecision(Track{ID: "x"}).Kind.String(), want: "replace"},
		{name: "keep decision", got: KeepDecision().Kind.String(), want: "keep"},
		{name: "discard decision", got: DiscardDecision().Kind.String(), want: "discard"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
