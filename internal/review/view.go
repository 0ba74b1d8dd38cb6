package review

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/plx/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a small stylesheet built with named [lipgloss.Style] fields.
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	cursor lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:  NewBold(t),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		help:   NewEm(h),
		cursor: NewBold(t).Reverse(true),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// WindowSize is how many rows the walkthrough shows on each side of the cursor.
const WindowSize = 5

func trackLine(t models.Track) string {
	return fmt.Sprintf("%s - %s - %s", t.Name, t.ArtistNames(), t.Album)
}

// printOptions lists tracks as numbered picks followed by the sentinel options.
func printOptions(w io.Writer, tracks []models.Track, sentinels ...string) {
	for i, t := range tracks {
		fmt.Fprintf(w, "[%d] %s\n", i, trackLine(t))
	}
	for i, s := range sentinels {
		fmt.Fprintf(w, "[%d] %s\n", len(tracks)+i, s)
	}
}

// window returns the half-open range of rows visible around cursor.
func window(n, cursor int) (int, int) {
	start := max(0, cursor-WindowSize)
	end := min(n, cursor+WindowSize+1)
	return start, end
}

func printWindow(w io.Writer, items []models.Candidate, cursor int) {
	start, end := window(len(items), cursor)
	for i := start; i < end; i++ {
		c := items[i]
		line := fmt.Sprintf("%d/%d %s - %s  ==  %s", i+1, len(items), c.Track.Name, c.Track.ArtistNames(), c.Query)
		if i == cursor {
			fmt.Fprintln(w, styles.cursor.Render("> "+line))
			continue
		}
		fmt.Fprintln(w, "  "+line)
	}
}
