package review

import (
	"slices"

	"github.com/desertthunder/plx/internal/models"
)

type state int

const (
	browsing state = iota
	done
)

// walkthrough is a cursor over an owned candidate slice. Every mutation goes
// through replace or remove, which return the cursor to resume from.
type walkthrough struct {
	items  []models.Candidate
	cursor int
	state  state
}

func newWalkthrough(items []models.Candidate) *walkthrough {
	w := &walkthrough{items: slices.Clone(items)}
	if len(w.items) == 0 {
		w.state = done
	}
	return w
}

func (w *walkthrough) current() models.Candidate {
	return w.items[w.cursor]
}

func (w *walkthrough) atEnd() bool {
	return w.cursor == len(w.items)-1
}

// back moves the cursor up; at the first row it does nothing.
func (w *walkthrough) back() {
	if w.cursor > 0 {
		w.cursor--
	}
}

// forward moves the cursor down. At the last row it finishes only when final is true.
func (w *walkthrough) forward(final bool) {
	if !w.atEnd() {
		w.cursor++
		return
	}
	if final {
		w.state = done
	}
}

func (w *walkthrough) replace(i int, c models.Candidate) int {
	w.items[i] = c
	return w.cursor
}

// remove drops row i and clamps the cursor. Removing the last row finishes the walkthrough.
func (w *walkthrough) remove(i int) (models.Candidate, int) {
	removed := w.items[i]
	w.items = slices.Delete(w.items, i, i+1)
	if len(w.items) == 0 {
		w.cursor = 0
		w.state = done
		return removed, w.cursor
	}
	w.cursor = min(w.cursor, len(w.items)-1)
	return removed, w.cursor
}
