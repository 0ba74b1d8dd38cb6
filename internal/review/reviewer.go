package review

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// SearchFunc runs a manual catalog search.
type SearchFunc func(ctx context.Context, query string) ([]models.Track, error)

// Reviewer walks a human through a resolution before anything is written.
type Reviewer struct {
	prompt Prompter
	out    io.Writer
	search SearchFunc
	logger *log.Logger
}

func NewReviewer(p Prompter, out io.Writer, search SearchFunc, logger *log.Logger) *Reviewer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Reviewer{prompt: p, out: out, search: search, logger: shared.WithLogger(logger, "task", "review")}
}

// Review runs the flagged, not-added and final walkthrough phases in order.
// Each phase asks first and can be skipped.
func (r *Reviewer) Review(ctx context.Context, res models.Resolution) (models.Outcome, error) {
	out := models.Outcome{
		Final:   slices.Clone(res.Candidates),
		Ignored: slices.Clone(res.Unresolved),
	}

	fmt.Fprintln(r.out, styles.title.Render(fmt.Sprintf("Found %d/%d", len(res.Candidates), res.Total())))

	if err := r.reviewFlagged(ctx, &out); err != nil {
		return out, err
	}
	if err := r.reviewNotAdded(ctx, &out); err != nil {
		return out, err
	}
	if err := r.walk(ctx, &out); err != nil {
		return out, err
	}

	r.logger.Debug("review finished", "final", len(out.Final), "discarded", len(out.Discarded), "ignored", len(out.Ignored))
	return out, nil
}

func (r *Reviewer) reviewFlagged(ctx context.Context, out *models.Outcome) error {
	n := 0
	for _, c := range out.Final {
		if c.Flagged {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	if ok, err := r.prompt.Confirm(fmt.Sprintf("Review %d flagged tracks?", n), true); err != nil || !ok {
		return err
	}

	kept := make([]models.Candidate, 0, len(out.Final))
	for _, c := range out.Final {
		if !c.Flagged {
			kept = append(kept, c)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		d, err := r.decideFlagged(c)
		if err != nil {
			return err
		}
		switch d.Kind {
		case models.Keep:
			kept = append(kept, c)
		case models.Replace:
			c.Track = *d.Track
			c.Flagged = false
			kept = append(kept, c)
		case models.Discard:
			out.Discarded = append(out.Discarded, c)
		}
	}
	out.Final = kept
	return nil
}

func (r *Reviewer) decideFlagged(c models.Candidate) (models.Decision, error) {
	fmt.Fprintln(r.out, styles.warn.Render("Flagged: "+trackLine(c.Track)))
	fmt.Fprintf(r.out, "Query: %s\n", c.Query)

	show, err := r.prompt.Confirm("Show other results?", true)
	if err != nil {
		return models.Decision{}, err
	}
	var results []models.Track
	if show {
		results = c.OtherResults
	}

	n := len(results)
	printOptions(r.out, results, "keep", "queue for deletion")
	pick, err := r.pick(n+1, n)
	if err != nil {
		return models.Decision{}, err
	}
	switch pick {
	case n:
		return models.KeepDecision(), nil
	case n + 1:
		return models.DiscardDecision(), nil
	default:
		return models.ReplaceDecision(results[pick]), nil
	}
}

// reviewNotAdded offers a manual search for queued candidates, then for unresolved entries.
// A pick goes back into the final list at its source position.
func (r *Reviewer) reviewNotAdded(ctx context.Context, out *models.Outcome) error {
	total := len(out.Discarded) + len(out.Ignored)
	if total == 0 {
		return nil
	}
	if ok, err := r.prompt.Confirm(fmt.Sprintf("Review %d tracks that were not added?", total), true); err != nil || !ok {
		return err
	}

	var discarded []models.Candidate
	for _, c := range out.Discarded {
		fmt.Fprintf(r.out, "Queued for deletion: %s | %s\n", trackLine(c.Track), c.Query)
		t, results, found, err := r.offerSearch(ctx, c.Query)
		if err != nil {
			return err
		}
		if !found {
			discarded = append(discarded, c)
			continue
		}
		c.Track, c.OtherResults, c.Flagged = t, results, false
		out.Final = insertByPosition(out.Final, c)
	}
	out.Discarded = discarded

	var ignored []models.UnresolvedEntry
	for _, u := range out.Ignored {
		fmt.Fprintf(r.out, "Did not find: %s\n", u.Query)
		t, results, found, err := r.offerSearch(ctx, u.Query)
		if err != nil {
			return err
		}
		if !found {
			ignored = append(ignored, u)
			continue
		}
		out.Final = insertByPosition(out.Final, models.Candidate{
			Track:        t,
			Query:        u.Query,
			OtherResults: results,
			OriginID:     u.OriginID,
			Position:     u.Position,
		})
	}
	out.Ignored = ignored
	return nil
}

func (r *Reviewer) offerSearch(ctx context.Context, query string) (models.Track, []models.Track, bool, error) {
	ok, err := r.prompt.Confirm("Would you like to search for this song?", true)
	if err != nil || !ok {
		return models.Track{}, nil, false, err
	}
	return r.requery(ctx, query)
}

// requery asks for a manual query and a pick among its results. found is
// false when the user chose to ignore the entry.
func (r *Reviewer) requery(ctx context.Context, query string) (t models.Track, results []models.Track, found bool, err error) {
	q, err := r.prompt.Input("Search query (try a simpler query or a different version)", query)
	if err != nil {
		return t, nil, false, err
	}
	results, err = r.search(ctx, q)
	if err != nil {
		return t, nil, false, fmt.Errorf("manual search %q: %w", q, err)
	}

	printOptions(r.out, results, "Completely ignore and log")
	pick, err := r.pick(len(results), 0)
	if err != nil || pick == len(results) {
		return t, results, false, err
	}
	return results[pick], results, true, nil
}

func (r *Reviewer) walk(ctx context.Context, out *models.Outcome) error {
	if len(out.Final) == 0 {
		return nil
	}
	if ok, err := r.prompt.Confirm("Walk through the final results?", true); err != nil || !ok {
		return err
	}

	w := newWalkthrough(out.Final)
	for w.state == browsing {
		if err := ctx.Err(); err != nil {
			return err
		}

		printWindow(r.out, w.items, w.cursor)
		fmt.Fprintln(r.out, styles.help.Render("h back, j or enter forward, m more options"))

		c := w.current()
		cmd, err := r.prompt.Input(fmt.Sprintf("%d/%d %s - review?", w.cursor+1, len(w.items), trackLine(c.Track)), "j")
		if err != nil {
			return err
		}

		switch strings.ToLower(cmd) {
		case "h":
			w.back()
		case "j":
			final := false
			if w.atEnd() {
				if final, err = r.prompt.Confirm("Are these your final results?", false); err != nil {
					return err
				}
			}
			w.forward(final)
		case "m":
			t, results, found, err := r.requery(ctx, c.Query)
			if err != nil {
				return err
			}
			if found {
				c.Track, c.OtherResults, c.Flagged = t, results, false
				w.replace(w.cursor, c)
				continue
			}
			removed, _ := w.remove(w.cursor)
			out.Discarded = append(out.Discarded, removed)
		default:
			r.invalid(fmt.Errorf("%w: unknown command %q", shared.ErrInvalidSelection, cmd))
		}
	}

	out.Final = w.items
	fmt.Fprintln(r.out, styles.ok.Render(fmt.Sprintf("%d tracks ready", len(out.Final))))
	return nil
}

// pick reads an option number in [0, last], re-prompting until it gets one.
func (r *Reviewer) pick(last, def int) (int, error) {
	for {
		answer, err := r.prompt.Input("Input option number", strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		i, err := parsePick(answer, last)
		if err == nil {
			return i, nil
		}
		r.invalid(err)
	}
}

func parsePick(answer string, last int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", shared.ErrInvalidSelection, answer)
	}
	if i < 0 || i > last {
		return 0, fmt.Errorf("%w: %d is not between 0 and %d", shared.ErrInvalidSelection, i, last)
	}
	return i, nil
}

func (r *Reviewer) invalid(err error) {
	fmt.Fprintln(r.out, styles.err.Render(err.Error()))
}

func insertByPosition(items []models.Candidate, c models.Candidate) []models.Candidate {
	i := slices.IndexFunc(items, func(o models.Candidate) bool { return o.Position > c.Position })
	if i < 0 {
		return append(items, c)
	}
	return slices.Insert(items, i, c)
}
