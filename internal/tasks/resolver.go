package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/normalize"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// SearchLimit is how many catalog results are kept per query.
const SearchLimit = 9

// Query is a normalized search string tied back to its source entry.
type Query struct {
	Text     string
	OriginID string
	Position int
}

// BuildQueries normalizes source entries in order, one query per entry.
func BuildQueries(kind models.SourceKind, entries []models.RawEntry) []Query {
	queries := make([]Query, len(entries))
	for i, e := range entries {
		var text string
		switch kind {
		case models.AppleMusic:
			text = normalize.AppleMusicQuery(e.Title, e.OwnerName)
		default:
			text = normalize.YouTubeQuery(e)
		}
		queries[i] = Query{Text: text, OriginID: e.SourceID, Position: i}
	}
	return queries
}

// Resolver matches queries against the destination catalog.
type Resolver struct {
	searcher services.Searcher
	limiter  *rate.Limiter
	logger   *log.Logger
}

// NewResolver paces searches at rps requests per second. rps <= 0 disables pacing.
func NewResolver(searcher services.Searcher, rps float64, logger *log.Logger) *Resolver {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{
		searcher: searcher,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   shared.WithLogger(logger, "task", "resolve"),
	}
}

// Search runs one paced catalog search.
func (r *Resolver) Search(ctx context.Context, query string) ([]models.Track, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.searcher.SearchTracks(ctx, query, SearchLimit)
}

// Resolve searches for q and takes the first result as the provisional match.
//
// A query without results fails with [shared.ErrNoResults]. The candidate is
// flagged when the matched name suggests a different recording.
func (r *Resolver) Resolve(ctx context.Context, q Query) (models.Candidate, error) {
	tracks, err := r.Search(ctx, q.Text)
	if err != nil {
		return models.Candidate{}, err
	}
	if len(tracks) == 0 {
		return models.Candidate{}, fmt.Errorf("%w: %s", shared.ErrNoResults, q.Text)
	}

	return models.Candidate{
		Track:        tracks[0],
		Query:        q.Text,
		OtherResults: tracks,
		OriginID:     q.OriginID,
		Position:     q.Position,
		Flagged:      normalize.IsFlaggedName(tracks[0].Name),
	}, nil
}

// ResolveAll resolves every query in order. Queries without results become
// unresolved entries; any other search failure stops the run.
func (r *Resolver) ResolveAll(ctx context.Context, queries []Query, progress ProgressFunc) (models.Resolution, error) {
	var res models.Resolution
	for i, q := range queries {
		c, err := r.Resolve(ctx, q)
		switch {
		case errors.Is(err, shared.ErrNoResults):
			r.logger.Debug("no match", "query", q.Text)
			res.Unresolved = append(res.Unresolved, models.UnresolvedEntry{Query: q.Text, OriginID: q.OriginID, Position: q.Position})
			progress.send(searchUpdate(i+1, len(queries), q.Text, nil))
		case err != nil:
			return res, fmt.Errorf("search %d/%d: %w", i+1, len(queries), err)
		default:
			res.Candidates = append(res.Candidates, c)
			progress.send(searchUpdate(i+1, len(queries), q.Text, &c))
		}
	}
	return res, nil
}
