package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/repositories"
)

// History lists recorded conversions, or the entries of one run with --run.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, closeDB, err := r.reportLog(ctx)
	if err != nil {
		return err
	}
	defer closeDB()
	repo := repositories.NewReportRepository(db)

	if id := cmd.String("run"); id != "" {
		run, err := repo.GetRun(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(run, true)
		}
		r.printRun(run)
		return nil
	}

	runs, err := repo.ListRuns(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}
	if len(runs) == 0 {
		return r.writePlain("No conversions recorded yet.\n")
	}

	r.writePlain("Found %d runs:\n\n", len(runs))
	for i, run := range runs {
		r.writePlain("%d. %s  %s (%s)\n", i+1, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.PlaylistTitle, run.SourceKind.Label())
		r.writePlain("   Written: %d/%d  Spotify: %s\n", run.Written, run.Total, run.DestinationID)
		r.writePlain("   Run: %s\n", run.ID)
	}
	return nil
}
