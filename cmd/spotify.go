package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
)

// ExportPlaylist writes every item of a Spotify playlist to a file.
func (r *Runner) ExportPlaylist(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlist_id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	dest, err := r.spotifyDestination(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Info("exporting spotify playlist", "playlist", playlistID, "format", format)
	export, err := tasks.Export(ctx, dest, playlistID, r.showProgress)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}
	r.writePlain("✓ Exported %d tracks from %s to %s\n", len(export.Items), export.Playlist.Name, path)
	return nil
}

// PlaylistStats summarizes a playlist previously written by export-spotify-playlist.
func (r *Runner) PlaylistStats(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlist_id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}

	path := cmd.String("input")
	if path == "" {
		path = formatter.DefaultFilename(playlistID, formatter.JSON)
	}
	items, err := formatter.ReadJSONExport(path)
	if err != nil {
		return err
	}

	stats := formatter.Stats(items, int(cmd.Int("top")))
	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}
	_, err = r.output.Write(formatter.RenderStats(playlistID, stats))
	return err
}
