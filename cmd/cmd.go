// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/repositories"
)

const version = "0.1.0"

func init() {
	// -v is --verbose
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}
}

// rootCommand builds the plx command tree around r.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "plx",
		Usage:   "Convert YouTube and Apple Music playlists to Spotify",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		convertYouTubeCommand, convertAppleMusicCommand, exportCommand, statsCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func spotifyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "spotify-client-id",
			Usage:   "Spotify application client ID",
			Sources: cli.EnvVars("SPOTIFY_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:    "spotify-client-secret",
			Usage:   "Spotify application client secret",
			Sources: cli.EnvVars("SPOTIFY_CLIENT_SECRET"),
		},
	}
}

func convertFlags(extra ...cli.Flag) []cli.Flag {
	flags := append(extra, spotifyFlags()...)
	return append(flags, &cli.BoolFlag{
		Name:  "skip-review",
		Usage: "Keep every match without the interactive review",
	})
}

// convertYouTubeCommand converts a YouTube playlist
func convertYouTubeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "convert-yt-to-spotify",
		Usage: "Convert a YouTube playlist into a new Spotify playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist_id"},
		},
		Flags: convertFlags(&cli.StringFlag{
			Name:  "secret-file",
			Usage: "Google OAuth client secret file (defaults to credentials.youtube.secret_file)",
		}),
		Action: r.ConvertYouTube,
	}
}

// convertAppleMusicCommand converts a saved Apple Music playlist page
func convertAppleMusicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "convert-ap-to-spotify",
		Usage: "Convert a saved Apple Music playlist page into a new Spotify playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "html_file"},
		},
		Flags:  convertFlags(),
		Action: r.ConvertAppleMusic,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export-spotify-playlist",
		Usage: "Export every track of a Spotify playlist to a file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist_id"},
		},
		Flags: append(spotifyFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown or txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to {playlist_id}-spotify-tracks.{ext})",
			},
		),
		Action: r.ExportPlaylist,
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats-spotify-playlist",
		Usage: "Summarize an exported Spotify playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist_id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input",
				Usage: "Exported JSON file (defaults to {playlist_id}-spotify-tracks.json)",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of artists to rank",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.PlaylistStats,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded conversions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "run",
				Usage: "Show the entries of a single run",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to list",
				Value: repositories.DefaultHistoryLimit,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the report log",
		Action: r.Setup,
	}
}
