package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/shared"
)

// Setup writes config.toml from the template when it is missing and initializes the report log.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return err
		}
		r.config = config
		r.writePlain("✓ Created %s\n", configPath)
	} else {
		r.writePlain("✓ Using existing %s\n", configPath)
	}

	path, err := shared.DatabasePath(r.config)
	if err != nil {
		return err
	}
	db, err := shared.OpenReportLog(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to initialize report log: %w", err)
	}
	defer db.Close()
	r.logger.Info("report log ready", "path", path)

	r.writePlain("✓ Report log initialized at %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Spotify client_id and client_secret to %s\n", configPath)
	r.writePlain("2. Register %s as a redirect URI for your Spotify and Google apps\n", r.config.RedirectURL())
	r.writePlain("3. Run 'plx convert-yt-to-spotify <playlist_id>' or 'plx convert-ap-to-spotify <html_file>'\n")
	return nil
}
