package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/plx/internal/review"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	input    io.Reader
	prompter review.Prompter
	now      func() time.Time

	// Preset collaborators skip authorization and are used as-is.
	dest    services.Destination
	youtube services.SourceReader
	apple   services.SourceReader
	db      *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Logger      *log.Logger
	Output      io.Writer
	Input       io.Reader
	Prompter    review.Prompter
	Now         func() time.Time
	Destination services.Destination
	YouTube     services.SourceReader
	AppleMusic  services.SourceReader
	DB          *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AppleMusic == nil {
		opts.AppleMusic = services.NewAppleMusicReader()
	}

	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		input:    opts.Input,
		prompter: opts.Prompter,
		now:      opts.Now,
		dest:     opts.Destination,
		youtube:  opts.YouTube,
		apple:    opts.AppleMusic,
		db:       opts.DB,
	}
}

// Before loads the configuration named by --config and applies --verbose.
//
// A missing file falls back to the embedded defaults so that commands
// configured entirely through flags and environment still work.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	shared.SetVerbose(r.logger, cmd.Bool("verbose"))
	if r.config != nil {
		return ctx, nil
	}

	path := cmd.String("config")
	config, err := shared.LoadConfig(path)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", path)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}
	r.config = config
	return ctx, nil
}

// reviewPrompter returns the preset prompter, or one chosen for stdin.
func (r *Runner) reviewPrompter() review.Prompter {
	if r.prompter != nil {
		return r.prompter
	}
	if f, ok := r.input.(*os.File); ok {
		return review.NewPrompter(f, r.output)
	}
	return review.NewLinePrompter(r.input, r.output)
}

// reportLog opens the configured report log. The returned close func is never nil.
func (r *Runner) reportLog(ctx context.Context) (*sql.DB, func(), error) {
	if r.db != nil {
		return r.db, func() {}, nil
	}
	path, err := shared.DatabasePath(r.config)
	if err != nil {
		return nil, func() {}, err
	}
	db, err := shared.OpenReportLog(ctx, path)
	if err != nil {
		return nil, func() {}, err
	}
	r.logger.Debug("opened report log", "path", path)
	return db, func() { db.Close() }, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
