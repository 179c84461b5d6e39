package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskdeck/internal/app"
	"github.com/desertthunder/taskdeck/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	app    *app.App
	logger *log.Logger
	output io.Writer
	input  io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	App    *app.App
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.App == nil {
		opts.App = app.NewDefault(opts.Logger)
	}

	return &Runner{
		config: opts.Config,
		app:    opts.App,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
	}
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		menuCommand, tuiCommand, exportCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reloads configuration from the command's --config flag when the
// file exists; the embedded defaults stay in place otherwise.
func (r *Runner) loadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Debug("config not loaded, using defaults", "path", path, "err", err)
		return
	}

	r.config = config
	shared.SetLogLevel(r.logger, config.LogLevel())
}

// seedSession loads the bootstrap fixture named by --seed or the [session]
// config section into the fresh repositories. No seed configured is fine.
func (r *Runner) seedSession(cmd *cli.Command) error {
	path := cmd.String("seed")
	if path == "" {
		path = r.config.Session.SeedPath
	}
	if path == "" {
		return nil
	}

	seed, err := shared.LoadSeed(path)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	if err := r.app.Seed(seed); err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}

	r.logger.Info("session seeded", "path", path, "categories", len(seed.Categories), "tasks", len(seed.Tasks))
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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
