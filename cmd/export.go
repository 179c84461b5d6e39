package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskdeck/internal/formatter"
	"github.com/desertthunder/taskdeck/internal/shared"
)

// Export writes a snapshot of the current session to disk. The session is
// whatever the seed fixture bootstrapped; without one the snapshot is empty.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.seedSession(cmd); err != nil {
		return err
	}

	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}
	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Export.Dir
	}

	snapshot := formatter.NewSnapshot(r.app.ListCategories(), r.app.ListTasks())
	result, err := formatter.WriteExport(snapshot, dir, format)
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	r.logger.Info("snapshot exported",
		"id", snapshot.ID,
		"categories", len(snapshot.Categories),
		"tasks", len(snapshot.Tasks),
	)
	for _, path := range result.Files {
		if err := r.writePlain("Wrote %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

// ConfigInit writes the default configuration file to the given path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return r.writePlain("Wrote %s\n", path)
}

// ConfigShow prints the effective configuration as JSON.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	return r.writeJSON(r.config, true)
}
