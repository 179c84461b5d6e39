// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func seedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "seed",
		Usage: "Path to a TOML seed fixture loaded at session start",
	}
}

// menuCommand runs the classic numbered text menu on stdin/stdout.
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"shell"},
		Usage:   "Run the interactive text menu",
		Flags:   []cli.Flag{configFlag(), seedFlag()},
		Action:  r.Menu,
	}
}

// tuiCommand returns the top-level TUI command for interactive task management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive TUI",
		Flags:   []cli.Flag{configFlag(), seedFlag()},
		Action:  r.TUI,
	}
}

// exportCommand writes a snapshot of the session to disk. Only useful
// together with --seed, since a fresh session is empty.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write a session snapshot to disk",
		Flags: []cli.Flag{
			configFlag(),
			seedFlag(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (csv, markdown, text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		},
		Action: r.Export,
	}
}

// configCommand handles configuration file management.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration as JSON",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigShow,
			},
		},
	}
}
