package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskdeck/internal/shared"
	tu "github.com/desertthunder/taskdeck/internal/testing"
)

const seedFixture = `[[categories]]
name = "Work"

[[tasks]]
title = "Write report"
description = "Q3 numbers"
category = "Work"

[[tasks]]
title = "Review PRs"
category = "Work"
done = true
`

// runCLI executes one taskdeck invocation against a fresh Runner and returns
// its output and error.
func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
		Input:  strings.NewReader(input),
	})

	root := &cli.Command{
		Name:     "taskdeck",
		Commands: runner.register(),
	}

	err := root.Run(context.Background(), append([]string{"taskdeck"}, args...))
	return output.String(), err
}

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	if err := os.WriteFile(path, []byte(seedFixture), 0644); err != nil {
		t.Fatalf("failed to write seed fixture: %v", err)
	}
	return path
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Input:  input,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.app == nil {
				t.Error("expected default app to be created")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: limited})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes formatted text", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 4 {
			t.Errorf("expected 4 registered commands, got %d", len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestActions(t *testing.T) {
	t.Run("menu exits cleanly", func(t *testing.T) {
		output, err := runCLI(t, "0\n", "menu")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output, "Exiting.") {
			t.Errorf("expected exit message, got %q", output)
		}
	})

	t.Run("menu loads seed fixture", func(t *testing.T) {
		seedPath := writeSeedFile(t)
		output, err := runCLI(t, "2\n1\n0\n0\n", "menu", "--seed", seedPath)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output, "[1] Write report") {
			t.Errorf("expected seeded task in listing, got %q", output)
		}
	})

	t.Run("menu rejects missing seed file", func(t *testing.T) {
		_, err := runCLI(t, "0\n", "menu", "--seed", "/nonexistent/seed.toml")

		if err == nil {
			t.Fatal("expected error for missing seed file")
		}
		if !strings.Contains(err.Error(), "failed to load seed") {
			t.Errorf("expected seed load error, got %v", err)
		}
	})

	t.Run("export writes snapshot and metadata", func(t *testing.T) {
		seedPath := writeSeedFile(t)
		dir := t.TempDir()

		output, err := runCLI(t, "", "export", "--seed", seedPath, "--format", "csv", "-o", dir)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output, "Wrote") {
			t.Errorf("expected written paths in output, got %q", output)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read export dir: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected data file and metadata sidecar, got %d files", len(entries))
		}

		var csvPath string
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), ".csv") {
				csvPath = filepath.Join(dir, entry.Name())
			}
		}
		if csvPath == "" {
			t.Fatal("expected a CSV export file")
		}

		content := tu.MustReadFile(t, csvPath)
		if !strings.Contains(content, "Write report") {
			t.Errorf("expected seeded task in CSV, got %q", content)
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		seedPath := writeSeedFile(t)

		_, err := runCLI(t, "", "export", "--seed", seedPath, "--format", "xml", "-o", t.TempDir())

		if err == nil {
			t.Fatal("expected error for unknown format")
		}
	})

	t.Run("config init writes the default file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		output, err := runCLI(t, "", "config", "init", "--path", path)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output, "Wrote") {
			t.Errorf("expected confirmation, got %q", output)
		}
		tu.AssertFileExists(t, path)

		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("expected written config to parse, got %v", err)
		}
	})

	t.Run("config init refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0644); err != nil {
			t.Fatalf("failed to write existing config: %v", err)
		}

		_, err := runCLI(t, "", "config", "init", "--path", path)

		if err == nil {
			t.Fatal("expected error for existing file")
		}
	})

	t.Run("config show prints effective configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		output, err := runCLI(t, "", "config", "show", "--config", path)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output, `"Level": "debug"`) {
			t.Errorf("expected configured level in output, got %q", output)
		}
	})
}
