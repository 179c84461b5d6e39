package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/taskdeck/internal/app"
	"github.com/desertthunder/taskdeck/internal/shared"
	tu "github.com/desertthunder/taskdeck/internal/testing"
)

// runMenu drives one scripted menu session and returns everything it printed.
func runMenu(t *testing.T, a *app.App, script, exportDir string) string {
	t.Helper()
	out := &bytes.Buffer{}
	session := &menuSession{
		app:          a,
		scanner:      bufio.NewScanner(strings.NewReader(script)),
		out:          out,
		exportDir:    exportDir,
		exportFormat: "text",
	}
	session.run()
	return out.String()
}

func emptyApp(t *testing.T) *app.App {
	t.Helper()
	return app.NewDefault(shared.NewLogger(io.Discard))
}

func seededApp(t *testing.T) *app.App {
	t.Helper()
	a := emptyApp(t)
	if err := a.Seed(tu.SampleSeed()); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return a
}

func TestMenu(t *testing.T) {
	t.Run("exits on zero", func(t *testing.T) {
		output := runMenu(t, emptyApp(t), "0\n", t.TempDir())

		if !strings.Contains(output, "Welcome to taskdeck") {
			t.Errorf("expected welcome banner, got %q", output)
		}
		if !strings.Contains(output, "Exiting.") {
			t.Errorf("expected exit message, got %q", output)
		}
	})

	t.Run("stops when input runs out", func(t *testing.T) {
		output := runMenu(t, emptyApp(t), "1\n", t.TempDir())

		if !strings.Contains(output, "Category menu") {
			t.Errorf("expected category menu before EOF, got %q", output)
		}
	})

	t.Run("rejects unknown main menu choice", func(t *testing.T) {
		output := runMenu(t, emptyApp(t), "9\n0\n", t.TempDir())

		if !strings.Contains(output, "Invalid choice. Please try again.") {
			t.Errorf("expected invalid choice message, got %q", output)
		}
	})

	t.Run("retries on non-numeric input", func(t *testing.T) {
		output := runMenu(t, emptyApp(t), "abc\n0\n", t.TempDir())

		if !strings.Contains(output, "Invalid number. Please try again.") {
			t.Errorf("expected invalid number message, got %q", output)
		}
		if !strings.Contains(output, "Exiting.") {
			t.Errorf("expected session to continue to exit, got %q", output)
		}
	})

	t.Run("categories", func(t *testing.T) {
		t.Run("create and list", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "1\n2\nWork\n1\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Category created with id 1") {
				t.Errorf("expected creation confirmation, got %q", output)
			}
			if !strings.Contains(output, "[1] Work") {
				t.Errorf("expected category listing, got %q", output)
			}
		})

		t.Run("rejects blank and duplicate names", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "1\n2\nWork\n2\n   \n2\nWORK\n0\n0\n", t.TempDir())

			rejections := strings.Count(output, "Could not create category. Name may be invalid or already used.")
			if rejections != 2 {
				t.Errorf("expected 2 rejections, got %d in %q", rejections, output)
			}
		})

		t.Run("rename overwrites the name", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "1\n2\nWork\n4\n1\nOffice\n1\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Category renamed.") {
				t.Errorf("expected rename confirmation, got %q", output)
			}
			if !strings.Contains(output, "[1] Office") {
				t.Errorf("expected renamed category in listing, got %q", output)
			}
		})

		t.Run("rename of unknown id fails", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "1\n4\n99\nOffice\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Category not found.") {
				t.Errorf("expected not found message, got %q", output)
			}
		})

		t.Run("delete orphans referencing tasks", func(t *testing.T) {
			script := "1\n2\nWork\n0\n" + // create category
				"2\n2\nShip\nrelease build\n1\n0\n" + // create task in it
				"1\n5\n1\n0\n" + // delete the category
				"2\n1\n0\n0\n" // list tasks
			output := runMenu(t, emptyApp(t), script, t.TempDir())

			if !strings.Contains(output, "Task created with id 1") {
				t.Fatalf("expected task creation, got %q", output)
			}
			if !strings.Contains(output, "Category deleted. Tasks using this category now have no category.") {
				t.Errorf("expected orphaning message, got %q", output)
			}
			if !strings.Contains(output, "(no category)") {
				t.Errorf("expected orphaned task in listing, got %q", output)
			}
		})
	})

	t.Run("tasks", func(t *testing.T) {
		t.Run("create requires an existing category", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "2\n2\nShip\n\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "No categories available. Create a category first.") {
				t.Errorf("expected missing category message, got %q", output)
			}
		})

		t.Run("create with unknown category id fails", func(t *testing.T) {
			script := "1\n2\nWork\n0\n2\n2\nShip\n\n999\n0\n0\n"
			output := runMenu(t, emptyApp(t), script, t.TempDir())

			if !strings.Contains(output, "Could not create task. Invalid category or invalid title.") {
				t.Errorf("expected rejection message, got %q", output)
			}
		})

		t.Run("create with blank title is cancelled early", func(t *testing.T) {
			output := runMenu(t, emptyApp(t), "2\n2\n   \n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Invalid title. Task not created.") {
				t.Errorf("expected blank title message, got %q", output)
			}
		})

		t.Run("mark done and filter by status", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n7\n2\n5\n1\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Task marked as done.") {
				t.Errorf("expected done confirmation, got %q", output)
			}
			if !strings.Contains(output, "[2] Review PRs") {
				t.Errorf("expected newly done task in filter, got %q", output)
			}
			if !strings.Contains(output, "[3] Water plants") {
				t.Errorf("expected seeded done task in filter, got %q", output)
			}
		})

		t.Run("mark unknown task fails", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n7\n99\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Task not found.") {
				t.Errorf("expected not found message, got %q", output)
			}
		})

		t.Run("search by title", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n3\nreport\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "[1] Write report") {
				t.Errorf("expected matching task, got %q", output)
			}
			if strings.Contains(output, "Water plants") {
				t.Errorf("expected non-matching tasks omitted, got %q", output)
			}
		})

		t.Run("filter by category", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n4\n2\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "[3] Water plants") {
				t.Errorf("expected task in category, got %q", output)
			}
			if strings.Contains(output, "Write report") {
				t.Errorf("expected tasks of other categories omitted, got %q", output)
			}
		})

		t.Run("modify title", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n6\n1\n1\nQuarterly report\n0\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Title updated.") {
				t.Errorf("expected update confirmation, got %q", output)
			}
		})

		t.Run("modify title rejects blank input", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n6\n1\n1\n   \n0\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Invalid title. Operation cancelled.") {
				t.Errorf("expected cancellation message, got %q", output)
			}
		})

		t.Run("change category of missing task fails", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n6\n3\n99\n1\n0\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Task or category not found.") {
				t.Errorf("expected combined not found message, got %q", output)
			}
		})

		t.Run("delete task", func(t *testing.T) {
			output := runMenu(t, seededApp(t), "2\n9\n1\n9\n1\n0\n0\n", t.TempDir())

			if !strings.Contains(output, "Task deleted.") {
				t.Errorf("expected delete confirmation, got %q", output)
			}
			if !strings.Contains(output, "Task not found.") {
				t.Errorf("expected second delete of same id to fail, got %q", output)
			}
		})
	})

	t.Run("export writes snapshot files", func(t *testing.T) {
		dir := t.TempDir()
		output := runMenu(t, seededApp(t), "3\n0\n", dir)

		if !strings.Contains(output, "Exported") {
			t.Errorf("expected export confirmation, got %q", output)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read export dir: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected data file and metadata sidecar, got %d files", len(entries))
		}
	})
}
