// package formatter renders categories and tasks for the terminal and exports
// session snapshots to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/desertthunder/taskdeck/internal/models"
	"github.com/desertthunder/taskdeck/internal/shared"
)

// NoCategoryLabel is rendered for tasks whose category was deleted.
const NoCategoryLabel = "(no category)"

// Snapshot is a point-in-time copy of the session contents, sorted by id for
// stable output. The ID identifies one export run; it has nothing to do with
// entity ids.
type Snapshot struct {
	ID         string
	Categories []*models.Category
	Tasks      []*models.Task

	names map[int]string
}

// NewSnapshot captures the given categories and tasks. The input slices are
// copied and sorted; the session stores stay untouched.
func NewSnapshot(categories []*models.Category, tasks []*models.Task) *Snapshot {
	s := &Snapshot{
		ID:         shared.GenerateID(),
		Categories: append([]*models.Category{}, categories...),
		Tasks:      append([]*models.Task{}, tasks...),
		names:      make(map[int]string, len(categories)),
	}

	sort.Slice(s.Categories, func(i, j int) bool { return s.Categories[i].ID < s.Categories[j].ID })
	sort.Slice(s.Tasks, func(i, j int) bool { return s.Tasks[i].ID < s.Tasks[j].ID })

	for _, category := range s.Categories {
		s.names[category.ID] = category.Name
	}
	return s
}

// CategoryName renders a task's weak category reference, falling back to
// [NoCategoryLabel] for nil or unresolvable references.
func (s *Snapshot) CategoryName(id *int) string {
	if id == nil {
		return NoCategoryLabel
	}
	name, ok := s.names[*id]
	if !ok {
		return NoCategoryLabel
	}
	return name
}

// FormatCategories renders categories as the menu prints them, one "[id] name"
// line per category.
func FormatCategories(categories []*models.Category) string {
	if len(categories) == 0 {
		return "No categories found.\n"
	}

	sorted := append([]*models.Category{}, categories...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var buf bytes.Buffer
	buf.WriteString("Categories:\n")
	for _, category := range sorted {
		buf.WriteString(fmt.Sprintf("[%d] %s\n", category.ID, category.Name))
	}
	return buf.String()
}

// FormatTasks renders tasks as the menu prints them: a "[id] title" line
// followed by indented description, category and done lines. categoryName
// resolves ids to names; tasks without a resolvable category show
// [NoCategoryLabel].
func FormatTasks(tasks []*models.Task, categoryName func(int) (string, bool)) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	sorted := append([]*models.Task{}, tasks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var buf bytes.Buffer
	buf.WriteString("Tasks:\n")
	for _, task := range sorted {
		label := NoCategoryLabel
		if task.CategoryID != nil {
			if name, ok := categoryName(*task.CategoryID); ok {
				label = name
			}
		}

		buf.WriteString(fmt.Sprintf("[%d] %s\n", task.ID, task.Title))
		if task.Description != "" {
			buf.WriteString(fmt.Sprintf("    description: %s\n", task.Description))
		}
		buf.WriteString(fmt.Sprintf("    category: %s | done: %t\n", label, task.Done))
	}
	return buf.String()
}

// ExportToCSV converts a snapshot's tasks to CSV with columns: ID, Title, Description, Category, Done
func ExportToCSV(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Description", "Category", "Done"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, task := range snapshot.Tasks {
		record := []string{
			strconv.Itoa(task.ID),
			task.Title,
			task.Description,
			snapshot.CategoryName(task.CategoryID),
			strconv.FormatBool(task.Done),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a snapshot to Markdown with a section per category
func ExportToMarkdown(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Task Board\n\n")
	buf.WriteString(fmt.Sprintf("**Categories**: %d\n", len(snapshot.Categories)))
	buf.WriteString(fmt.Sprintf("**Tasks**: %d\n\n", len(snapshot.Tasks)))

	for _, category := range snapshot.Categories {
		buf.WriteString(fmt.Sprintf("## %s\n\n", category.Name))
		writeMarkdownTasks(&buf, snapshot, &category.ID)
	}

	orphans := false
	for _, task := range snapshot.Tasks {
		if task.CategoryID == nil {
			orphans = true
			break
		}
	}
	if orphans {
		buf.WriteString(fmt.Sprintf("## %s\n\n", NoCategoryLabel))
		writeMarkdownTasks(&buf, snapshot, nil)
	}

	return buf.Bytes(), nil
}

func writeMarkdownTasks(buf *bytes.Buffer, snapshot *Snapshot, categoryID *int) {
	for _, task := range snapshot.Tasks {
		inSection := (categoryID == nil && task.CategoryID == nil) ||
			(categoryID != nil && task.InCategory(*categoryID))
		if !inSection {
			continue
		}

		check := " "
		if task.Done {
			check = "x"
		}
		buf.WriteString(fmt.Sprintf("- [%s] %s", check, task.Title))
		if task.Description != "" {
			buf.WriteString(fmt.Sprintf(" — %s", task.Description))
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

// ExportToText converts a snapshot to the plain text listing used by the menu
func ExportToText(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(FormatCategories(snapshot.Categories))
	buf.WriteString("\n")
	buf.WriteString(FormatTasks(snapshot.Tasks, func(id int) (string, bool) {
		name, ok := snapshot.names[id]
		return name, ok
	}))

	return buf.Bytes(), nil
}

// snapshotMetadata describes one export run in the metadata JSON sidecar.
type snapshotMetadata struct {
	SnapshotID string `json:"snapshot_id"`
	Categories int    `json:"categories"`
	Tasks      int    `json:"tasks"`
	Done       int    `json:"done"`
}

// ToMetadataJSON generates a JSON description of the snapshot (counts, not contents)
func ToMetadataJSON(snapshot *Snapshot) ([]byte, error) {
	done := 0
	for _, task := range snapshot.Tasks {
		if task.Done {
			done++
		}
	}

	return shared.MarshalJSON(snapshotMetadata{
		SnapshotID: snapshot.ID,
		Categories: len(snapshot.Categories),
		Tasks:      len(snapshot.Tasks),
		Done:       done,
	}, true)
}

// ExportResult contains the paths of files created by WriteExport
type ExportResult struct {
	Files []string
}

// WriteExport writes a snapshot to dir in the requested format (csv, markdown
// or text) alongside a metadata JSON sidecar. The base filename is derived
// from the snapshot id.
func WriteExport(snapshot *Snapshot, dir, format string) (*ExportResult, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	base := "taskdeck_" + snapshot.ID[:8]

	var data []byte
	var name string
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(snapshot)
		name = base + "_tasks.csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(snapshot)
		name = base + ".md"
	case "text", "":
		data, err = ExportToText(snapshot)
		name = base + ".txt"
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return nil, err
	}

	result := &ExportResult{}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}
	result.Files = append(result.Files, path)

	metadata, err := ToMetadataJSON(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataPath := filepath.Join(dir, base+"_metadata.json")
	if err := os.WriteFile(metadataPath, metadata, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}
	result.Files = append(result.Files, metadataPath)

	return result, nil
}
