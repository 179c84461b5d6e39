package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskdeck/internal/app"
	"github.com/desertthunder/taskdeck/internal/formatter"
	"github.com/desertthunder/taskdeck/internal/models"
)

// Menu runs the numbered text menu over the Runner's input and output.
// The session lives as long as the loop: everything is gone on exit except
// whatever the user exported.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.seedSession(cmd); err != nil {
		return err
	}

	session := &menuSession{
		app:          r.app,
		scanner:      bufio.NewScanner(r.input),
		out:          r.output,
		exportDir:    r.config.Export.Dir,
		exportFormat: r.config.Export.Format,
	}
	session.run()
	return nil
}

// menuSession drives one interactive menu loop. All business decisions belong
// to the application service; the session only reads input, dispatches and
// renders the uniform success/failure messages.
type menuSession struct {
	app          *app.App
	scanner      *bufio.Scanner
	out          io.Writer
	exportDir    string
	exportFormat string
}

func (s *menuSession) run() {
	fmt.Fprintln(s.out, "Welcome to taskdeck")

	for {
		s.printMainMenu()
		choice, ok := s.readInt("\nChoose an option: ")
		if !ok {
			return
		}

		switch choice {
		case 1:
			if !s.categoryMenu() {
				return
			}
		case 2:
			if !s.taskMenu() {
				return
			}
		case 3:
			s.export()
		case 0:
			fmt.Fprintln(s.out, "\nExiting.")
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *menuSession) printMainMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "---------------------------------------")
	fmt.Fprintln(s.out, " Main menu")
	fmt.Fprintln(s.out, "---------------------------------------")
	fmt.Fprintln(s.out, "1. Manage categories")
	fmt.Fprintln(s.out, "2. Manage tasks")
	fmt.Fprintln(s.out, "3. Export snapshot")
	fmt.Fprintln(s.out, "0. Exit")
	fmt.Fprintln(s.out, "---------------------------------------")
}

// categoryMenu handles the category sub-menu. It returns false when input ran
// out and the whole session should stop.
func (s *menuSession) categoryMenu() bool {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "--- Category menu ---")
		fmt.Fprintln(s.out, "1. List categories")
		fmt.Fprintln(s.out, "2. Create category")
		fmt.Fprintln(s.out, "3. Search categories by name")
		fmt.Fprintln(s.out, "4. Rename category")
		fmt.Fprintln(s.out, "5. Delete category")
		fmt.Fprintln(s.out, "0. Back to main menu")

		choice, ok := s.readInt("\nChoose an option: ")
		if !ok {
			return false
		}

		switch choice {
		case 1:
			s.printCategories(s.app.ListCategories())
		case 2:
			if !s.createCategory() {
				return false
			}
		case 3:
			if !s.searchCategories() {
				return false
			}
		case 4:
			if !s.renameCategory() {
				return false
			}
		case 5:
			if !s.deleteCategory() {
				return false
			}
		case 0:
			return true
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

// taskMenu handles the task sub-menu, same contract as categoryMenu.
func (s *menuSession) taskMenu() bool {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "--- Task menu ---")
		fmt.Fprintln(s.out, "1. List all tasks")
		fmt.Fprintln(s.out, "2. Create task")
		fmt.Fprintln(s.out, "3. Search tasks by title")
		fmt.Fprintln(s.out, "4. Filter tasks by category")
		fmt.Fprintln(s.out, "5. Filter tasks by status (done/pending)")
		fmt.Fprintln(s.out, "6. Modify task (title / description / category)")
		fmt.Fprintln(s.out, "7. Mark task as done")
		fmt.Fprintln(s.out, "8. Mark task as pending")
		fmt.Fprintln(s.out, "9. Delete task")
		fmt.Fprintln(s.out, "0. Back to main menu")

		choice, ok := s.readInt("\nChoose an option: ")
		if !ok {
			return false
		}

		switch choice {
		case 1:
			s.printTasks(s.app.ListTasks())
		case 2:
			if !s.createTask() {
				return false
			}
		case 3:
			if !s.searchTasks() {
				return false
			}
		case 4:
			if !s.filterTasksByCategory() {
				return false
			}
		case 5:
			if !s.filterTasksByStatus() {
				return false
			}
		case 6:
			if !s.modifyTaskMenu() {
				return false
			}
		case 7:
			if !s.markTask(true) {
				return false
			}
		case 8:
			if !s.markTask(false) {
				return false
			}
		case 9:
			if !s.deleteTask() {
				return false
			}
		case 0:
			return true
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *menuSession) createCategory() bool {
	name, ok := s.readLine("\nEnter category name: ")
	if !ok {
		return false
	}

	category, err := s.app.CreateCategory(name)
	if err != nil {
		fmt.Fprintln(s.out, "Could not create category. Name may be invalid or already used.")
	} else {
		fmt.Fprintf(s.out, "Category created with id %d\n", category.ID)
	}
	return true
}

func (s *menuSession) searchCategories() bool {
	text, ok := s.readLine("\nEnter text to search in category names: ")
	if !ok {
		return false
	}
	s.printCategories(s.app.SearchCategoriesByName(text))
	return true
}

func (s *menuSession) renameCategory() bool {
	s.printCategories(s.app.ListCategories())
	id, ok := s.readInt("\nEnter category id to rename: ")
	if !ok {
		return false
	}
	newName, ok := s.readLine("\nEnter new category name: ")
	if !ok {
		return false
	}

	if s.app.RenameCategory(id, newName) {
		fmt.Fprintln(s.out, "Category renamed.")
	} else {
		fmt.Fprintln(s.out, "Category not found.")
	}
	return true
}

func (s *menuSession) deleteCategory() bool {
	s.printCategories(s.app.ListCategories())
	id, ok := s.readInt("\nEnter category id to delete: ")
	if !ok {
		return false
	}

	if s.app.DeleteCategory(id) {
		fmt.Fprintln(s.out, "Category deleted. Tasks using this category now have no category.")
	} else {
		fmt.Fprintln(s.out, "Category not found.")
	}
	return true
}

func (s *menuSession) createTask() bool {
	title, ok := s.readLine("\nEnter task title: ")
	if !ok {
		return false
	}
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(s.out, "Invalid title. Task not created.")
		return true
	}

	description, ok := s.readLine("\nEnter task description (optional): ")
	if !ok {
		return false
	}

	// Check categories before asking for an id
	categories := s.app.ListCategories()
	if len(categories) == 0 {
		fmt.Fprintln(s.out, "No categories available. Create a category first.")
		return true
	}

	s.printCategories(categories)
	categoryID, ok := s.readInt("\nEnter category id: ")
	if !ok {
		return false
	}

	task, err := s.app.CreateTask(title, description, categoryID)
	if err != nil {
		fmt.Fprintln(s.out, "Could not create task. Invalid category or invalid title.")
	} else {
		fmt.Fprintf(s.out, "Task created with id %d\n", task.ID)
	}
	return true
}

func (s *menuSession) searchTasks() bool {
	text, ok := s.readLine("\nEnter text to search in task titles: ")
	if !ok {
		return false
	}
	s.printTasks(s.app.SearchTasksByTitle(text))
	return true
}

func (s *menuSession) filterTasksByCategory() bool {
	categories := s.app.ListCategories()
	if len(categories) == 0 {
		fmt.Fprintln(s.out, "No categories available. Create a category first.")
		return true
	}

	s.printCategories(categories)
	categoryID, ok := s.readInt("\nEnter category id to filter tasks: ")
	if !ok {
		return false
	}

	s.printTasks(s.app.ListTasksByCategory(categoryID))
	return true
}

func (s *menuSession) filterTasksByStatus() bool {
	fmt.Fprintln(s.out, "Filter by status:")
	fmt.Fprintln(s.out, "1. Done")
	fmt.Fprintln(s.out, "2. Pending")

	choice, ok := s.readInt("\nChoose an option: ")
	if !ok {
		return false
	}

	switch choice {
	case 1:
		s.printTasks(s.app.ListTasksByDoneStatus(true))
	case 2:
		s.printTasks(s.app.ListTasksByDoneStatus(false))
	default:
		fmt.Fprintln(s.out, "Invalid choice. Returning to task menu.")
	}
	return true
}

func (s *menuSession) modifyTaskMenu() bool {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "--- Modify task ---")
		fmt.Fprintln(s.out, "1. Change title")
		fmt.Fprintln(s.out, "2. Change description")
		fmt.Fprintln(s.out, "3. Change category")
		fmt.Fprintln(s.out, "0. Back")

		choice, ok := s.readInt("\nChoose an option: ")
		if !ok {
			return false
		}

		switch choice {
		case 1:
			if !s.changeTaskTitle() {
				return false
			}
		case 2:
			if !s.changeTaskDescription() {
				return false
			}
		case 3:
			if !s.changeTaskCategory() {
				return false
			}
		case 0:
			return true
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *menuSession) changeTaskTitle() bool {
	s.printTasks(s.app.ListTasks())
	id, ok := s.readInt("\nEnter task id to modify title: ")
	if !ok {
		return false
	}
	newTitle, ok := s.readLine("\nEnter new title: ")
	if !ok {
		return false
	}

	if strings.TrimSpace(newTitle) == "" {
		fmt.Fprintln(s.out, "Invalid title. Operation cancelled.")
		return true
	}

	if s.app.UpdateTaskTitle(id, newTitle) {
		fmt.Fprintln(s.out, "Title updated.")
	} else {
		fmt.Fprintln(s.out, "Task not found.")
	}
	return true
}

func (s *menuSession) changeTaskDescription() bool {
	s.printTasks(s.app.ListTasks())
	id, ok := s.readInt("\nEnter task id to modify description: ")
	if !ok {
		return false
	}
	newDescription, ok := s.readLine("\nEnter new description (optional): ")
	if !ok {
		return false
	}

	if s.app.UpdateTaskDescription(id, newDescription) {
		fmt.Fprintln(s.out, "Description updated.")
	} else {
		fmt.Fprintln(s.out, "Task not found.")
	}
	return true
}

func (s *menuSession) changeTaskCategory() bool {
	s.printTasks(s.app.ListTasks())
	taskID, ok := s.readInt("\nEnter task id to modify category: ")
	if !ok {
		return false
	}

	categories := s.app.ListCategories()
	if len(categories) == 0 {
		fmt.Fprintln(s.out, "No categories available. Create a category first.")
		return true
	}

	s.printCategories(categories)
	categoryID, ok := s.readInt("\nEnter new category id: ")
	if !ok {
		return false
	}

	if s.app.UpdateTaskCategory(taskID, categoryID) {
		fmt.Fprintln(s.out, "Task category updated successfully.")
	} else {
		fmt.Fprintln(s.out, "Task or category not found.")
	}
	return true
}

func (s *menuSession) markTask(done bool) bool {
	s.printTasks(s.app.ListTasks())

	verb := "done"
	if !done {
		verb = "pending"
	}

	id, ok := s.readInt(fmt.Sprintf("\nEnter task id to mark as %s: ", verb))
	if !ok {
		return false
	}

	applied := false
	if done {
		applied = s.app.MarkTaskDone(id)
	} else {
		applied = s.app.MarkTaskPending(id)
	}

	if applied {
		fmt.Fprintf(s.out, "Task marked as %s.\n", verb)
	} else {
		fmt.Fprintln(s.out, "Task not found.")
	}
	return true
}

func (s *menuSession) deleteTask() bool {
	s.printTasks(s.app.ListTasks())
	id, ok := s.readInt("\nEnter task id to delete: ")
	if !ok {
		return false
	}

	if s.app.DeleteTask(id) {
		fmt.Fprintln(s.out, "Task deleted.")
	} else {
		fmt.Fprintln(s.out, "Task not found.")
	}
	return true
}

func (s *menuSession) export() {
	snapshot := formatter.NewSnapshot(s.app.ListCategories(), s.app.ListTasks())
	result, err := formatter.WriteExport(snapshot, s.exportDir, s.exportFormat)
	if err != nil {
		fmt.Fprintf(s.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Exported %s\n", strings.Join(result.Files, ", "))
}

func (s *menuSession) printCategories(categories []*models.Category) {
	fmt.Fprint(s.out, formatter.FormatCategories(categories))
}

func (s *menuSession) printTasks(tasks []*models.Task) {
	fmt.Fprint(s.out, formatter.FormatTasks(tasks, s.app.CategoryName))
}

// readLine prompts and reads one raw line. ok is false once input runs out.
func (s *menuSession) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// readInt prompts until the user enters a valid integer. ok is false once
// input runs out.
func (s *menuSession) readInt(prompt string) (int, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}

		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid number. Please try again.")
			continue
		}
		return value, true
	}
}
