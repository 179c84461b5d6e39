package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/taskdeck/internal/models"
	"github.com/desertthunder/taskdeck/internal/repositories"
	"github.com/desertthunder/taskdeck/internal/shared"
)

// App coordinates the category and task repositories. It is the sole contract
// surface for front ends: validation and cross-entity consistency live here,
// while the repositories only store and report existence.
//
// Failures are uniform. Create operations return [shared.ErrRejected] no
// matter whether the input was blank, duplicated or referenced a missing id;
// mutating operations return false under the same conditions. Callers cannot
// tell the cases apart from the return value, and every failed operation
// leaves all state untouched.
type App struct {
	categories *repositories.Repository[*models.Category]
	tasks      *repositories.Repository[*models.Task]
	logger     *log.Logger
}

// New creates an App over the given repositories.
func New(categories *repositories.Repository[*models.Category], tasks *repositories.Repository[*models.Task], logger *log.Logger) *App {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &App{categories: categories, tasks: tasks, logger: logger}
}

// NewDefault creates an App with fresh in-memory repositories. Front ends
// normally use this; tests can call it freely since there is no process-wide
// state.
func NewDefault(logger *log.Logger) *App {
	return New(repositories.NewCategories(), repositories.NewTasks(), logger)
}

// CreateCategory creates a category with the given name. The name is trimmed
// and must be non-blank and unique among stored categories, ignoring case.
func (a *App) CreateCategory(name string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		a.logger.Debug("category rejected: blank name")
		return nil, shared.ErrRejected
	}

	if _, ok := a.findCategoryByName(trimmed); ok {
		a.logger.Debug("category rejected: name taken", "name", trimmed)
		return nil, shared.ErrRejected
	}

	category := a.categories.Create(func(id int) *models.Category {
		return &models.Category{ID: id, Name: trimmed}
	})
	a.logger.Debug("category created", "id", category.ID, "name", category.Name)
	return category, nil
}

// ListCategories returns a snapshot of all stored categories.
func (a *App) ListCategories() []*models.Category {
	return a.categories.All()
}

// SearchCategoriesByName returns categories whose name contains text,
// ignoring case. An empty query returns nothing.
func (a *App) SearchCategoriesByName(text string) []*models.Category {
	return a.categories.Search(text)
}

// RenameCategory overwrites the name of an existing category. The new name is
// not re-validated: blank-check and uniqueness apply at creation only.
func (a *App) RenameCategory(id int, newName string) bool {
	category, ok := a.categories.Get(id)
	if !ok {
		return false
	}

	category.Name = newName
	a.logger.Debug("category renamed", "id", id, "name", newName)
	return true
}

// DeleteCategory removes a category and detaches it from every task that
// referenced it, so no task can observe a deleted category afterwards.
func (a *App) DeleteCategory(id int) bool {
	if !a.categories.Delete(id) {
		return false
	}

	orphaned := 0
	for _, task := range a.tasks.All() {
		if task.InCategory(id) {
			task.CategoryID = nil
			orphaned++
		}
	}

	a.logger.Debug("category deleted", "id", id, "orphaned_tasks", orphaned)
	return true
}

// CategoryName resolves a category id to its current name. Front ends use
// this to render the weak reference held by tasks.
func (a *App) CategoryName(id int) (string, bool) {
	category, ok := a.categories.Get(id)
	if !ok {
		return "", false
	}
	return category.Name, true
}

// CreateTask creates a task under an existing category. The title is trimmed
// and must be non-blank; the description is optional and trimmed.
func (a *App) CreateTask(title, description string, categoryID int) (*models.Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		a.logger.Debug("task rejected: blank title")
		return nil, shared.ErrRejected
	}

	if _, ok := a.categories.Get(categoryID); !ok {
		a.logger.Debug("task rejected: unknown category", "category_id", categoryID)
		return nil, shared.ErrRejected
	}

	task := a.tasks.Create(func(id int) *models.Task {
		ref := categoryID
		return &models.Task{
			ID:          id,
			Title:       trimmed,
			Description: strings.TrimSpace(description),
			CategoryID:  &ref,
		}
	})
	a.logger.Debug("task created", "id", task.ID, "title", task.Title)
	return task, nil
}

// ListTasks returns a snapshot of all stored tasks.
func (a *App) ListTasks() []*models.Task {
	return a.tasks.All()
}

// SearchTasksByTitle returns tasks whose title contains text, ignoring case.
// An empty query returns nothing.
func (a *App) SearchTasksByTitle(text string) []*models.Task {
	return a.tasks.Search(text)
}

// ListTasksByCategory returns the tasks currently filed under the given
// category id.
func (a *App) ListTasksByCategory(categoryID int) []*models.Task {
	result := []*models.Task{}
	for _, task := range a.tasks.All() {
		if task.InCategory(categoryID) {
			result = append(result, task)
		}
	}
	return result
}

// ListTasksByDoneStatus returns the tasks matching the given done flag.
func (a *App) ListTasksByDoneStatus(done bool) []*models.Task {
	result := []*models.Task{}
	for _, task := range a.tasks.All() {
		if task.Done == done {
			result = append(result, task)
		}
	}
	return result
}

// UpdateTaskTitle overwrites the title of an existing task. Like rename, the
// new value is not re-validated.
func (a *App) UpdateTaskTitle(id int, newTitle string) bool {
	task, ok := a.tasks.Get(id)
	if !ok {
		return false
	}

	task.Title = newTitle
	return true
}

// UpdateTaskDescription overwrites the description of an existing task.
func (a *App) UpdateTaskDescription(id int, newDescription string) bool {
	task, ok := a.tasks.Get(id)
	if !ok {
		return false
	}

	task.Description = newDescription
	return true
}

// UpdateTaskCategory moves a task to another existing category. Both lookups
// happen before any mutation, so a failed call leaves the task unchanged.
func (a *App) UpdateTaskCategory(id, newCategoryID int) bool {
	task, ok := a.tasks.Get(id)
	if !ok {
		return false
	}
	if _, ok := a.categories.Get(newCategoryID); !ok {
		return false
	}

	ref := newCategoryID
	task.CategoryID = &ref
	return true
}

// MarkTaskDone flags an existing task as completed. Idempotent.
func (a *App) MarkTaskDone(id int) bool {
	task, ok := a.tasks.Get(id)
	if !ok {
		return false
	}

	task.MarkDone()
	return true
}

// MarkTaskPending flags an existing task as not completed. Idempotent.
func (a *App) MarkTaskPending(id int) bool {
	task, ok := a.tasks.Get(id)
	if !ok {
		return false
	}

	task.MarkPending()
	return true
}

// DeleteTask removes a task by id.
func (a *App) DeleteTask(id int) bool {
	return a.tasks.Delete(id)
}

// Seed loads a bootstrap fixture through the normal create operations:
// categories first, then tasks resolved to their category by name. The first
// entry that fails validation aborts the load.
func (a *App) Seed(seed *shared.Seed) error {
	if seed == nil {
		return nil
	}

	for _, sc := range seed.Categories {
		if _, err := a.CreateCategory(sc.Name); err != nil {
			return fmt.Errorf("seed category %q: %w", sc.Name, err)
		}
	}

	for _, st := range seed.Tasks {
		category, ok := a.findCategoryByName(strings.TrimSpace(st.Category))
		if !ok {
			return fmt.Errorf("seed task %q: category %q: %w", st.Title, st.Category, shared.ErrRejected)
		}

		task, err := a.CreateTask(st.Title, st.Description, category.ID)
		if err != nil {
			return fmt.Errorf("seed task %q: %w", st.Title, err)
		}
		if st.Done {
			task.MarkDone()
		}
	}

	a.logger.Debug("seed applied", "categories", len(seed.Categories), "tasks", len(seed.Tasks))
	return nil
}

func (a *App) findCategoryByName(name string) (*models.Category, bool) {
	for _, category := range a.categories.All() {
		if strings.EqualFold(category.Name, name) {
			return category, true
		}
	}
	return nil, false
}
