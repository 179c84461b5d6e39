package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/taskdeck/internal/app"
	"github.com/desertthunder/taskdeck/internal/formatter"
	"github.com/desertthunder/taskdeck/internal/models"
	"github.com/desertthunder/taskdeck/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	CategoryListView
	TaskListView
	PromptView
	ConfirmView
)

var menuEntries = []string{
	"Manage categories",
	"Manage tasks",
	"Export snapshot",
	"Quit",
}

// prompt is a short sequence of text inputs feeding one service call. submit
// receives the collected values and returns the status line to display.
type prompt struct {
	title  string
	labels []string
	values []string
	step   int
	submit func(values []string) string
	ret    ViewState
}

// confirm is a yes/no question guarding a destructive operation.
type confirm struct {
	question string
	accept   func() string
	ret      ViewState
}

// Model represents the TUI application state. All service calls run
// synchronously inside Update; the repositories are never touched from
// another goroutine.
type Model struct {
	app    *app.App
	config *shared.Config
	styles *Palette

	view   ViewState
	width  int
	height int

	categoryList list.Model
	taskList     list.Model
	menuIndex    int

	input   textinput.Model
	prompt  *prompt
	confirm *confirm

	status string
	// taskFilter narrows the task list: nil shows all, otherwise matches Done.
	taskFilter *bool
	searching  bool

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over the given application service.
func NewModel(application *app.App, config *shared.Config) *Model {
	if config == nil {
		config = shared.DefaultConfig()
	}

	input := textinput.New()
	input.Prompt = "> "

	categoryList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	categoryList.Title = "Categories"
	categoryList.SetShowHelp(false)

	taskList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	taskList.Title = "Tasks"
	taskList.SetShowHelp(false)

	return &Model{
		app:          application,
		config:       config,
		styles:       PaletteFromConfig(config.UI),
		view:         MenuView,
		categoryList: categoryList,
		taskList:     taskList,
		input:        input,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.categoryList.SetSize(msg.Width-4, msg.Height-8)
		m.taskList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case CategoryListView:
			return m.handleCategoryListKeys(msg)
		case TaskListView:
			return m.handleTaskListKeys(msg)
		case PromptView:
			return m.handlePromptKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case CategoryListView:
		return m.renderList(&m.categoryList, []key.Binding{m.keys.create, m.keys.rename, m.keys.remove, m.keys.search, m.keys.back, m.keys.quit})
	case TaskListView:
		return m.renderList(&m.taskList, []key.Binding{m.keys.create, m.keys.toggle, m.keys.filter, m.keys.remove, m.keys.back, m.keys.quit})
	case PromptView:
		return m.renderPrompt()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuEntries)-1 {
			m.menuIndex++
		}
	case "1", "2", "3", "4":
		m.menuIndex = int(msg.String()[0] - '1')
		return m.selectMenuEntry()
	case "enter":
		return m.selectMenuEntry()
	case "e":
		m.status = m.exportSnapshot()
	}
	return m, nil
}

func (m *Model) selectMenuEntry() (tea.Model, tea.Cmd) {
	switch m.menuIndex {
	case 0:
		m.refreshCategories()
		m.status = ""
		m.view = CategoryListView
	case 1:
		m.refreshTasks()
		m.status = ""
		m.view = TaskListView
	case 2:
		m.status = m.exportSnapshot()
	case 3:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleCategoryListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the built-in filter input is open, every key belongs to the list.
	if m.categoryList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.searching {
			m.searching = false
			m.refreshCategories()
			m.status = ""
			return m, nil
		}
		m.view = MenuView
		return m, nil
	case "n":
		return m.startPrompt(&prompt{
			title:  "New category",
			labels: []string{"Category name"},
			ret:    CategoryListView,
			submit: func(values []string) string {
				category, err := m.app.CreateCategory(values[0])
				if err != nil {
					return m.fail("Could not create category. Name may be invalid or already used.")
				}
				m.refreshCategories()
				return m.ok(fmt.Sprintf("Category created with id %d", category.ID))
			},
		})
	case "r":
		item, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		return m.startPrompt(&prompt{
			title:  fmt.Sprintf("Rename %q", item.Name),
			labels: []string{"New category name"},
			ret:    CategoryListView,
			submit: func(values []string) string {
				if !m.app.RenameCategory(item.ID, values[0]) {
					return m.fail("Category not found.")
				}
				m.refreshCategories()
				return m.ok("Category renamed.")
			},
		})
	case "s":
		return m.startPrompt(&prompt{
			title:  "Search categories",
			labels: []string{"Text to search in category names"},
			ret:    CategoryListView,
			submit: func(values []string) string {
				matches := m.app.SearchCategoriesByName(values[0])
				m.setCategoryItems(matches)
				m.searching = true
				return m.ok(fmt.Sprintf("%d matching categories. Press esc to show all.", len(matches)))
			},
		})
	case "d":
		item, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		m.confirm = &confirm{
			question: fmt.Sprintf("Delete category %q? Tasks using it will keep no category.", item.Name),
			ret:      CategoryListView,
			accept: func() string {
				if !m.app.DeleteCategory(item.ID) {
					return m.fail("Category not found.")
				}
				m.refreshCategories()
				return m.ok("Category deleted. Tasks using this category now have no category.")
			},
		}
		m.view = ConfirmView
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleTaskListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.taskList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.searching {
			m.searching = false
			m.refreshTasks()
			m.status = ""
			return m, nil
		}
		m.view = MenuView
		return m, nil
	case "n":
		return m.startPrompt(&prompt{
			title:  "New task",
			labels: []string{"Task title", "Description (optional)", "Category id"},
			ret:    TaskListView,
			submit: func(values []string) string {
				categoryID, err := strconv.Atoi(strings.TrimSpace(values[2]))
				if err != nil {
					return m.fail("Invalid category id.")
				}
				task, err := m.app.CreateTask(values[0], values[1], categoryID)
				if err != nil {
					return m.fail("Could not create task. Invalid category or invalid title.")
				}
				m.refreshTasks()
				return m.ok(fmt.Sprintf("Task created with id %d", task.ID))
			},
		})
	case "t":
		item, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.startPrompt(&prompt{
			title:  fmt.Sprintf("Retitle %q", item.Title),
			labels: []string{"New title"},
			ret:    TaskListView,
			submit: func(values []string) string {
				if !m.app.UpdateTaskTitle(item.ID, values[0]) {
					return m.fail("Task not found.")
				}
				m.refreshTasks()
				return m.ok("Title updated.")
			},
		})
	case "i":
		item, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.startPrompt(&prompt{
			title:  fmt.Sprintf("Describe %q", item.Title),
			labels: []string{"New description (optional)"},
			ret:    TaskListView,
			submit: func(values []string) string {
				if !m.app.UpdateTaskDescription(item.ID, values[0]) {
					return m.fail("Task not found.")
				}
				m.refreshTasks()
				return m.ok("Description updated.")
			},
		})
	case "c":
		item, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.startPrompt(&prompt{
			title:  fmt.Sprintf("Move %q", item.Title),
			labels: []string{"New category id"},
			ret:    TaskListView,
			submit: func(values []string) string {
				categoryID, err := strconv.Atoi(strings.TrimSpace(values[0]))
				if err != nil {
					return m.fail("Invalid category id.")
				}
				if !m.app.UpdateTaskCategory(item.ID, categoryID) {
					return m.fail("Task or category not found.")
				}
				m.refreshTasks()
				return m.ok("Task category updated successfully.")
			},
		})
	case "x":
		item, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if item.Done {
			m.app.MarkTaskPending(item.ID)
			m.status = m.ok("Task marked as pending.")
		} else {
			m.app.MarkTaskDone(item.ID)
			m.status = m.ok("Task marked as done.")
		}
		m.refreshTasks()
		return m, nil
	case "f":
		m.cycleTaskFilter()
		m.refreshTasks()
		return m, nil
	case "s":
		return m.startPrompt(&prompt{
			title:  "Search tasks",
			labels: []string{"Text to search in task titles"},
			ret:    TaskListView,
			submit: func(values []string) string {
				matches := m.app.SearchTasksByTitle(values[0])
				m.setTaskItems(matches)
				m.searching = true
				return m.ok(fmt.Sprintf("%d matching tasks. Press esc to show all.", len(matches)))
			},
		})
	case "d":
		item, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.confirm = &confirm{
			question: fmt.Sprintf("Delete task %q?", item.Title),
			ret:      TaskListView,
			accept: func() string {
				if !m.app.DeleteTask(item.ID) {
					return m.fail("Task not found.")
				}
				m.refreshTasks()
				return m.ok("Task deleted.")
			},
		}
		m.view = ConfirmView
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.prompt.ret
		m.prompt = nil
		return m, nil
	case "enter":
		m.prompt.values[m.prompt.step] = m.input.Value()
		m.prompt.step++
		if m.prompt.step < len(m.prompt.labels) {
			m.input.SetValue("")
			m.input.Placeholder = m.prompt.labels[m.prompt.step]
			return m, nil
		}

		done := m.prompt
		m.view = done.ret
		m.prompt = nil
		m.status = done.submit(done.values)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = m.confirm.ret
		m.confirm = nil
		return m, nil
	case "y":
		done := m.confirm
		m.view = done.ret
		m.confirm = nil
		m.status = done.accept()
		return m, nil
	}
	return m, nil
}

func (m *Model) startPrompt(p *prompt) (tea.Model, tea.Cmd) {
	p.values = make([]string, len(p.labels))
	m.prompt = p
	m.input.SetValue("")
	m.input.Placeholder = p.labels[0]
	m.view = PromptView
	return m, m.input.Focus()
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CategoryListView:
		m.categoryList, cmd = m.categoryList.Update(msg)
	case TaskListView:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshCategories() {
	m.setCategoryItems(m.app.ListCategories())
}

func (m *Model) setCategoryItems(categories []*models.Category) {
	sorted := append([]*models.Category{}, categories...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	items := make([]list.Item, len(sorted))
	for i, category := range sorted {
		items[i] = categoryItem{category: category}
	}
	m.categoryList.SetItems(items)
}

func (m *Model) refreshTasks() {
	tasks := m.app.ListTasks()
	if m.taskFilter != nil {
		tasks = m.app.ListTasksByDoneStatus(*m.taskFilter)
	}
	m.setTaskItems(tasks)
}

func (m *Model) setTaskItems(tasks []*models.Task) {
	sorted := append([]*models.Task{}, tasks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	items := make([]list.Item, len(sorted))
	for i, task := range sorted {
		name := ""
		if task.CategoryID != nil {
			if resolved, ok := m.app.CategoryName(*task.CategoryID); ok {
				name = resolved
			}
		}
		items[i] = taskItem{task: task, category: name}
	}
	m.taskList.SetItems(items)

	switch {
	case m.taskFilter == nil:
		m.taskList.Title = "Tasks"
	case *m.taskFilter:
		m.taskList.Title = "Tasks — done"
	default:
		m.taskList.Title = "Tasks — pending"
	}
}

// cycleTaskFilter steps from showing all tasks to done only, then pending
// only, then back to all.
func (m *Model) cycleTaskFilter() {
	switch {
	case m.taskFilter == nil:
		done := true
		m.taskFilter = &done
	case *m.taskFilter:
		pending := false
		m.taskFilter = &pending
	default:
		m.taskFilter = nil
	}
}

func (m *Model) exportSnapshot() string {
	snapshot := formatter.NewSnapshot(m.app.ListCategories(), m.app.ListTasks())
	result, err := formatter.WriteExport(snapshot, m.config.Export.Dir, m.config.Export.Format)
	if err != nil {
		return m.fail(fmt.Sprintf("Export failed: %v", err))
	}
	return m.ok(fmt.Sprintf("Exported %s", strings.Join(result.Files, ", ")))
}

func (m *Model) selectedCategory() (*models.Category, bool) {
	selected := m.categoryList.SelectedItem()
	if selected == nil {
		return nil, false
	}
	item, ok := selected.(categoryItem)
	if !ok {
		return nil, false
	}
	return item.category, true
}

func (m *Model) selectedTask() (*models.Task, bool) {
	selected := m.taskList.SelectedItem()
	if selected == nil {
		return nil, false
	}
	item, ok := selected.(taskItem)
	if !ok {
		return nil, false
	}
	return item.task, true
}

func (m *Model) ok(text string) string {
	return m.styles.ok.Render(text)
}

func (m *Model) fail(text string) string {
	return m.styles.err.Render(text)
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("taskdeck"))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		cursor := "  "
		line := fmt.Sprintf("%d. %s", i+1, entry)
		if i == m.menuIndex {
			cursor = "> "
			line = m.styles.ok.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit})
	b.WriteString("\n" + helpView)
	return b.String()
}

func (m *Model) renderList(l *list.Model, bindings []key.Binding) string {
	helpView := m.help.ShortHelpView(bindings)
	status := m.status
	if status != "" {
		status += "\n"
	}
	return fmt.Sprintf("%s\n%s\n%s", l.View(), status, helpView)
}

func (m *Model) renderPrompt() string {
	title := m.styles.title.Render(m.prompt.title)
	label := m.styles.warn.Render(m.prompt.labels[m.prompt.step])
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, label, m.input.View(), helpView)
}

func (m *Model) renderConfirm() string {
	question := m.styles.warn.Render(m.confirm.question)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", question, helpView)
}
