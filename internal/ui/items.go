package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/taskdeck/internal/formatter"
	"github.com/desertthunder/taskdeck/internal/models"
)

var (
	_ list.Item = categoryItem{}
	_ list.Item = taskItem{}
)

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category *models.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string       { return fmt.Sprintf("[%d] %s", i.category.ID, i.category.Name) }
func (i categoryItem) Description() string { return "category" }

// taskItem wraps [models.Task] to implement [list.Item]. The category name is
// resolved when the item is built so the delegate renders plain strings.
type taskItem struct {
	task     *models.Task
	category string
}

func (i taskItem) FilterValue() string { return i.task.Title }

func (i taskItem) Title() string {
	check := "○"
	if i.task.Done {
		check = "✓"
	}
	return fmt.Sprintf("%s [%d] %s", check, i.task.ID, i.task.Title)
}

func (i taskItem) Description() string {
	desc := i.category
	if desc == "" {
		desc = formatter.NoCategoryLabel
	}
	if i.task.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.task.Description)
	}
	return desc
}
