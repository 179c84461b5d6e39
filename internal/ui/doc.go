// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the classic numbered menu as a multi-view workflow:
//  1. [MenuView] : Pick categories, tasks or export
//  2. [CategoryListView] : Browse categories; create, rename, search, delete
//  3. [TaskListView] : Browse tasks; create, retitle, describe, recategorize,
//     toggle done, filter by status, search, delete
//  4. [PromptView] : Collect one or more text inputs for the pending action
//  5. [ConfirmView] : Guard deletes behind a yes/no question
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. Every
// service call runs synchronously inside Update, so the single-threaded
// contract of the repositories holds: there is exactly one caller.
//
// The front end never inspects why an operation failed: the service reports
// one uniform negative signal and the status line renders the matching
// message. Keyboard navigation uses vim-style bindings with contextual help
// via charmbracelet/bubbles/help; colors come from the [ui] config section
// through [PaletteFromConfig].
package ui
