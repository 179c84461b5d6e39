package models

// Category is a label that tasks can be filed under, such as "Work" or "University".
//
// Identity is the ID alone: two Category values with the same ID name the same
// category no matter what their Name fields say. The ID is assigned by the
// category repository at creation time and never changes.
type Category struct {
	ID   int
	Name string
}

// Task is a single TODO item with a title, an optional description and a done flag.
//
// CategoryID is a weak, nullable back-reference: the category lives in its own
// repository and a task never owns a copy of it. When the referenced category
// is deleted the field is set to nil rather than left dangling.
type Task struct {
	ID          int
	Title       string
	Description string
	CategoryID  *int
	Done        bool
}

// InCategory reports whether the task currently references the given category id.
func (t *Task) InCategory(categoryID int) bool {
	return t.CategoryID != nil && *t.CategoryID == categoryID
}

// MarkDone flags the task as completed. Safe to call repeatedly.
func (t *Task) MarkDone() {
	t.Done = true
}

// MarkPending flags the task as not completed. Safe to call repeatedly.
func (t *Task) MarkPending() {
	t.Done = false
}
