package models

import "testing"

func TestTask(t *testing.T) {
	t.Run("InCategory", func(t *testing.T) {
		categoryID := 3
		task := &Task{ID: 1, Title: "Buy milk", CategoryID: &categoryID}

		if !task.InCategory(3) {
			t.Error("task should be in category 3")
		}
		if task.InCategory(4) {
			t.Error("task should not be in category 4")
		}

		task.CategoryID = nil
		if task.InCategory(3) {
			t.Error("task without a category should not match any category id")
		}
	})

	t.Run("MarkDone is idempotent", func(t *testing.T) {
		task := &Task{ID: 1, Title: "Buy milk"}

		if task.Done {
			t.Error("new task should start pending")
		}

		task.MarkDone()
		task.MarkDone()
		if !task.Done {
			t.Error("task should be done after MarkDone")
		}

		task.MarkPending()
		task.MarkPending()
		if task.Done {
			t.Error("task should be pending after MarkPending")
		}
	})
}
