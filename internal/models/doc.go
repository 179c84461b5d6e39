// Package models defines the domain entities for the taskdeck session.
//
// Two entity kinds exist:
//   - [Category] : a named label, unique by name at creation time
//   - [Task] : a TODO item holding a weak reference to at most one category
//
// Entities are plain mutable records handed out by pointer, so edits made
// through the application service are visible through every previously
// returned snapshot. Equality is by ID only; all other fields are mutable.
//
// The Task → Category link is an id (arena+index pattern): tasks never embed a
// Category value, and [internal/app] nils the reference when the category is
// deleted so no task can observe a deleted category.
package models
