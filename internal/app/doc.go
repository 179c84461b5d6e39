// Package app implements the application service coordinating the two
// in-memory repositories.
//
// [App] is the only layer that interprets business rules:
//   - validation: required text fields are trimmed and checked at creation
//   - uniqueness: category names are unique at creation, ignoring case
//   - referential consistency: deleting a category detaches it from every
//     task that referenced it before the call returns
//
// The failure contract is deliberately flat. Creates return
// [shared.ErrRejected] for every precondition violation and mutations return
// false; there is no way to distinguish "not found" from "invalid input" by
// return shape, matching the single negative signal the front ends render.
//
// An App is built over explicit repository instances ([New]) or fresh ones
// ([NewDefault]); there is no package-level default, so tests instantiate
// isolated services freely.
package app
