// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to existing dependent records (e.g. deleting
// a route that still has schedules).
package repository

import (
    "errors"
    "strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a schedule that already has bookings. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicateEntry reports whether err is a MySQL duplicate key
// violation (error 1062). The driver does not expose a typed error
// for this, so the code is matched in the message.
func isDuplicateEntry(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
