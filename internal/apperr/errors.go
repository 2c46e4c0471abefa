// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

// ErrNotFound marks a page or state row that does not exist.
var ErrNotFound = errors.New("not found")
