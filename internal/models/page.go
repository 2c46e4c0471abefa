// Package models defines the domain types for Ansuz.
package models

import "time"

// Page is one row of the source database: its metadata, typed property map,
// and ordered block tree. Pages are fetched once per conversion run and are
// immutable while being compiled.
type Page struct {
	ID         string
	Title      string
	Collection string // parent database the page belongs to
	Properties map[string]any
	LastEdited time.Time
	Children   []Block
}

// DateRange is a property value spanning two calendar dates. End may be the
// zero time for open-ended ranges.
type DateRange struct {
	Start time.Time
	End   time.Time
}
