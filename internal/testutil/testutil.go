// Package testutil provides shared test helpers for setting up state databases and output directories.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/ansuz/internal/state"
	"github.com/starford/ansuz/internal/writer"
)

// TestState creates a temporary SQLite state database that is automatically cleaned up.
func TestState(t *testing.T) *state.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := state.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestOutput creates a temporary output directory with a writer.FS.
func TestOutput(t *testing.T) (string, *writer.FS) {
	t.Helper()
	outDir := t.TempDir()
	out, err := writer.NewFS(outDir)
	if err != nil {
		t.Fatal(err)
	}
	return outDir, out
}
