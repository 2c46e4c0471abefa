package writer

import (
	"os"
	"path/filepath"
	"testing"
)

func testFS(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, fs
}

func TestNewFS_CreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "posts")
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	info, err := os.Stat(fs.Root())
	if err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir, fs := testFS(t)

	if err := fs.Write("hello-world.md", []byte("# hi\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "hello-world.md"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "# hi\n" {
		t.Errorf("content = %q", got)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	dir, fs := testFS(t)

	if err := fs.Write("a.md", []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := fs.Write("a.md", []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "a.md"))
	if string(got) != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
}

func TestWrite_CreatesSubdirectories(t *testing.T) {
	dir, fs := testFS(t)

	if err := fs.Write(filepath.Join("2021", "05", "post.md"), []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2021", "05", "post.md")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir, fs := testFS(t)

	if err := fs.Write("a.md", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.md" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only a.md", names)
	}
}

func TestSafePath_RejectsEscapes(t *testing.T) {
	_, fs := testFS(t)

	tests := []string{
		"",
		".",
		"..",
		"../outside.md",
		"a/../../outside.md",
		"/etc/passwd",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if err := fs.Write(name, []byte("x")); err == nil {
				t.Errorf("Write(%q) should fail", name)
			}
		})
	}
}
