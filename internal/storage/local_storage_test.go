package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	apperrors "stock-image-tagger/internal/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
}

func TestListImages_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "a.PNG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "nested", "c.jpeg"))

	images, err := NewLocalStorage().ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("Expected 3 images, got %v", images)
	}
	if !sort.StringsAreSorted(images) {
		t.Errorf("Expected a sorted listing, got %v", images)
	}
	for _, img := range images {
		if filepath.Ext(img) == ".txt" {
			t.Errorf("Expected non-image files filtered out, got %v", images)
		}
	}
}

func TestListImages_MissingDirectory(t *testing.T) {
	_, err := NewLocalStorage().ListImages(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("Expected an error for a missing directory")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeFilesystem) {
		t.Errorf("Expected a filesystem error, got %v", err)
	}
}

func TestListImages_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.jpg")
	touch(t, file)

	if _, err := NewLocalStorage().ListImages(file); err == nil {
		t.Error("Expected an error when the path is a file")
	}
}

func TestRename_MovesWithinDirectory(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.jpg")
	touch(t, old)

	newPath, err := NewLocalStorage().Rename(old, "new.jpg")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "new.jpg") {
		t.Errorf("Expected the new path in the same directory, got %q", newPath)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Expected the old file to be gone")
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("Expected the new file to exist: %v", err)
	}
}

func TestRename_RefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.jpg")
	touch(t, old)
	touch(t, filepath.Join(dir, "taken.jpg"))

	if _, err := NewLocalStorage().Rename(old, "taken.jpg"); err == nil {
		t.Fatal("Expected a refusal for an existing target")
	}
	if _, err := os.Stat(old); err != nil {
		t.Error("Expected the original file to be left untouched")
	}
}

func TestRename_SameNameIsNoOp(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "same.jpg")
	touch(t, old)

	newPath, err := NewLocalStorage().Rename(old, "same.jpg")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != old {
		t.Errorf("Expected the unchanged path, got %q", newPath)
	}
}
