package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "stock-image-tagger/internal/errors"
)

// ImageSource enumerates and reads the image files of a batch.
type ImageSource interface {
	ListImages(dir string) ([]string, error)
}

// Renamer applies the computed filename on disk. On failure the original
// file must be left untouched.
type Renamer interface {
	Rename(oldPath, newName string) (string, error)
}

// imageExtensions are the file types accepted for processing.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// LocalStorage implements ImageSource and Renamer against the local
// filesystem.
type LocalStorage struct{}

// NewLocalStorage creates a local filesystem storage collaborator.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// ListImages walks dir recursively and returns the image files in a sorted,
// deterministic order. Processing order and therefore filename-uniqueness
// scoping depend on this determinism.
func (s *LocalStorage) ListImages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.NewFilesystemError("directory does not exist: "+dir, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewFilesystemError("not a directory: "+dir, nil)
	}

	var images []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewFilesystemError("failed to scan directory: "+dir, err)
	}

	sort.Strings(images)
	return images, nil
}

// Rename moves oldPath to newName within the same directory and returns the
// new absolute path. An existing target is a refusal, not an overwrite.
func (s *LocalStorage) Rename(oldPath, newName string) (string, error) {
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if newPath == oldPath {
		return oldPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", apperrors.NewFilesystemError("target already exists: "+newName, nil)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", apperrors.NewFilesystemError("failed to rename "+filepath.Base(oldPath)+" to "+newName, err)
	}
	return newPath, nil
}
