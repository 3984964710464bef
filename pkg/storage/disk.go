// Package storage persists uploaded media files on the local filesystem
// and maps them to the public URLs the API hands back to clients.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldtechhq/fieldserve-backend/pkg/errors"
)

// StoredFile describes a file written to disk.
type StoredFile struct {
	// FileURL is the public path served by the uploads handler.
	FileURL string
	// FilePath is the location on disk, relative to the working directory.
	FilePath string
}

// DiskStore writes files under a base directory and exposes them under a
// public path prefix.
type DiskStore struct {
	baseDir    string
	publicPath string
}

// NewDiskStore creates the base directory if it does not exist.
func NewDiskStore(baseDir, publicPath string) (*DiskStore, error) {
	if baseDir == "" {
		return nil, errors.New(errors.CodeInternal, "storage: base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "storage: create upload directory")
	}
	return &DiskStore{
		baseDir:    baseDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
	}, nil
}

// BaseDir returns the directory files are written to.
func (s *DiskStore) BaseDir() string {
	return s.baseDir
}

// Save streams the reader to a new file named by a fresh UUID, keeping the
// original file's extension so servers infer the content type correctly.
func (s *DiskStore) Save(originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	dst := filepath.Join(s.baseDir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "storage: create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return nil, errors.Wrap(errors.CodeInternal, err, "storage: write file")
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return nil, errors.Wrap(errors.CodeInternal, err, "storage: close file")
	}

	return &StoredFile{
		FileURL:  s.publicPath + "/" + name,
		FilePath: dst,
	}, nil
}

// Remove deletes a previously stored file. Missing files are not an error so
// cleanup after a failed transaction stays idempotent.
func (s *DiskStore) Remove(filePath string) error {
	if filePath == "" {
		return nil
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.CodeInternal, err, "storage: remove file")
	}
	return nil
}
