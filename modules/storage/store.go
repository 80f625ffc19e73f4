package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/jaevor/go-nanoid"
)

// MaxFileSize is the upload size limit.
const MaxFileSize = 10 * 1024 * 1024 // 10 MiB

// allowedTypes is matched independently against the file extension and the
// declared MIME type. A mismatch between the two is not itself a rejection
// condition.
var allowedTypes = regexp.MustCompile(`(?i)jpeg|jpg|png|gif|pdf|doc|docx|txt`)

// StoredFile describes a file persisted to disk.
type StoredFile struct {
	Filename   string
	Path       string
	UploadedAt time.Time
}

// FileStore persists attachment files on the local filesystem.
type FileStore struct {
	dir   string
	newID func() string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	newID, err := gonanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	return &FileStore{
		dir:   dir,
		newID: newID,
	}, nil
}

// Dir returns the directory files are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

// Store validates and writes a file, returning its generated filename and
// path. The generated name combines a nanosecond timestamp with a random
// suffix so concurrent uploads never collide.
func (s *FileStore) Store(data []byte, originalName, mimeType string) (*StoredFile, error) {
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedTypes.MatchString(ext) || !allowedTypes.MatchString(mimeType) {
		return nil, ErrInvalidFileType
	}

	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), s.newID(), ext)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Filename:   filename,
		Path:       path,
		UploadedAt: time.Now(),
	}, nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *FileStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
