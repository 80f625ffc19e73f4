package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

func TestFileStore_Store(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.Store([]byte("%PDF-1.4 test"), "report.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if !strings.HasSuffix(stored.Filename, ".pdf") {
		t.Errorf("Store() filename = %q, want .pdf suffix", stored.Filename)
	}
	if stored.Path != filepath.Join(store.Dir(), stored.Filename) {
		t.Errorf("Store() path = %q, want file inside %q", stored.Path, store.Dir())
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-1.4 test")) {
		t.Error("stored file content does not match input")
	}
}

func TestFileStore_Store_SizeLimit(t *testing.T) {
	store := newTestStore(t)

	t.Run("over limit", func(t *testing.T) {
		data := make([]byte, MaxFileSize+1)
		_, err := store.Store(data, "big.pdf", "application/pdf")
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("Store() error = %v, want ErrFileTooLarge", err)
		}
	})

	t.Run("at limit", func(t *testing.T) {
		data := make([]byte, 1024*1024) // 1 MiB
		if _, err := store.Store(data, "ok.pdf", "application/pdf"); err != nil {
			t.Errorf("Store() error = %v, want nil", err)
		}
	})
}

func TestFileStore_Store_TypeValidation(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name        string
		fileName    string
		contentType string
		wantErr     bool
	}{
		{
			name:        "pdf allowed",
			fileName:    "doc.pdf",
			contentType: "application/pdf",
			wantErr:     false,
		},
		{
			name:        "png allowed",
			fileName:    "image.PNG",
			contentType: "image/png",
			wantErr:     false,
		},
		{
			name:        "docx allowed",
			fileName:    "letter.docx",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.docx",
			wantErr:     false,
		},
		{
			name:        "exe rejected",
			fileName:    "malware.exe",
			contentType: "application/octet-stream",
			wantErr:     true,
		},
		{
			name:        "bad mime type rejected",
			fileName:    "image.png",
			contentType: "application/octet-stream",
			wantErr:     true,
		},
		{
			name:        "no extension rejected",
			fileName:    "noext",
			contentType: "application/pdf",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Store([]byte("data"), tt.fileName, tt.contentType)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFileType) {
					t.Errorf("Store() error = %v, want ErrInvalidFileType", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Store() unexpected error: %v", err)
			}
		})
	}
}

func TestFileStore_Store_UniqueFilenames(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		stored, err := store.Store([]byte("same content"), "same.txt", "txt")
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if seen[stored.Filename] {
			t.Fatalf("Store() generated duplicate filename %q", stored.Filename)
		}
		seen[stored.Filename] = true
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.Store([]byte("to delete"), "gone.txt", "txt")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if err := store.Delete(stored.Path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := os.Stat(stored.Path); !os.IsNotExist(err) {
		t.Error("Delete() left the file on disk")
	}

	// Deleting again is not an error.
	if err := store.Delete(stored.Path); err != nil {
		t.Errorf("Delete() of missing file error = %v, want nil", err)
	}
}
