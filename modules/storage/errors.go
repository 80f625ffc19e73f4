package storage

import "errors"

// Sentinel errors for attachment storage operations.
var (
	// ErrFileTooLarge is returned when the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file size exceeds the 10MB limit")

	// ErrInvalidFileType is returned when the extension or declared MIME
	// type is not in the allowed set.
	ErrInvalidFileType = errors.New("only images, PDFs, and documents are allowed")
)
