package storage

import "time"

// StoreFileRequest represents a file store request.
type StoreFileRequest struct {
	Name        string `json:"name"`
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
}

// StoreFileResponse represents a file store response.
type StoreFileResponse struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DeleteFileRequest represents a file delete request.
type DeleteFileRequest struct {
	Path string `json:"path"`
}

// DeleteFileResponse represents a file delete response.
type DeleteFileResponse struct {
	Deleted bool `json:"deleted"`
}
