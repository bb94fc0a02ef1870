package domain

import "io"

// Attachment is immutable once created: uploaded, referenced by exactly one
// task, and destroyed only by explicit deletion.
type Attachment struct {
	// ID is the object storage path of the blob.
	ID   string
	Name string
	Type string
	URL  string
	Size int64
}

// FileUpload describes a pending upload handed in by a front end.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
