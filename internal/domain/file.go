package domain

import "time"

// FileKind mirrors the categories admins can upload.
type FileKind string

const (
	KindImage FileKind = "Image File"
	KindPDF   FileKind = "PDF Document"
	KindWord  FileKind = "Word Document"
)

type File struct {
	Id           FileId
	AdminId      CustomerId
	Title        string
	Description  string
	Filename     string // name under the storage root
	OriginalName string // name as uploaded, used for attachments
	MimeType     string
	SizeBytes    int64
	Visibility   string
	Kind         FileKind
	CreatedAt    time.Time

	Shared []ShareAttempt
}
