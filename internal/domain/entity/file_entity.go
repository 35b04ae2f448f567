package entity

import "time"

// File is an uploaded blob recorded in the file table.
// Path is relative to the storage root.
type File struct {
	ID         int64
	FileName   string
	FilePath   string
	FileSize   int64
	UploadTime time.Time
	IPAddress  string
}

type Thumbnail struct {
	ID     int64
	Path   string
	FileID *int64
}
