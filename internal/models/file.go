package models

import "time"

// File is the metadata record for an uploaded blob. Path is the object
// key in blob storage; the blob must exist for the lifetime of the record.
type File struct {
	ID        int64     `json:"id,string"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
