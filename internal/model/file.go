package model

import (
	"path/filepath"
	"strings"
)

// FileRecord links a generated identifier to the client-supplied filename.
// Records are immutable once created.
type FileRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoredName is the blob key for the record: id plus the extension of Name.
func (f FileRecord) StoredName() string {
	return StoredName(f.ID, f.Name)
}

// Extension returns the text after the last dot of the base of name,
// or "" when there is none.
func Extension(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}

// StoredName derives the blob key from an id and an original filename.
// A name without an extension maps to the bare id.
func StoredName(id, name string) string {
	ext := Extension(name)
	if ext == "" {
		return id
	}
	return id + "." + ext
}
