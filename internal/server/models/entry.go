package models

import "time"

// EntryType enumerates the kinds of entries a user may create.
type EntryType string

const (
	EntryTypeFolder EntryType = "folder"
	EntryTypeFile   EntryType = "file"
	EntryTypeImage  EntryType = "image"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeFolder, EntryTypeFile, EntryTypeImage:
		return true
	}
	return false
}

// RootParentID is the sentinel ParentID of entries that live at the root of
// a user's space, i.e. outside any folder.
const RootParentID = "0"

// Entry is a file or folder metadata record. After creation only IsPublic
// is mutable.
//
// LocalRef is the opaque content-store reference for non-folder entries.
// It is assigned by the server at upload time and is never derived from the
// user-supplied name. Folders carry no LocalRef. The entry only back-references
// the blob; the content store is the sole authority on blob lifetime.
type Entry struct {
	ID        string
	UserID    string
	Name      string
	Type      EntryType
	ParentID  string
	IsPublic  bool
	LocalRef  string
	CreatedAt time.Time
}

// IsFolder reports whether the entry is a folder.
func (e *Entry) IsFolder() bool { return e.Type == EntryTypeFolder }
