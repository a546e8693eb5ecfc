package fs

import (
	"os"
	"time"
)

// Entry represents a single regular file found while listing a directory.
type Entry struct {
	Name     string // NFC-normalized display name
	FullPath string // on-disk path, unnormalized
	Size     int64
	Modified time.Time
	Mode     os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}
