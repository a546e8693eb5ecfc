package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ListOptions controls which directory entries ListFiles returns.
type ListOptions struct {
	Matcher       *Matcher
	IncludeHidden bool
}

// ListFiles returns the regular files in dir accepted by opts. Directories are
// skipped; symlinks are followed so a link to an image counts as an image.
// The result is in directory order; callers sort it.
func ListFiles(dir string, opts ListOptions) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	files := make([]Entry, 0, len(entries))
	for _, e := range entries {
		rawName := e.Name()
		fullPath := filepath.Join(dir, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}
		if !opts.IncludeHidden && IsHidden(fullPath, rawName) {
			continue
		}
		if opts.Matcher != nil && !opts.Matcher.Match(rawName) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Stat(fullPath)
			if err != nil {
				continue
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, Entry{
			Name:     norm.NFC.String(rawName),
			FullPath: fullPath,
			Size:     info.Size(),
			Modified: info.ModTime(),
			Mode:     info.Mode(),
		})
	}
	return files, nil
}
