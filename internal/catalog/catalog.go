// Package catalog holds the sorted sequence of viewable files and the
// focused position within it.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	fsutil "github.com/kk-code-lab/imgview/internal/fs"
	"golang.org/x/text/unicode/norm"
)

// Entry is one file at a fixed position of the catalog.
type Entry struct {
	Name     string
	FullPath string
	Index    int
	Size     int64
}

// Options configures how a directory is enumerated.
type Options struct {
	Matcher       *fsutil.Matcher
	Sequencer     Sequencer
	IncludeHidden bool
}

// Catalog is replaced wholesale on every Load; it is never edited in place.
type Catalog struct {
	dir     string
	entries []Entry
	focus   int
	opts    Options
}

// New returns an empty catalog.
func New(opts Options) *Catalog {
	if opts.Sequencer == nil {
		opts.Sequencer = NewNaturalSequencer("")
	}
	return &Catalog{focus: -1, opts: opts}
}

// Load enumerates path. A file selects its parent directory and focuses the
// file itself; a directory focuses its first entry. A directory without
// supported files leaves the catalog empty with focus -1 and no error.
func (c *Catalog) Load(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	dir := path
	focusName := ""
	if !info.IsDir() {
		dir = filepath.Dir(path)
		focusName = norm.NFC.String(filepath.Base(path))
	}

	listed, err := fsutil.ListFiles(dir, fsutil.ListOptions{
		Matcher:       c.opts.Matcher,
		IncludeHidden: c.opts.IncludeHidden,
	})
	if err != nil {
		return err
	}

	byName := make(map[string]fsutil.Entry, len(listed))
	names := make([]string, 0, len(listed))
	for _, e := range listed {
		if _, dup := byName[e.Name]; dup {
			continue
		}
		byName[e.Name] = e
		names = append(names, e.Name)
	}
	sorted := c.opts.Sequencer.Sort(names)

	entries := make([]Entry, len(sorted))
	focus := 0
	for i, name := range sorted {
		e := byName[name]
		entries[i] = Entry{Name: name, FullPath: e.FullPath, Index: i, Size: e.Size}
		if name == focusName {
			focus = i
		}
	}
	if len(entries) == 0 {
		focus = -1
	}

	c.dir = dir
	c.entries = entries
	c.focus = focus
	return nil
}

// Dir returns the base directory of the last Load.
func (c *Catalog) Dir() string { return c.dir }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Empty reports whether there is nothing to show.
func (c *Catalog) Empty() bool { return len(c.entries) == 0 }

// Valid reports whether i is an entry index.
func (c *Catalog) Valid(i int) bool { return i >= 0 && i < len(c.entries) }

// At returns entry i. It panics when i is out of range.
func (c *Catalog) At(i int) Entry { return c.entries[i] }

// Entries returns a copy of the entries in order.
func (c *Catalog) Entries() []Entry { return append([]Entry(nil), c.entries...) }

// Focus returns the focused index, or -1 for an empty catalog.
func (c *Catalog) Focus() int { return c.focus }

// SetFocus moves the focus to i. Out-of-range indices are ignored and
// reported as false.
func (c *Catalog) SetFocus(i int) bool {
	if !c.Valid(i) {
		return false
	}
	c.focus = i
	return true
}

// Current returns the focused entry.
func (c *Catalog) Current() (Entry, bool) {
	if !c.Valid(c.focus) {
		return Entry{}, false
	}
	return c.entries[c.focus], true
}

// IndexOf returns the index of the entry named name, or -1.
func (c *Catalog) IndexOf(name string) int {
	name = norm.NFC.String(name)
	for i, e := range c.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
