package source

import (
	"fmt"

	"fortio.org/safecast"
)

// FileID indexes a file name inside a FileSet. IDs are dense and zero-based;
// NoFileID marks the absence of a file reference.
type FileID int32

const NoFileID FileID = -1

// IsValid reports whether the ID refers to a registered file.
func (id FileID) IsValid() bool { return id >= 0 }

// FileSet registers the names of every file fed into a compile, in the order
// includes are processed. The name list is persisted verbatim in the image so
// line info can be mapped back to paths after a reload.
type FileSet struct {
	names []string
	index map[string]FileID
}

// NewFileSet creates an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// FileSetFromNames rebuilds a file set from a persisted name list.
func FileSetFromNames(names []string) *FileSet {
	fs := NewFileSet()
	for _, name := range names {
		fs.Add(name)
	}
	return fs
}

// Add registers a file name and returns its ID. Adding the same name twice
// returns the existing ID.
func (fs *FileSet) Add(name string) FileID {
	if id, ok := fs.index[name]; ok {
		return id
	}
	value, err := safecast.Conv[int32](len(fs.names))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(value)
	fs.names = append(fs.names, name)
	fs.index[name] = id
	return id
}

// Name returns the path for a registered ID, or "" and false if invalid.
func (fs *FileSet) Name(id FileID) (string, bool) {
	if !id.IsValid() || int(id) >= len(fs.names) {
		return "", false
	}
	return fs.names[id], true
}

// Names exposes the ordered name list for serialization.
func (fs *FileSet) Names() []string { return fs.names }

// Len reports the number of registered files.
func (fs *FileSet) Len() int { return len(fs.names) }
