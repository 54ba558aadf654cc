package bytecode

import (
	"os"
	"path/filepath"
)

// WriteFile persists an image atomically: the bytes land in a temp file in
// the target directory and replace the destination with a rename, so a
// crashed write never leaves a truncated image behind.
func (im *Image) WriteFile(path string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*.lbc")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := im.Write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile loads and version-checks a persisted image.
func ReadFile(path, expectedToken string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, expectedToken)
}
