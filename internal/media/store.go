package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported media type")

var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// IsImage reports whether name carries one of the accepted upload extensions.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Store keeps uploaded files in a directory on disk.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// SaveImage copies r into the store under a random name that keeps the
// extension of filename. The stored name is returned.
func (s *Store) SaveImage(filename string, r io.Reader) (name string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !IsImage(filename) {
		err = fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
		return
	}

	if err = os.MkdirAll(s.Root, 0o755); err != nil {
		return
	}

	name = strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	var f *os.File
	if f, err = os.OpenFile(filepath.Join(s.Root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644); err != nil {
		return
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return
	}

	err = f.Close()
	return
}

// Remove deletes a stored file. Missing files are ignored.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.Root, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
