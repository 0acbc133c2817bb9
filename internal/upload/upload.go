// Package upload writes submitted media files into the upload directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads/"

var ErrTooManyFiles = errors.New("too many files")

// Filename builds the stored name of an uploaded file:
// {owner}-{field}-{millis}-{random}{ext}. An empty owner becomes "unknown".
func Filename(owner, field string, millis, random int64, ext string) string {
	if owner == "" {
		owner = "unknown"
	}
	return owner + "-" + field + "-" + strconv.FormatInt(millis, 10) + "-" + strconv.FormatInt(random, 10) + ext
}

type Saver struct {
	dir      string
	maxFiles int

	now    func() time.Time
	random func() int64
}

// NewSaver creates dir if needed and returns a Saver writing into it.
func NewSaver(dir string, maxFiles int) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Saver{
		dir:      dir,
		maxFiles: maxFiles,
		now:      time.Now,
		random:   func() int64 { return rand.Int64N(1_000_000_001) },
	}, nil
}

func (s *Saver) Dir() string {
	return s.dir
}

// Save writes files, in order, under generated names and returns their
// public paths. Files already written stay on disk if a later one fails.
func (s *Saver) Save(owner, field string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: %d files in %q, at most %d allowed", ErrTooManyFiles, len(files), field, s.maxFiles)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name := Filename(owner, field, s.now().UnixMilli(), s.random(), filepath.Ext(fh.Filename))
		if err := s.write(name, fh); err != nil {
			return paths, err
		}
		paths = append(paths, path.Join(PublicPrefix, name))
	}
	return paths, nil
}

func (s *Saver) write(name string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return dst.Close()
}
