package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// timestampLayout names uploads by second-granularity timestamp plus the
// original extension. Concurrent uploads inside the same second can collide;
// that matches the historical behaviour of the site and is accepted.
const timestampLayout = "20060102150405"

// Local stores uploads on the local filesystem, one directory per category.
type Local struct {
	root   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewLocal constructs a local storage rooted at the given directory.
func NewLocal(root string, logger zerolog.Logger) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload root must not be empty")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}

	return &Local{
		root:   root,
		logger: logger.With().Str("component", "local_storage").Logger(),
		now:    time.Now,
	}, nil
}

// Save writes the content to <root>/<category>/<timestamp><ext> and returns
// the generated file name.
func (s *Local) Save(ctx context.Context, category, originalName string, reader io.Reader) (string, error) {
	dir := filepath.Join(s.root, filepath.Clean(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := s.now().Format(timestampLayout) + ext
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	s.logger.Debug().Str("category", category).Str("file", name).Msg("file stored")

	return name, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Local) Remove(ctx context.Context, category, fileName string) error {
	path := filepath.Join(s.root, filepath.Clean(category), filepath.Base(fileName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}
