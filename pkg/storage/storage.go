package storage

import (
	"context"
	"io"
)

// FileStorage abstracts upload destinations. Save stores the content under
// the given category and returns the stored file name (or URL for remote
// backends).
type FileStorage interface {
	Save(ctx context.Context, category, originalName string, reader io.Reader) (string, error)
	Remove(ctx context.Context, category, fileName string) error
}
