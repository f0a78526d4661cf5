package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	name, err := store.Save(ctx, "avatars", "photo.PNG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"), "extension is lowercased")

	content, err := os.ReadFile(filepath.Join(root, "avatars", name))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Remove(ctx, "avatars", name))
	_, err = os.Stat(filepath.Join(root, "avatars", name))
	require.True(t, os.IsNotExist(err))

	// Removing a file that is already gone is not an error.
	require.NoError(t, store.Remove(ctx, "avatars", name))
}

func TestLocalRejectsEmptyRoot(t *testing.T) {
	_, err := NewLocal("  ", zerolog.Nop())
	require.Error(t, err)
}

func TestLocalRemoveIgnoresPathTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, zerolog.Nop())
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, store.Remove(context.Background(), "avatars", "../../"+outside))

	_, err = os.Stat(outside)
	require.NoError(t, err, "files outside the category directory are untouched")
}
