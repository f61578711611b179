package repository

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractChapterIndex(t *testing.T) {
	tests := []struct {
		path  string
		want  int
		found bool
	}{
		{path: "problems/Chapter 3/12.sgf", want: 3, found: true},
		{path: "problems/chapter 10/a/b.sgf", want: 10, found: true},
		{path: "Chapter 1/Chapter 2/x.sgf", want: 1, found: true},
		{path: "problems/Chapter3/x.sgf"},
		{path: "x.sgf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ExtractChapterIndex(tt.path)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStorageCollect(t *testing.T) {
	root := t.TempDir()
	write := func(rel, text string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	write("Chapter 1/1.sgf", "(;GM[1]SZ[9])")
	write("Chapter 2/deep/2.sgf", "(;GM[1]SZ[13])")
	write("loose.sgf", "(;GM[1]SZ[19])")
	write("Chapter 1/notes.txt", "not a game")

	storage, err := NewFileStorage(zap.NewNop().Sugar(), "*.sgf")
	require.NoError(t, err)

	files, err := storage.Collect(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	assert.Equal(t, "1", files[0].Name)
	assert.Equal(t, 1, files[0].Level)
	assert.Equal(t, "(;GM[1]SZ[9])", files[0].Text)
	assert.Equal(t, 2, files[1].Level)
	assert.Equal(t, "loose", files[2].Name)
	assert.Equal(t, 0, files[2].Level)
}

func TestFileStorageMatch(t *testing.T) {
	storage, err := NewFileStorage(zap.NewNop().Sugar(), "{*.sgf,*.SGF}")
	require.NoError(t, err)

	assert.True(t, storage.Match("/a/b/game.sgf"))
	assert.True(t, storage.Match("GAME.SGF"))
	assert.False(t, storage.Match("game.sgf.bak"))

	_, err = NewFileStorage(zap.NewNop().Sugar(), "[")
	assert.Error(t, err)
}

func TestFileStorageMissingRoot(t *testing.T) {
	storage, err := NewFileStorage(zap.NewNop().Sugar(), "*.sgf")
	require.NoError(t, err)

	_, err = storage.Collect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	assert.Equal(t, int64(0), pageOffset(0, 20))
	assert.Equal(t, int64(40), pageOffset(3, 20))
	assert.Equal(t, 0, totalPages(0, 20))
	assert.Equal(t, 1, totalPages(20, 20))
	assert.Equal(t, 2, totalPages(21, 20))
}
