package staging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestStageWritesFullContent(t *testing.T) {
	dir := t.TempDir()
	area := NewArea(dir)

	content := "not actually a png"
	staged, err := area.Stage(strings.NewReader(content), ".png")
	require.NoError(t, err)
	defer staged.Cleanup()

	assert.Equal(t, int64(len(content)), staged.Size)
	assert.Equal(t, dir, filepath.Dir(staged.Path))
	assert.True(t, strings.HasSuffix(staged.Path, ".png"))

	got, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestStageUniqueNames(t *testing.T) {
	area := NewArea(t.TempDir())

	a, err := area.Stage(strings.NewReader("one"), ".jpg")
	require.NoError(t, err)
	defer a.Cleanup()

	b, err := area.Stage(strings.NewReader("two"), ".jpg")
	require.NoError(t, err)
	defer b.Cleanup()

	assert.NotEqual(t, a.Path, b.Path)
}

func TestStageFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	area := NewArea(dir)

	_, err := area.Stage(failingReader{}, ".mp4")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial staging file left behind")
}

func TestCleanupIdempotent(t *testing.T) {
	area := NewArea(t.TempDir())

	staged, err := area.Stage(strings.NewReader("x"), ".png")
	require.NoError(t, err)

	staged.Cleanup()
	_, statErr := os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(statErr))

	// second call must not panic or error
	staged.Cleanup()
}
