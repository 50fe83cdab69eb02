package dataset_prep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobTexts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0755))
	files := map[string]string{
		"b.txt":               "bravo",
		"a.txt":               "alpha",
		"sub/c.txt.utf8":      "charlie",
		"sub/deep/d.txt":      "delta",
		"sub/ignored.md":      "markdown",
		"sub/deep/notes.json": "json",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name),
			[]byte(content), 0644))
	}

	pathInfos, globErr := GlobTexts(root)
	require.NoError(t, globErr)
	require.Len(t, pathInfos, 4)

	// Lexicographic path order, for reproducible shard assignment.
	expected := []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.txt.utf8"),
		filepath.Join(root, "sub", "deep", "d.txt"),
	}
	assert.Equal(t, expected, Paths(pathInfos))
	assert.Equal(t, int64(len("alpha")+len("bravo")+len("charlie")+
		len("delta")), TotalSize(pathInfos))
}

func TestGlobTextsEmptyDir(t *testing.T) {
	pathInfos, globErr := GlobTexts(t.TempDir())
	require.NoError(t, globErr)
	assert.Empty(t, pathInfos)
}

func TestSortPathInfoByPath(t *testing.T) {
	pathInfos := []PathInfo{
		{Path: "c.txt"}, {Path: "a.txt"}, {Path: "b.txt"},
	}
	SortPathInfoByPath(pathInfos, true)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, Paths(pathInfos))
	SortPathInfoByPath(pathInfos, false)
	assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, Paths(pathInfos))
}
