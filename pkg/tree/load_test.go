package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestLoadSortsAndClassifies(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":          {Data: []byte("# B")},
		"a.md":          {Data: []byte("# A")},
		"logo.png":      {Data: []byte{0x89}},
		"_i_old.md":     {Data: []byte("# Old")},
		".git/config":   {Data: []byte("")},
		"sub/c.md":      {Data: []byte("# C")},
		"sub/deep/d.md": {Data: []byte("# D")},
	}

	root, err := Load(fsys, LoadOptions{Extension: ".md", IndexMarker: "_i_", MaxDepth: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{".git", "_i_old.md", "a.md", "b.md", "logo.png", "sub"}, names(root.Children))

	byName := map[string]*Item{}
	for _, child := range root.Children {
		byName[child.Name] = child
	}

	assert.Equal(t, TypeIndex, byName["_i_old.md"].Type)
	assert.True(t, byName["_i_old.md"].Hidden)
	assert.Equal(t, TypeDocument, byName["a.md"].Type)
	assert.Equal(t, TypeGeneric, byName["logo.png"].Type)
	assert.Equal(t, TypeDirectory, byName["sub"].Type)

	git := byName[".git"]
	assert.True(t, git.Hidden)
	assert.False(t, git.Expanded, "hidden directories are never expanded")

	sub := byName["sub"]
	require.True(t, sub.Expanded)
	assert.Equal(t, 1, sub.Level)
	assert.Equal(t, "sub", sub.Path)
	assert.Equal(t, []string{"c.md", "deep"}, names(sub.Children))
	assert.Equal(t, "sub/c.md", sub.Children[0].Path)
	assert.Same(t, sub, sub.Children[0].Parent)

	deep := sub.Children[1]
	assert.Equal(t, 2, deep.Level)
	assert.False(t, deep.Expanded, "level 2 is not expanded with MaxDepth 2")
}

func TestLoadExpandAll(t *testing.T) {
	fsys := fstest.MapFS{
		"sub/deep/deeper/x.md": {Data: []byte("x")},
	}

	root, err := Load(fsys, LoadOptions{Extension: ".md", IndexMarker: "_i_", MaxDepth: 1, ExpandAll: true})
	require.NoError(t, err)

	sub := root.Children[0]
	deep := sub.Children[0]
	deeper := deep.Children[0]
	assert.True(t, deeper.Expanded)
	assert.Equal(t, "sub/deep/deeper/x.md", deeper.Children[0].Path)
	assert.Equal(t, 4, deeper.Children[0].Level)
}

func TestLoadRequiresExtension(t *testing.T) {
	_, err := Load(fstest.MapFS{}, LoadOptions{})
	assert.Error(t, err)
}

func TestLoadMissingRoot(t *testing.T) {
	fsys := os.DirFS(filepath.Join(t.TempDir(), "missing"))

	_, err := Load(fsys, LoadOptions{Extension: ".md", MaxDepth: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"_sidebar.md", true},
		{"_i_guides.md", true},
		{".vscode", true},
		{"guide.md", false},
		{"my_notes.md", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHidden(tt.name))
		})
	}
}

func TestIsIndexFile(t *testing.T) {
	assert.True(t, IsIndexFile("_i_guides.md", "_i_", ".md"))
	assert.False(t, IsIndexFile("_i_guides.txt", "_i_", ".md"))
	assert.False(t, IsIndexFile("guides.md", "_i_", ".md"))
	assert.False(t, IsIndexFile("_i_guides.md", "", ".md"))
}
