package linkcheck

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	body := []byte("**Go back:** [Guides](./_i_guides.md)\n" +
		"# Advanced\n" +
		"- [Tuning *Tips*](./guides/advanced/tuning.md)\n" +
		"- [Site](https://example.com)\n")

	links := ExtractLinks(body)
	assert.Equal(t, []Link{
		{Text: "Guides", Destination: "./_i_guides.md"},
		{Text: "Tuning Tips", Destination: "./guides/advanced/tuning.md"},
		{Text: "Site", Destination: "https://example.com"},
	}, links)
}

func TestVerify(t *testing.T) {
	fsys := fstest.MapFS{
		"_sidebar.md": {Data: []byte("* [A](./a.md)\n" +
			"* [Sub](./_i_sub.md)\n" +
			"  * [Deep](./sub/_i_deep.md)\n" +
			"* [Ext](https://docsify.js.org)\n" +
			"* [Top](#top)\n" +
			"* [Mail](mailto:docs@example.com)\n")},
		"_i_sub.md": {Data: []byte("# Sub\n- [C](./sub/c.md#install)\n- [Up](../outside.md)\n- [Abs](/a.md)\n")},
		"a.md":      {Data: []byte("")},
		"sub/c.md":  {Data: []byte("")},
	}

	broken, err := Verify(fsys, []string{"_sidebar.md", "_i_sub.md"})
	require.NoError(t, err)

	require.Len(t, broken, 1)
	assert.Equal(t, BrokenLink{File: "_sidebar.md", Text: "Deep", Destination: "./sub/_i_deep.md"}, broken[0])
	assert.Equal(t, "_sidebar.md: [Deep](./sub/_i_deep.md)", broken[0].String())
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(fstest.MapFS{}, []string{"_sidebar.md"})
	assert.Error(t, err)
}

func TestLocalTarget(t *testing.T) {
	tests := []struct {
		dest   string
		want   string
		wantOK bool
	}{
		{"./a.md", "a.md", true},
		{"sub/b.md", "sub/b.md", true},
		{"/c.md", "c.md", true},
		{"./sub/c.md?x=1#frag", "sub/c.md", true},
		{"#anchor", "", false},
		{"", "", false},
		{"https://example.com/a.md", "", false},
		{"//cdn.example.com/a.md", "", false},
		{"../escape.md", "", false},
		{"./", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, ok := localTarget(tt.dest)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
