package sidebar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-sidebar/pkg/tree"
)

const (
	DefaultSidebarFile = "_sidebar.md"
	DefaultIndexMarker = "_i_"
	DefaultExtension   = ".md"
	DefaultMaxDepth    = 2
)

// DefaultStopWords are kept lowercase when composing display names.
var DefaultStopWords = []string{"a", "on", "to", "and", "with", "how", "at", "the"}

// Options configures a sidebar generation run.
type Options struct {
	// MaxDepth limits both sidebar output and directory recursion.
	MaxDepth int `yaml:"max_depth"`
	// Header is written verbatim at the top of the sidebar file.
	Header string `yaml:"header"`
	// SidebarFile is the sidebar's path relative to the root.
	SidebarFile string `yaml:"sidebar_file"`
	// IndexMarker is the reserved prefix of generated index files.
	IndexMarker string `yaml:"index_marker"`
	// Extension identifies documents.
	Extension string   `yaml:"extension"`
	StopWords []string `yaml:"stop_words,flow"`
	// FullIndex recurses into every visible directory so that every index
	// link resolves. Sidebar output is still limited by MaxDepth.
	FullIndex bool `yaml:"full_index"`
	// FrontmatterTitles lets a document's frontmatter title replace its derived display name.
	FrontmatterTitles bool `yaml:"frontmatter_titles"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth:    DefaultMaxDepth,
		SidebarFile: DefaultSidebarFile,
		IndexMarker: DefaultIndexMarker,
		Extension:   DefaultExtension,
		StopWords:   append([]string(nil), DefaultStopWords...),
	}
}

// Validate checks that the options describe a generation that cannot
// pick up its own output as content.
func (o Options) Validate() error {
	if o.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", o.MaxDepth)
	}
	if o.Extension == "" {
		return errors.New("document extension cannot be empty")
	}
	if o.IndexMarker == "" {
		return errors.New("index marker cannot be empty")
	}
	if !tree.IsHidden(o.IndexMarker) {
		return fmt.Errorf("index marker %q must start with '_' or '.'", o.IndexMarker)
	}
	if strings.ContainsAny(o.IndexMarker, `/\`) {
		return fmt.Errorf("index marker %q cannot contain a path separator", o.IndexMarker)
	}
	if o.SidebarFile == "" {
		return errors.New("sidebar file cannot be empty")
	}
	if strings.ContainsAny(o.SidebarFile, `/\`) {
		return fmt.Errorf("sidebar file %q must be a file name in the root directory", o.SidebarFile)
	}
	if !tree.IsHidden(o.SidebarFile) {
		return fmt.Errorf("sidebar file %q must start with '_' or '.'", o.SidebarFile)
	}
	if tree.IsIndexFile(o.SidebarFile, o.IndexMarker, o.Extension) {
		return fmt.Errorf("sidebar file %q collides with the index marker %q", o.SidebarFile, o.IndexMarker)
	}
	return nil
}

func (o Options) naming() Naming {
	return Naming{
		Extension:   o.Extension,
		IndexMarker: o.IndexMarker,
		StopWords:   o.StopWords,
	}
}

func (o Options) loadOptions() tree.LoadOptions {
	return tree.LoadOptions{
		Extension:   o.Extension,
		IndexMarker: o.IndexMarker,
		MaxDepth:    o.MaxDepth,
		ExpandAll:   o.FullIndex,
	}
}
