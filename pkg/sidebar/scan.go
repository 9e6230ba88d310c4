package sidebar

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mattsolo1/grove-sidebar/pkg/frontmatter"
	"github.com/mattsolo1/grove-sidebar/pkg/tree"
)

// Scan computes the sidebar and every index file for the tree rooted at "."
// in fsys. It only reads; nothing is written or removed.
//
// Directories are visited depth-first in name order. Each directory below the
// root gets an index file placed next to it, and each visible document and
// directory contributes one sidebar line indented by its parent's depth.
func Scan(fsys fs.FS, opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, err := tree.Load(fsys, opts.loadOptions())
	if err != nil {
		return nil, err
	}

	s := &scanner{
		fsys:   fsys,
		opts:   opts,
		naming: opts.naming(),
		plan:   &Plan{},
	}
	s.sidebar.WriteString(opts.Header)

	if err := s.visit(root); err != nil {
		return nil, err
	}

	sort.Slice(s.plan.Indexes, func(i, j int) bool { return s.plan.Indexes[i].Path < s.plan.Indexes[j].Path })
	sort.Strings(s.plan.Existing)
	s.plan.Sidebar = File{Path: opts.SidebarFile, Content: s.sidebar.Bytes()}

	return s.plan, nil
}

type scanner struct {
	fsys    fs.FS
	opts    Options
	naming  Naming
	plan    *Plan
	sidebar bytes.Buffer
}

func (s *scanner) visit(dir *tree.Item) error {
	for _, child := range dir.Children {
		if child.Type == tree.TypeIndex {
			s.plan.Existing = append(s.plan.Existing, child.Path)
		}
	}

	// The root directory never gets an index file.
	var index *bytes.Buffer
	if dir.Level > 0 {
		index = s.indexHeader(dir)
	}

	for _, child := range dir.Children {
		if child.Hidden {
			continue
		}

		var name, link string
		switch {
		case child.IsDir:
			name = s.naming.DisplayName(child.Name)
			link = s.link(s.indexPath(child))
		case child.Type == tree.TypeDocument:
			var err error
			if name, err = s.documentName(child); err != nil {
				return err
			}
			link = s.link(child.Path)
		default:
			continue
		}

		s.sidebarLine(dir.Level, name, link)
		if index != nil {
			fmt.Fprintf(index, "- [%s](%s)\n", name, link)
		}

		if child.IsDir && child.Expanded {
			if err := s.visit(child); err != nil {
				return err
			}
		}
	}

	if index != nil {
		s.plan.Indexes = append(s.plan.Indexes, File{Path: s.indexPath(dir), Content: index.Bytes()})
	}
	return nil
}

// indexHeader starts an index file: a back-link to the parent's index for
// directories deeper than the first level, then the title.
func (s *scanner) indexHeader(dir *tree.Item) *bytes.Buffer {
	var buf bytes.Buffer
	if dir.Level > 1 {
		parent := dir.Parent
		fmt.Fprintf(&buf, "**Go back:** [%s](%s)\n", s.naming.DisplayName(parent.Name), s.link(s.indexPath(parent)))
	}
	fmt.Fprintf(&buf, "# %s\n", s.naming.DisplayName(dir.Name))
	return &buf
}

// sidebarLine writes one entry found in a directory at the given depth.
// Entries of directories at or below MaxDepth are dropped.
func (s *scanner) sidebarLine(depth int, name, link string) {
	if depth >= s.opts.MaxDepth {
		return
	}
	fmt.Fprintf(&s.sidebar, "%s* [%s](%s)\n", strings.Repeat("  ", depth), name, link)
}

func (s *scanner) documentName(doc *tree.Item) (string, error) {
	if s.opts.FrontmatterTitles {
		content, err := fs.ReadFile(s.fsys, doc.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", doc.Path, err)
		}
		if title := frontmatter.Title(content); title != "" {
			return title, nil
		}
	}
	return s.naming.DisplayName(doc.Name), nil
}

// indexPath is where the index file of dir lives: next to dir, named after it.
func (s *scanner) indexPath(dir *tree.Item) string {
	return IndexPath(dir.Path, s.opts.IndexMarker, s.opts.Extension)
}

func (s *scanner) link(p string) string {
	return "./" + p
}

// IndexPath returns the index file path of the directory at dirPath.
//
//	IndexPath("guides/advanced", "_i_", ".md") == "guides/_i_advanced.md"
func IndexPath(dirPath, marker, extension string) string {
	return path.Join(path.Dir(dirPath), marker+path.Base(dirPath)+extension)
}
