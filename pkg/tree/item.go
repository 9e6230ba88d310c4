package tree

import "strings"

// ItemType categorizes the different kinds of items in the documentation tree.
type ItemType string

const (
	TypeDocument  ItemType = "document"  // A markdown document, e.g. getting-started.md
	TypeDirectory ItemType = "directory" // A content directory
	TypeIndex     ItemType = "index"     // A generated index file, e.g. _i_guides.md
	TypeGeneric   ItemType = "generic"   // Any other file, e.g. logo.png
)

// Item represents a single node in the documentation tree. It can be a file or a directory.
type Item struct {
	Path   string // Slash separated, relative to the scan root. The root itself is ".".
	Name   string
	IsDir  bool
	Level  int // Number of path segments below the root; the root is 0.
	Type   ItemType
	Hidden bool

	// Hierarchy
	Parent   *Item
	Children []*Item

	// Expanded is true when Children were read. Directories beyond the
	// depth limit, and hidden directories, are listed but never expanded.
	Expanded bool
}

// IsHidden reports whether an entry name is invisible to sidebar and index output.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}
