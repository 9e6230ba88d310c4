package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// LoadOptions controls how a directory tree is discovered.
type LoadOptions struct {
	// Extension identifies documents. A file is a document when its name contains it.
	Extension string
	// IndexMarker is the reserved prefix of generated index files.
	IndexMarker string
	// MaxDepth stops expansion: a directory at level L is expanded only when L < MaxDepth.
	MaxDepth int
	// ExpandAll expands every non-hidden directory regardless of MaxDepth.
	ExpandAll bool
}

// Load reads the tree rooted at "." in fsys. Children of every expanded
// directory are sorted by name. Nothing is modified.
func Load(fsys fs.FS, opts LoadOptions) (*Item, error) {
	if opts.Extension == "" {
		return nil, errors.New("document extension cannot be empty")
	}

	root := &Item{
		Path:  ".",
		Name:  ".",
		IsDir: true,
		Level: 0,
		Type:  TypeDirectory,
	}
	if err := expand(fsys, root, opts); err != nil {
		return nil, err
	}
	return root, nil
}

// IsIndexFile reports whether name is a generated index file for the given
// marker and extension. The marker is a reserved prefix: any file matching
// <marker>*<extension> is owned by the generator.
func IsIndexFile(name, marker, extension string) bool {
	return marker != "" && strings.HasPrefix(name, marker) && strings.HasSuffix(name, extension)
}

func expand(fsys fs.FS, dir *Item, opts LoadOptions) error {
	entries, err := fs.ReadDir(fsys, dir.Path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir.Path, err)
	}
	dir.Expanded = true

	for _, entry := range entries {
		name := entry.Name()
		itemPath := path.Join(dir.Path, name)

		isDir, isFile, isLink, err := resolveKind(fsys, itemPath, entry)
		if err != nil {
			return err
		}
		if !isDir && !isFile {
			// Broken symlinks, sockets and the like are neither content nor directories.
			continue
		}

		item := &Item{
			Path:   itemPath,
			Name:   name,
			IsDir:  isDir,
			Level:  dir.Level + 1,
			Hidden: IsHidden(name),
			Parent: dir,
		}
		switch {
		case isDir:
			item.Type = TypeDirectory
		case IsIndexFile(name, opts.IndexMarker, opts.Extension):
			item.Type = TypeIndex
		case strings.Contains(name, opts.Extension):
			item.Type = TypeDocument
		default:
			item.Type = TypeGeneric
		}
		dir.Children = append(dir.Children, item)

		// Symlinked directories are only followed within MaxDepth so cycles stay bounded.
		if isDir && !item.Hidden && (item.Level < opts.MaxDepth || (opts.ExpandAll && !isLink)) {
			if err := expand(fsys, item, opts); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveKind follows symlinks so that a link to a directory is treated as a directory.
func resolveKind(fsys fs.FS, itemPath string, entry fs.DirEntry) (isDir, isFile, isLink bool, err error) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return entry.IsDir(), mode.IsRegular(), false, nil
	}

	info, err := fs.Stat(fsys, itemPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, false, true, nil
	}
	if err != nil {
		return false, false, true, fmt.Errorf("failed to stat %s: %w", itemPath, err)
	}
	return info.IsDir(), info.Mode().IsRegular(), true, nil
}
