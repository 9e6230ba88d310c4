package sidebar

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// File is a generated artifact: a path relative to the root and its full content.
type File struct {
	Path    string
	Content []byte
}

// ChangeAction describes what applying a Change does to the filesystem.
type ChangeAction string

const (
	ActionCreate    ChangeAction = "create"
	ActionUpdate    ChangeAction = "update"
	ActionDelete    ChangeAction = "delete"
	ActionUnchanged ChangeAction = "unchanged"
)

// Change is a single planned filesystem action.
type Change struct {
	Action  ChangeAction
	Path    string
	Content []byte
}

// Plan is the complete desired output of a run plus the generated files
// that already exist in the visited directories.
type Plan struct {
	Sidebar File
	// Indexes are sorted by path.
	Indexes []File
	// Existing lists generated index files found on disk, sorted by path.
	Existing []string
	// Changes is filled by Build. Deletions come first, then the sidebar,
	// then index files in path order.
	Changes []Change
}

// Files returns every file the plan wants to exist, sidebar first.
func (p *Plan) Files() []File {
	files := make([]File, 0, len(p.Indexes)+1)
	files = append(files, p.Sidebar)
	return append(files, p.Indexes...)
}

// Pending returns the changes that would modify the filesystem.
func (p *Plan) Pending() []Change {
	var pending []Change
	for _, c := range p.Changes {
		if c.Action != ActionUnchanged {
			pending = append(pending, c)
		}
	}
	return pending
}

// Index returns the planned index file at path, if any.
func (p *Plan) Index(path string) (File, bool) {
	i := sort.Search(len(p.Indexes), func(i int) bool { return p.Indexes[i].Path >= path })
	if i < len(p.Indexes) && p.Indexes[i].Path == path {
		return p.Indexes[i], true
	}
	return File{}, false
}

// Build scans fsys and diffs the result against the files currently in it.
func Build(fsys fs.FS, opts Options) (*Plan, error) {
	plan, err := Scan(fsys, opts)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(plan.Indexes)+1)
	for _, f := range plan.Files() {
		wanted[f.Path] = true
	}

	for _, existing := range plan.Existing {
		if !wanted[existing] {
			plan.Changes = append(plan.Changes, Change{Action: ActionDelete, Path: existing})
		}
	}

	for _, f := range plan.Files() {
		action, err := diffFile(fsys, f)
		if err != nil {
			return nil, err
		}
		plan.Changes = append(plan.Changes, Change{Action: action, Path: f.Path, Content: f.Content})
	}

	return plan, nil
}

func diffFile(fsys fs.FS, f File) (ChangeAction, error) {
	current, err := fs.ReadFile(fsys, f.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ActionCreate, nil
	case err != nil:
		return "", fmt.Errorf("failed to read %s: %w", f.Path, err)
	case bytes.Equal(current, f.Content):
		return ActionUnchanged, nil
	default:
		return ActionUpdate, nil
	}
}
