// Package linkcheck verifies that relative links in generated markdown resolve.
package linkcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// BrokenLink is a link whose target does not exist.
type BrokenLink struct {
	File        string
	Text        string
	Destination string
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: [%s](%s)", b.File, b.Text, b.Destination)
}

// Link is an inline link found in a markdown document.
type Link struct {
	Text        string
	Destination string
}

// ExtractLinks parses body and returns its inline links in document order.
func ExtractLinks(body []byte) []Link {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			links = append(links, Link{
				Text:        nodeText(link, body),
				Destination: string(link.Destination),
			})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// Verify reads every file in files from fsys and reports links whose targets
// are missing. Destinations are resolved against the root of fsys, the way a
// docsify site resolves sidebar links. External links and pure anchors are skipped.
func Verify(fsys fs.FS, files []string) ([]BrokenLink, error) {
	var broken []BrokenLink
	for _, file := range files {
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		for _, link := range ExtractLinks(body) {
			target, ok := localTarget(link.Destination)
			if !ok {
				continue
			}
			_, err := fs.Stat(fsys, target)
			if errors.Is(err, fs.ErrNotExist) {
				broken = append(broken, BrokenLink{File: file, Text: link.Text, Destination: link.Destination})
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s linked from %s: %w", target, file, err)
			}
		}
	}
	return broken, nil
}

// localTarget maps a link destination to a path in the site root.
func localTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	p := strings.TrimPrefix(u.Path, "/")
	p = path.Clean(p)
	if p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return "", false
	}
	return p, true
}

func nodeText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(source))
			continue
		}
		sb.WriteString(nodeText(c, source))
	}
	return sb.String()
}
