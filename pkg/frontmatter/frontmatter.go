package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?(.*)`)

// Frontmatter represents the structured metadata at the beginning of a document.
// Only the fields the sidebar generator reads are decoded; everything else is ignored.
type Frontmatter struct {
	Title string `yaml:"title"`
}

// Parse extracts frontmatter from content and returns the parsed data and body.
// A document without frontmatter yields a nil Frontmatter and the content unchanged.
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fm.Title = strings.TrimSpace(fm.Title)

	return &fm, matches[2], nil
}

// Title returns the frontmatter title of content, or "" when there is none.
// Malformed frontmatter is treated as absent.
func Title(content []byte) string {
	fm, _, err := Parse(string(content))
	if err != nil || fm == nil {
		return ""
	}
	return fm.Title
}
