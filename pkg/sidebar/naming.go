package sidebar

import (
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming derives display names from path segments.
type Naming struct {
	Extension   string
	IndexMarker string
	StopWords   []string
}

// DisplayName turns the final segment of p into a human readable title:
// the extension suffix and index marker are removed, hyphens become spaces,
// and every word is capitalized except stop words, which are lowercased.
//
//	how-to-use-docsify.md -> "how to Use Docsify"
//	_i_getting-started.md -> "Getting Started"
func (n Naming) DisplayName(p string) string {
	name := path.Base(p)
	if n.Extension != "" {
		name = strings.TrimSuffix(name, n.Extension)
	}
	name = strings.ReplaceAll(name, "-", " ")
	if n.IndexMarker != "" {
		name = strings.ReplaceAll(name, n.IndexMarker, "")
	}

	lower := cases.Lower(language.Und)
	stop := make(map[string]bool, len(n.StopWords))
	for _, w := range n.StopWords {
		stop[lower.String(w)] = true
	}

	words := strings.Split(name, " ")
	for i, word := range words {
		if stop[lower.String(word)] {
			words[i] = lower.String(word)
		} else {
			words[i] = capitalize(word)
		}
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// capitalize upper-cases the first letter of word and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(string(r)) + cases.Lower(language.Und).String(word[size:])
}
