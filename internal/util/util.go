package util

import (
	"regexp"
	"strings"
	"unicode"
)

// TitleSortMatcher strips leading articles the way Calibre builds sort keys.
var TitleSortMatcher = regexp.MustCompile(`^(A|The|An|Der|Die|Das|Den|Ein|Eine|Einen|Dem|Des|Einem|Eines|Le|La|Les|L'|Un|Une)\s+`)

// TitleSort rewrites "The Title" as "Title, The", matching the sort values
// Calibre stores.
func TitleSort(title string) string {
	match := TitleSortMatcher.FindStringSubmatch(title)
	if match != nil {
		prep := match[1]
		title = strings.TrimPrefix(title, prep) + ", " + prep
	}
	return strings.TrimSpace(title)
}

// TitleCaseWords capitalizes the first letter of every word. Calibre title-cases
// the words of multi-word author directories on disk, so path resolution
// retries with this form when the stored path is missing.
func TitleCaseWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
