package pipeline

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownTitle is the title of a URL that cannot be parsed.
const UnknownTitle = "Unknown Article"

var (
	separatorPattern = regexp.MustCompile(`[-_]`)
	extensionPattern = regexp.MustCompile(`(?i)\.(html|htm|php|aspx?)$`)
)

// TitleFromURL derives a readable title from the last path segment of a URL.
//
// "https://example.com/news/big-rally_today.html" becomes "Big Rally Today".
// A URL without a usable segment becomes "Article from <host>", and a URL
// that cannot be parsed becomes "Unknown Article".
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return UnknownTitle
	}

	segment := lastSegment(u.Path)
	segment = separatorPattern.ReplaceAllString(segment, " ")
	segment = extensionPattern.ReplaceAllString(segment, "")

	// A Caser keeps state between calls, so each call gets its own.
	title := strings.TrimSpace(cases.Title(language.Und, cases.NoLower).String(segment))
	if title == "" {
		return "Article from " + strings.ToLower(u.Hostname())
	}
	return title
}

// lastSegment returns the last non-empty segment of a path.
func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
