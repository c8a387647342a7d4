package blacklist

import "strings"

// Fixed explanations for blacklisted publishers.
const (
	// ReasonListed is the second reason attached to every blacklist hit.
	ReasonListed = "Domain found on untrustworthy publishers blacklist"

	reasonPostillon  = "🎭 SATIRICAL NEWS SITE - Der Postillon is a German satire website, content is parody/humor, not real news"
	reasonOnion      = "🎭 SATIRICAL NEWS SITE - The Onion is a satirical news website, content is parody/humor, not real news"
	reasonConspiracy = "🚨 CONSPIRACY WEBSITE - Known for spreading misinformation and conspiracy theories"
	reasonParody     = "🃏 PARODY CONTENT - Satirical/comedy content not intended as real news"
	reasonGeneric    = "⚠️ UNTRUSTWORTHY PUBLISHER - Domain appears on blacklist of unreliable news sources"
)

// category maps hostname substrings to an explanation. Order matters: the
// first category with a matching substring wins.
type category struct {
	substrings []string
	reason     string
}

var categories = []category{
	{substrings: []string{"postillon"}, reason: reasonPostillon},
	{substrings: []string{"onion"}, reason: reasonOnion},
	{substrings: []string{"infowars", "naturalnews"}, reason: reasonConspiracy},
	{substrings: []string{"clickhole", "reductress"}, reason: reasonParody},
}

// Reason returns the category-specific explanation for a blacklisted URL,
// or the generic untrustworthy-publisher text when no category matches or
// the URL cannot be parsed.
func Reason(rawURL string) string {
	hostname := hostnameOf(rawURL)
	if hostname == "" {
		return reasonGeneric
	}

	for _, cat := range categories {
		for _, sub := range cat.substrings {
			if strings.Contains(hostname, sub) {
				return cat.reason
			}
		}
	}
	return reasonGeneric
}
