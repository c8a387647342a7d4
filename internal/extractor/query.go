package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HasTag reports whether the page contains an element with the given tag name.
func (p *Page) HasTag(name string) bool {
	return p.doc.Find(name).Length() > 0
}

// HasAttrContaining reports whether any element's attribute value contains
// substr, like the CSS selector [attr*="substr"].
func (p *Page) HasAttrContaining(attr, substr string) bool {
	found := false
	p.doc.Find("[" + attr + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.AttrOr(attr, ""), substr) {
			found = true
		}
		return !found
	})
	return found
}

// HasAttrValue reports whether any element's attribute equals value, like
// the CSS selector [attr="value"].
func (p *Page) HasAttrValue(attr, value string) bool {
	found := false
	p.doc.Find("[" + attr + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr(attr, "") == value {
			found = true
		}
		return !found
	})
	return found
}
