package analyzer

// Document is the narrow view of a parsed page the scorers need.
// *extractor.Page satisfies it.
type Document interface {
	// HasTag reports whether an element with the tag name exists.
	HasTag(name string) bool

	// HasAttrContaining reports whether an attribute value contains substr.
	HasAttrContaining(attr, substr string) bool

	// HasAttrValue reports whether an attribute equals value.
	HasAttrValue(attr, value string) bool
}

// markers records which authorship signals a page carries.
type markers struct {
	author bool
	date   bool
}

// pageMarkers inspects the page for author and publication date markers.
// A nil document has neither.
func pageMarkers(doc Document) markers {
	if doc == nil {
		return markers{}
	}
	return markers{
		author: doc.HasAttrContaining("class", "author") ||
			doc.HasAttrContaining("class", "byline") ||
			doc.HasAttrValue("rel", "author"),
		date: doc.HasAttrContaining("class", "date") ||
			doc.HasAttrContaining("class", "time") ||
			doc.HasTag("time"),
	}
}
