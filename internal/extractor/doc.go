// Package extractor turns article HTML into the structured features the
// scorers consume.
//
// Extraction first removes noise nodes (scripts, styles, navigation,
// headers and footers, ads, popups and, for structured extraction, comment
// sections). It then selects the content root: the first candidate selector
// whose text is longer than 200 characters, or the body when none
// qualifies. Headings, paragraphs, links and image alt texts are collected
// from that root; meta description and keywords from the whole document.
//
// Removal mutates the parsed page. Later queries through the Page, such as
// the authorship checks of the scorer, see the page without its noise.
package extractor
