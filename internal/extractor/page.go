package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/bsdetector/internal/model"
	"golang.org/x/net/html"
)

// Extraction limits.
const (
	// MinRootTextLength is the text length a root candidate must exceed.
	MinRootTextLength = 200

	// MinParagraphLength is the length a paragraph must exceed to be kept.
	MinParagraphLength = 20

	// MaxLinks is the maximum number of links collected.
	MaxLinks = 20
)

// Noise selectors removed before extraction.
const (
	mainTextNoise   = "script, style, nav, header, footer, aside, .ad, .advertisement, .popup, .modal"
	structuredNoise = mainTextNoise + ", .comments, .comment"
)

// rootCandidates are tried in order; semantic containers come before
// generic content classes.
var rootCandidates = []string{
	"main article",
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".content-body",
	".story-body",
	".article-body",
	".post-body",
}

// Page is a parsed HTML document.
//
// Design decision: We parse with golang.org/x/net/html and query with
// goquery. The parser handles the malformed markup common on news sites and
// goquery gives us the CSS selectors the root selection policy is written in.
type Page struct {
	doc *goquery.Document
}

// Parse parses an HTML document.
func Parse(htmlText string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Title returns the trimmed text of the first <title> element.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// MainText strips noise and returns the trimmed text of the content root,
// with the body as the last candidate.
func (p *Page) MainText() string {
	p.doc.Find(mainTextNoise).Remove()
	return strings.TrimSpace(p.root().Text())
}

// Structured strips noise (including comment sections) and extracts the
// structured features of the article.
func (p *Page) Structured() model.ExtractedContent {
	p.doc.Find(structuredNoise).Remove()
	root := p.root()

	content := model.ExtractedContent{
		MainText: strings.TrimSpace(root.Text()),
		Headings: model.Headings{
			H1: trimmedTexts(root.Find("h1")),
			H2: trimmedTexts(root.Find("h2")),
			H3: trimmedTexts(root.Find("h3")),
			H4: trimmedTexts(root.Find("h4")),
			H5: trimmedTexts(root.Find("h5")),
			H6: trimmedTexts(root.Find("h6")),
		},
		Paragraphs:      paragraphs(root),
		Links:           links(root),
		ImageAlts:       imageAlts(root),
		MetaDescription: p.doc.Find(`meta[name="description"]`).First().AttrOr("content", ""),
		Keywords:        p.doc.Find(`meta[name="keywords"]`).First().AttrOr("content", ""),
	}
	return content
}

// root returns the first candidate whose text is longer than
// MinRootTextLength, or the body.
func (p *Page) root() *goquery.Selection {
	for _, selector := range rootCandidates {
		candidate := p.doc.Find(selector).First()
		if candidate.Length() == 0 {
			continue
		}
		if utf8.RuneCountInString(candidate.Text()) > MinRootTextLength {
			return candidate
		}
	}
	return p.doc.Find("body").First()
}

// trimmedTexts returns the trimmed, non-empty texts of a selection.
func trimmedTexts(sel *goquery.Selection) []string {
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

func paragraphs(root *goquery.Selection) []string {
	paras := make([]string, 0)
	root.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > MinParagraphLength {
			paras = append(paras, text)
		}
	})
	return paras
}

// links returns up to MaxLinks hrefs that look absolute.
// Relative links point back into the same site and carry no sourcing signal.
func links(root *goquery.Selection) []string {
	hrefs := make([]string, 0)
	root.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := s.AttrOr("href", "")
		if strings.HasPrefix(href, "http") {
			hrefs = append(hrefs, href)
		}
		return len(hrefs) < MaxLinks
	})
	return hrefs
}

func imageAlts(root *goquery.Selection) []string {
	alts := make([]string, 0)
	root.Find("img[alt]").Each(func(_ int, s *goquery.Selection) {
		if alt := s.AttrOr("alt", ""); alt != "" {
			alts = append(alts, alt)
		}
	})
	return alts
}
