package model

// Headings holds heading texts by level.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
	H4 []string `json:"h4"`
	H5 []string `json:"h5"`
	H6 []string `json:"h6"`
}

// All returns every heading, h1 first and h6 last.
func (h Headings) All() []string {
	all := make([]string, 0, len(h.H1)+len(h.H2)+len(h.H3)+len(h.H4)+len(h.H5)+len(h.H6))
	all = append(all, h.H1...)
	all = append(all, h.H2...)
	all = append(all, h.H3...)
	all = append(all, h.H4...)
	all = append(all, h.H5...)
	all = append(all, h.H6...)
	return all
}

// ExtractedContent is the structured feature bag of one article.
// It is built and consumed within a single analysis and never shared.
type ExtractedContent struct {
	// MainText is the concatenated text of the selected content root.
	MainText string `json:"mainText"`

	// Headings are trimmed, non-empty heading texts from the content root.
	Headings Headings `json:"headings"`

	// Paragraphs are paragraph texts longer than 20 characters.
	Paragraphs []string `json:"paragraphs"`

	// Links are up to 20 hrefs beginning with "http".
	Links []string `json:"links"`

	// ImageAlts are the non-empty alt texts of images in the content root.
	ImageAlts []string `json:"imageAlts"`

	// MetaDescription is the content of <meta name="description">.
	MetaDescription string `json:"metaDescription,omitempty"`

	// Keywords is the content of <meta name="keywords">.
	Keywords string `json:"keywords,omitempty"`
}
