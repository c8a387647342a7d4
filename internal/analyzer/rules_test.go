package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/nao1215/bsdetector/internal/model"
)

// neutralProse is lower-case text that fires no text rule.
var neutralProse = strings.Repeat("the plan was discussed at length by the local council. ", 20)

// prose returns prefix followed by neutral text, cut to exactly n characters.
func prose(prefix string, n int) string {
	return (prefix + neutralProse)[:n]
}

const (
	ruleTestURL   = "https://www.example.com/news/1"
	neutralTitle  = "Council update"
	noBylineFlag  = "No clear author or publication date information"
	articleLength = 600
)

// TestScoreTextRules pins every title rule and every ladder band of the
// plain-text scorer. Without a document the article carries the +15
// missing byline flag, which puts it at the 65 threshold: any further red
// flag turns the verdict and shows up before the byline flag.
func TestScoreTextRules(t *testing.T) {
	t.Parallel()

	a := NewContentAnalyzer(nil)
	body := prose("", articleLength)

	tests := []struct {
		name        string
		title       string
		content     string
		url         string
		doc         Document
		wantRating  int
		wantVerdict model.Verdict
		wantReasons []string
	}{
		{
			name:        "neutral article sits on the threshold",
			content:     body,
			wantRating:  65,
			wantVerdict: model.VerdictOK,
		},

		// Title rules
		{
			name:        "sensational headline",
			title:       "Shocking vote in the council",
			content:     body,
			wantRating:  90,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Sensationalized headline with clickbait language", noBylineFlag},
		},
		{
			name:        "attention grabbing headline",
			title:       "Must read before the vote",
			content:     body,
			wantRating:  85,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Excessive punctuation and attention-grabbing phrases", noBylineFlag},
		},
		{
			name:        "conspiracy headline",
			title:       "The hidden truth about rents",
			content:     body,
			wantRating:  85,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Conspiracy-style language in headline", noBylineFlag},
		},
		{
			name:        "listicle headline",
			title:       "7 ways to save on heating",
			content:     body,
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Listicle-style clickbait headline", noBylineFlag},
		},
		{
			name:        "aggressive headline",
			title:       "Minister slams the budget",
			content:     body,
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Overly aggressive language in headline", noBylineFlag},
		},
		{
			name:        "every headline rule in table order",
			title:       "BREAKING!! 10 reasons the SECRET report SLAMS",
			content:     body,
			wantRating:  100,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{
				"Sensationalized headline with clickbait language",
				"Excessive punctuation and attention-grabbing phrases",
				"Conspiracy-style language in headline",
				"Listicle-style clickbait headline",
				"Overly aggressive language in headline",
			},
		},

		// Domain rules
		{
			name:        "free domain extension",
			content:     body,
			url:         "https://daily-report.tk",
			wantRating:  95,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Suspicious free domain extension", noBylineFlag},
		},
		{
			name:        "numeric domain",
			content:     body,
			url:         "https://site1234.com",
			wantRating:  85,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Suspicious numeric or random domain name", noBylineFlag},
		},
		{
			name:        "blog platform",
			content:     body,
			url:         "https://someone.wordpress.com/post",
			wantRating:  75,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Personal blog platform (less editorial oversight)", noBylineFlag},
		},
		{
			name:        "government domain",
			content:     body,
			url:         "https://www.census.gov",
			wantRating:  50,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Government or educational institution"},
		},
		{
			name:        "known publication",
			content:     body,
			url:         "https://www.economist.com/britain/rents",
			wantRating:  50,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Known credible news publication"},
		},

		// Length ladder
		{
			name:        "extremely short",
			content:     prose("", 299),
			wantRating:  85,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Extremely short article with minimal substance", noBylineFlag},
		},
		{
			name:        "very brief from 300 characters",
			content:     prose("", 300),
			wantRating:  75,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Very brief article lacking depth", noBylineFlag},
		},
		{
			name:        "very brief up to 499 characters",
			content:     prose("", 499),
			wantRating:  75,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Very brief article lacking depth", noBylineFlag},
		},
		{
			name:        "long enough from 500 characters",
			content:     prose("", 500),
			wantRating:  65,
			wantVerdict: model.VerdictOK,
		},

		// Capitals ladder
		{
			name:        "screaming text above 15 percent",
			content:     prose(strings.Repeat("X", 91)+" ", articleLength),
			wantRating:  90,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Excessive use of capital letters (screaming text)", noBylineFlag},
		},
		{
			name:        "exactly 15 percent falls to the second band",
			content:     prose(strings.Repeat("X", 90)+" ", articleLength),
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"High use of capital letters", noBylineFlag},
		},
		{
			name:        "just above 10 percent",
			content:     prose(strings.Repeat("X", 61)+" ", articleLength),
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"High use of capital letters", noBylineFlag},
		},
		{
			name:        "exactly 10 percent",
			content:     prose(strings.Repeat("X", 60)+" ", articleLength),
			wantRating:  65,
			wantVerdict: model.VerdictOK,
		},

		// Emotional vocabulary ladder
		{
			name:        "nine emotional words",
			content:     prose(strings.Repeat("outrageous ", 9), articleLength),
			wantRating:  90,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Heavy use of emotional manipulation and polarizing language", noBylineFlag},
		},
		{
			name:        "eight emotional words",
			content:     prose(strings.Repeat("outrageous ", 8), articleLength),
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Moderate use of emotional and sensational language", noBylineFlag},
		},
		{
			name:        "five emotional words",
			content:     prose(strings.Repeat("outrageous ", 5), articleLength),
			wantRating:  80,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Moderate use of emotional and sensational language", noBylineFlag},
		},
		{
			name:        "four emotional words",
			content:     prose(strings.Repeat("outrageous ", 4), articleLength),
			wantRating:  65,
			wantVerdict: model.VerdictOK,
		},

		// Sourcing ladder
		{
			name:        "four references to data",
			content:     prose(strings.Repeat("data shows ", 4), articleLength),
			wantRating:  45,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Multiple references to studies, experts, and data"},
		},
		{
			name:        "three references to data",
			content:     prose(strings.Repeat("data shows ", 3), articleLength),
			wantRating:  55,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Some references to credible sources"},
		},

		// Citation ladder
		{
			name:        "date and source credit",
			content:     prose("published in 2023 via the wire ", articleLength),
			wantRating:  50,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Article includes proper dating and source citations"},
		},
		{
			name:        "date only",
			content:     prose("published in 2023 ", articleLength),
			wantRating:  57,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Some dating or source information present"},
		},

		// Grammar ladder
		{
			name:        "six writing defects",
			content:     prose(strings.Repeat("wait... ", 6), articleLength),
			wantRating:  85,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Multiple grammar errors and poor writing quality", noBylineFlag},
		},
		{
			name:        "five writing defects",
			content:     prose(strings.Repeat("wait... ", 5), articleLength),
			wantRating:  75,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Some grammar and formatting issues", noBylineFlag},
		},
		{
			name:        "three writing defects",
			content:     prose(strings.Repeat("wait... ", 3), articleLength),
			wantRating:  75,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{"Some grammar and formatting issues", noBylineFlag},
		},
		{
			name:        "two writing defects",
			content:     prose(strings.Repeat("wait... ", 2), articleLength),
			wantRating:  65,
			wantVerdict: model.VerdictOK,
		},

		// Authorship ladder
		{
			name:        "author and date",
			content:     body,
			doc:         fakeDocument{author: true, date: true},
			wantRating:  40,
			wantVerdict: model.VerdictOK,
			wantReasons: []string{"Article has clear authorship and publication date"},
		},
		{
			name:        "author only is neutral",
			content:     body,
			doc:         fakeDocument{author: true},
			wantRating:  50,
			wantVerdict: model.VerdictOK,
		},

		// Several groups at once
		{
			name:        "reasons follow check order",
			title:       "Shocking news",
			content:     prose(strings.Repeat("outrageous ", 9)+strings.Repeat("wait... ", 3), articleLength),
			wantRating:  100,
			wantVerdict: model.VerdictBullshit,
			wantReasons: []string{
				"Sensationalized headline with clickbait language",
				"Heavy use of emotional manipulation and polarizing language",
				"Some grammar and formatting issues",
				noBylineFlag,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title := tt.title
			if title == "" {
				title = neutralTitle
			}
			rawURL := tt.url
			if rawURL == "" {
				rawURL = ruleTestURL
			}

			got := a.ScoreText(context.Background(), title, tt.content, rawURL, tt.doc)
			if got.BullshitRating != tt.wantRating {
				t.Errorf("expected rating %d, got %d", tt.wantRating, got.BullshitRating)
			}
			if got.Verdict != tt.wantVerdict {
				t.Errorf("expected verdict %s, got %s", tt.wantVerdict, got.Verdict)
			}
			assertReasons(t, got.Reasons, tt.wantReasons)
		})
	}
}

// structuralTally runs the structural checks the way ScoreStructured does
// and returns their raw tally.
func structuralTally(t *testing.T, content *model.ExtractedContent) tally {
	t.Helper()

	external, self, err := splitLinks(content.Links, ruleTestURL)
	if err != nil {
		t.Fatalf("splitLinks: %v", err)
	}
	in := &structuralInput{
		content:  content,
		stats:    summarizeParagraphs(content.Paragraphs),
		external: external,
		self:     self,
	}

	var tl tally
	for _, check := range structuralChecks {
		check(&tl, in)
	}
	return tl
}

// paragraphs returns n copies of p.
func paragraphs(n int, p string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// TestStructuralRules pins every structural band, its boundary and the order
// of the reasons.
func TestStructuralRules(t *testing.T) {
	t.Parallel()

	var (
		normal  = strings.Repeat("a", 120)
		short   = strings.Repeat("b", 50)
		long    = strings.Repeat("c", 600)
		outside = "https://blog.example.net/x"
		oneH1   = model.Headings{H1: []string{"Council update"}}
		twoH1   = model.Headings{H1: []string{"Council update", "Budget"}}
	)

	selfLinks := func(n int) []string {
		links := make([]string, n)
		for i := range links {
			links[i] = "https://www.example.com/page/" + strings.Repeat("x", i+1)
		}
		return links
	}

	tests := []struct {
		name        string
		content     *model.ExtractedContent
		wantScore   int
		wantReasons []string
	}{
		{
			name:    "one h1 and three normal paragraphs",
			content: &model.ExtractedContent{Headings: oneH1, Paragraphs: paragraphs(3, normal)},
		},

		// Headline ladder
		{
			name:        "missing h1",
			content:     &model.ExtractedContent{Paragraphs: paragraphs(3, normal)},
			wantScore:   15,
			wantReasons: []string{"Missing main headline (H1)"},
		},
		{
			name:        "multiple h1",
			content:     &model.ExtractedContent{Headings: twoH1, Paragraphs: paragraphs(3, normal)},
			wantScore:   10,
			wantReasons: []string{"Multiple H1 tags (poor HTML structure)"},
		},

		// Clickbait heading ladder
		{
			name: "one clickbait heading match",
			content: &model.ExtractedContent{
				Headings:   model.Headings{H1: []string{"Council update"}, H2: []string{"10 ways to cut costs"}},
				Paragraphs: paragraphs(3, normal),
			},
			wantScore:   10,
			wantReasons: []string{"Some clickbait elements in headings"},
		},
		{
			name: "three clickbait heading matches",
			content: &model.ExtractedContent{
				Headings: model.Headings{
					H1: []string{"You won't believe these 10 things"},
					H2: []string{"Doctors hate this"},
				},
				Paragraphs: paragraphs(3, normal),
			},
			wantScore:   20,
			wantReasons: []string{"Multiple clickbait-style headings detected"},
		},

		// Depth ladder
		{
			name:        "two paragraphs",
			content:     &model.ExtractedContent{Headings: oneH1, Paragraphs: paragraphs(2, normal)},
			wantScore:   20,
			wantReasons: []string{"Very few paragraphs - lacks depth"},
		},
		{
			name:        "few paragraphs wins over short paragraphs",
			content:     &model.ExtractedContent{Headings: oneH1, Paragraphs: paragraphs(2, short)},
			wantScore:   20,
			wantReasons: []string{"Very few paragraphs - lacks depth"},
		},
		{
			name: "eight of ten paragraphs short",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: append(paragraphs(8, short), paragraphs(2, normal)...),
				Links:      []string{outside},
			},
			wantScore:   15,
			wantReasons: []string{"Most paragraphs are very short - superficial content"},
		},
		{
			name: "seven of ten paragraphs short",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: append(paragraphs(7, short), paragraphs(3, normal)...),
				Links:      []string{outside},
			},
		},
		{
			name: "detailed paragraphs",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: append(paragraphs(5, normal), long),
				Links:      []string{outside},
			},
			wantScore:   -5,
			wantReasons: []string{"Contains detailed paragraphs with substance"},
		},
		{
			name: "well structured",
			content: &model.ExtractedContent{
				Headings:   model.Headings{H1: []string{"Council update"}, H2: []string{"Spending"}},
				Paragraphs: paragraphs(6, normal),
				Links:      []string{outside},
			},
			wantScore:   -10,
			wantReasons: []string{"Well-structured article with proper headings"},
		},

		// Link checks
		{
			name: "three credible links",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: paragraphs(3, normal),
				Links:      []string{"https://www.reuters.com/a", "https://www.nasa.gov/b", "https://www.mit.edu/c"},
			},
			wantScore:   -15,
			wantReasons: []string{"Multiple references to credible external sources"},
		},
		{
			name: "two credible links",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: paragraphs(3, normal),
				Links:      []string{"https://www.reuters.com/a", "https://www.nasa.gov/b", outside},
			},
			wantScore:   -8,
			wantReasons: []string{"Some references to credible sources"},
		},
		{
			name:        "no external links in a substantial article",
			content:     &model.ExtractedContent{Headings: oneH1, Paragraphs: paragraphs(6, normal)},
			wantScore:   15,
			wantReasons: []string{"No external sources cited in substantial article"},
		},
		{
			name: "four self links",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: paragraphs(3, normal),
				Links:      selfLinks(4),
			},
			wantScore:   10,
			wantReasons: []string{"Excessive self-referential links vs external sources"},
		},
		{
			name: "three self links",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: paragraphs(3, normal),
				Links:      selfLinks(3),
			},
		},

		// Meta description and images
		{
			name: "meta description over 50 characters",
			content: &model.ExtractedContent{
				Headings:        oneH1,
				Paragraphs:      paragraphs(3, normal),
				MetaDescription: strings.Repeat("m", 51),
			},
			wantScore:   -5,
			wantReasons: []string{"Proper meta description present"},
		},
		{
			name: "meta description of 50 characters",
			content: &model.ExtractedContent{
				Headings:        oneH1,
				Paragraphs:      paragraphs(3, normal),
				MetaDescription: strings.Repeat("m", 50),
			},
		},
		{
			name: "promotional image alt counts once",
			content: &model.ExtractedContent{
				Headings:   oneH1,
				Paragraphs: paragraphs(3, normal),
				ImageAlts:  []string{"Click here", "Buy now"},
			},
			wantScore:   10,
			wantReasons: []string{"Promotional or clickbait image descriptions"},
		},

		// Several checks at once
		{
			name: "reasons follow check order",
			content: &model.ExtractedContent{
				Headings:   model.Headings{H2: []string{"10 ways to cut costs"}},
				Paragraphs: paragraphs(2, normal),
				Links:      selfLinks(4),
				ImageAlts:  []string{"Amazing offer"},
			},
			wantScore: 65,
			wantReasons: []string{
				"Some clickbait elements in headings",
				"Missing main headline (H1)",
				"Very few paragraphs - lacks depth",
				"Excessive self-referential links vs external sources",
				"Promotional or clickbait image descriptions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := structuralTally(t, tt.content)
			if got.score != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, got.score)
			}
			assertReasons(t, got.all, tt.wantReasons)
		})
	}
}

// TestScoreStructuredBlend tests that structural scores are weighted 30/70
// against a neutral text rating of 50.
func TestScoreStructuredBlend(t *testing.T) {
	t.Parallel()

	a := NewContentAnalyzer(nil)
	normal := strings.Repeat("a", 120)

	tests := []struct {
		name           string
		content        *model.ExtractedContent
		wantRating     int
		wantConfidence int
		wantReasons    []string
	}{
		{
			name: "multiple h1",
			content: &model.ExtractedContent{
				Headings:   model.Headings{H1: []string{"Council update", "Budget"}},
				Paragraphs: paragraphs(3, normal),
			},
			// 10*0.3 + 50*0.7
			wantRating:     38,
			wantConfidence: 77,
		},
		{
			name: "detailed and well sourced",
			content: &model.ExtractedContent{
				Headings:   model.Headings{H1: []string{"Council update"}},
				Paragraphs: append(paragraphs(5, normal), strings.Repeat("c", 600)),
				Links:      []string{"https://www.reuters.com/a", "https://www.nasa.gov/b", "https://www.mit.edu/c"},
			},
			// -20*0.3 + 50*0.7
			wantRating:     29,
			wantConfidence: 86,
			wantReasons: []string{
				"Contains detailed paragraphs with substance",
				"Multiple references to credible external sources",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.content.MainText = prose("", articleLength)

			got, err := a.ScoreStructured(context.Background(), neutralTitle, tt.content, ruleTestURL, fakeDocument{author: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.BullshitRating != tt.wantRating {
				t.Errorf("expected rating %d, got %d", tt.wantRating, got.BullshitRating)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("expected confidence %d, got %d", tt.wantConfidence, got.Confidence)
			}
			if got.Verdict != model.VerdictOK {
				t.Errorf("expected ok, got %s", got.Verdict)
			}
			assertReasons(t, got.Reasons, tt.wantReasons)
		})
	}
}
