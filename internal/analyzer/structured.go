package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/bsdetector/internal/model"
)

// Structured scoring constants.
const (
	// structuralWeight and textWeight blend the structural score with the
	// plain-text rating of the main text.
	structuralWeight = 0.3
	textWeight       = 0.7

	// structuredMaxReasons caps the reasons of a structured analysis.
	structuredMaxReasons = 6

	shortParagraphLength  = 100
	longParagraphLength   = 500
	substantialParagraphs = 5
	selfLinkLimit         = 3
	metaDescriptionLength = 50
)

var (
	clickbaitHeadingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s+(REASONS|WAYS|TRICKS|SECRETS|THINGS)`),
		regexp.MustCompile(`(?i)YOU WON'T BELIEVE|SHOCKING|AMAZING|INCREDIBLE`),
		regexp.MustCompile(`(?i)DOCTORS HATE|ONE WEIRD TRICK|WHAT HAPPENS NEXT`),
	}

	// credibleLinkPatterns are matched case-sensitively against link URLs.
	credibleLinkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\.(gov|edu|org)\/`),
		regexp.MustCompile(`(bbc|reuters|ap|nytimes|washingtonpost|wsj|guardian|economist|time|newsweek|politico)\.com`),
	}

	promotionalAltPattern = regexp.MustCompile(`(?i)click|buy|amazing|shocking|incredible`)
)

// clickbaitLadder penalizes clickbait headings. Input: number of
// (heading, pattern) matches.
var clickbaitLadder = Ladder[int]{
	{When: func(n int) bool { return n > 2 }, Score: 20, Reason: "Multiple clickbait-style headings detected"},
	{When: func(n int) bool { return n > 0 }, Score: 10, Reason: "Some clickbait elements in headings"},
}

// h1Ladder checks for exactly one main headline. Input: number of h1 headings.
var h1Ladder = Ladder[int]{
	{When: func(n int) bool { return n == 0 }, Score: 15, Reason: "Missing main headline (H1)"},
	{When: func(n int) bool { return n > 1 }, Score: 10, Reason: "Multiple H1 tags (poor HTML structure)"},
}

// paragraphStats summarizes the paragraphs of an article.
type paragraphStats struct {
	count int
	short int
	long  int
}

// depthLadder penalizes shallow articles.
var depthLadder = Ladder[paragraphStats]{
	{When: func(p paragraphStats) bool { return p.count < 3 }, Score: 20, Reason: "Very few paragraphs - lacks depth"},
	{
		When:   func(p paragraphStats) bool { return float64(p.short)/float64(p.count) > 0.7 },
		Score:  15,
		Reason: "Most paragraphs are very short - superficial content",
	},
}

// credibleLinkLadder rewards links to credible sources. Input: number of
// credible external links.
var credibleLinkLadder = Ladder[int]{
	{When: func(n int) bool { return n > 2 }, Score: -15, Reason: "Multiple references to credible external sources"},
	{When: func(n int) bool { return n > 0 }, Score: -8, Reason: "Some references to credible sources"},
}

// structuralInput is what the structural checks look at.
type structuralInput struct {
	content  *model.ExtractedContent
	stats    paragraphStats
	external []string
	self     []string
}

// structuralCheck is one group of structural rules.
type structuralCheck func(t *tally, in *structuralInput)

// structuralChecks run in order; the order fixes the order of the reasons.
var structuralChecks = []structuralCheck{
	checkClickbaitHeadings,
	checkHeadingStructure,
	checkParagraphs,
	checkLinks,
	checkMetaDescription,
	checkImageAlts,
}

func checkClickbaitHeadings(t *tally, in *structuralInput) {
	count := 0
	for _, heading := range in.content.Headings.All() {
		for _, p := range clickbaitHeadingPatterns {
			if p.MatchString(heading) {
				count++
			}
		}
	}
	climb(t, clickbaitLadder, count)
}

func checkHeadingStructure(t *tally, in *structuralInput) {
	h := in.content.Headings
	climb(t, h1Ladder, len(h.H1))

	hasSubheadings := len(h.H2) > 0 || len(h.H3) > 0
	if hasSubheadings && in.stats.count > substantialParagraphs {
		t.add(-10, "Well-structured article with proper headings")
	}
}

func checkParagraphs(t *tally, in *structuralInput) {
	climb(t, depthLadder, in.stats)

	if in.stats.long > 0 && in.stats.count > substantialParagraphs {
		t.add(-5, "Contains detailed paragraphs with substance")
	}
}

func checkLinks(t *tally, in *structuralInput) {
	credible := 0
	for _, link := range in.external {
		for _, p := range credibleLinkPatterns {
			if p.MatchString(link) {
				credible++
				break
			}
		}
	}
	climb(t, credibleLinkLadder, credible)

	if len(in.external) == 0 && in.stats.count > substantialParagraphs {
		t.add(15, "No external sources cited in substantial article")
	}

	if len(in.self) > len(in.external) && len(in.self) > selfLinkLimit {
		t.add(10, "Excessive self-referential links vs external sources")
	}
}

func checkMetaDescription(t *tally, in *structuralInput) {
	if utf8.RuneCountInString(in.content.MetaDescription) > metaDescriptionLength {
		t.add(-5, "Proper meta description present")
	}
}

func checkImageAlts(t *tally, in *structuralInput) {
	for _, alt := range in.content.ImageAlts {
		if promotionalAltPattern.MatchString(alt) {
			t.add(10, "Promotional or clickbait image descriptions")
			return
		}
	}
}

// summarizeParagraphs counts short and long paragraphs.
func summarizeParagraphs(paragraphs []string) paragraphStats {
	stats := paragraphStats{count: len(paragraphs)}
	for _, p := range paragraphs {
		n := utf8.RuneCountInString(p)
		if n < shortParagraphLength {
			stats.short++
		}
		if n > longParagraphLength {
			stats.long++
		}
	}
	return stats
}

// splitLinks separates links to other sites from links back to the
// article's own host. A link counts as self-referential when it contains
// the hostname anywhere.
func splitLinks(links []string, rawURL string) (external, self []string, err error) {
	if len(links) == 0 {
		return nil, nil, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	hostname := strings.ToLower(u.Hostname())

	for _, link := range links {
		if strings.Contains(link, hostname) {
			self = append(self, link)
			continue
		}
		external = append(external, link)
	}
	return external, self, nil
}

// ScoreStructured scores an article's structure and blends the result with
// the plain-text score of its main text: 30% structure, 70% text.
//
// It returns ErrInvalidURL when the article has links but its URL has no
// hostname to compare them against.
func (a *ContentAnalyzer) ScoreStructured(ctx context.Context, title string, content *model.ExtractedContent, rawURL string, doc Document) (model.AnalysisScore, error) {
	if score, hit := checkBlacklist(ctx, a.blacklist, rawURL, contentBlacklistConfidence); hit {
		a.logger.Debug("blacklisted publisher", "url", rawURL)
		return score, nil
	}
	if content == nil {
		content = &model.ExtractedContent{}
	}

	external, self, err := splitLinks(content.Links, rawURL)
	if err != nil {
		return model.AnalysisScore{}, err
	}

	in := &structuralInput{
		content:  content,
		stats:    summarizeParagraphs(content.Paragraphs),
		external: external,
		self:     self,
	}

	var t tally
	for _, check := range structuralChecks {
		check(&t, in)
	}

	text := a.ScoreText(ctx, title, content.MainText, rawURL, doc)

	// The plain-text reasons are already filtered by its own verdict, so
	// they join the list that matches that verdict.
	redFlags := t.redFlags
	credibility := t.credibility
	if text.Verdict == model.VerdictBullshit {
		redFlags = append(redFlags, text.Reasons...)
	} else {
		credibility = append(credibility, text.Reasons...)
	}

	combined := model.Clamp(
		model.RoundHalfUp(float64(t.score)*structuralWeight+float64(text.BullshitRating)*textWeight),
		0, 100,
	)
	v := verdict(combined, contentThreshold)

	reasons := firstN(credibility, structuredMaxReasons)
	if v == model.VerdictBullshit {
		reasons = firstN(redFlags, structuredMaxReasons)
	}

	a.logger.Debug("structured analysis complete",
		"url", rawURL,
		"structural_score", t.score,
		"text_rating", text.BullshitRating,
		"rating", combined,
		"verdict", v,
	)

	return model.AnalysisScore{
		Verdict:        v,
		Confidence:     model.Clamp(abs(combined-50)+65, 60, 95),
		BullshitRating: combined,
		Reasons:        reasons,
	}, nil
}
