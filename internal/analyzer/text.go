package analyzer

import (
	"context"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/nao1215/bsdetector/internal/model"
)

// Content scoring constants.
const (
	// contentThreshold is the rating a text or structured analysis must
	// exceed for a bullshit verdict.
	contentThreshold = 65

	// contentBlacklistConfidence is the confidence of a blacklist hit when
	// the article was retrieved.
	contentBlacklistConfidence = 95

	// textMaxReasons caps the reasons of a plain-text analysis.
	textMaxReasons = 5
)

// titleRules flag sensational headlines.
var titleRules = []Rule{
	rule(`(?i)BREAKING|URGENT|SHOCKING|UNBELIEVABLE|AMAZING|INCREDIBLE|MIRACLE`, 25, "Sensationalized headline with clickbait language"),
	rule(`(?i)!!+|MUST READ|YOU WON'T BELIEVE|DOCTORS HATE`, 20, "Excessive punctuation and attention-grabbing phrases"),
	rule(`(?i)EXPOSED|REVEALED|SECRET|HIDDEN TRUTH|THEY DON'T WANT YOU`, 20, "Conspiracy-style language in headline"),
	rule(`(?i)\d+\s+(REASONS|WAYS|TRICKS|SECRETS)`, 15, "Listicle-style clickbait headline"),
	rule(`(?i)DESTROYS|SLAMS|OBLITERATES|ANNIHILATES`, 15, "Overly aggressive language in headline"),
}

// textURLRules flag suspicious domains. They are milder than the URL-only
// table because the content itself carries most of the weight here.
var textURLRules = []Rule{
	rule(`(?i)\.tk$|\.ml$|\.ga$|\.cf$|\.pw$`, 30, "Suspicious free domain extension"),
	rule(`(?i)news-?\w*\d+\.com|real\w*news|truth\w*news`, 25, "Fake news site pattern in domain"),
	rule(`(?i)\d{4,}\.com$|\w+\d{3,}\.com$`, 20, "Suspicious numeric or random domain name"),
	rule(`(?i)wordpress\.com|blogspot\.com|medium\.com\/[^\/]*$`, 10, "Personal blog platform (less editorial oversight)"),
}

// textCredibleRules recognize established outlets and institutions.
var textCredibleRules = []Rule{
	rule(`(?i)bbc\.com|cnn\.com|reuters\.com|ap\.org|npr\.org`, -20, "Established mainstream news source"),
	rule(`(?i)nytimes\.com|washingtonpost\.com|wsj\.com|guardian\.com`, -20, "Reputable newspaper website"),
	rule(`(?i)economist\.com|time\.com|newsweek\.com|politico\.com`, -15, "Known credible news publication"),
	rule(`(?i)\.gov$|\.edu$`, -15, "Government or educational institution"),
}

var (
	uppercasePattern = regexp.MustCompile(`[A-Z]`)

	emotionalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)OUTRAGEOUS|DISGUSTING|HORRIFIC|TERRIFYING|DEVASTATING`),
		regexp.MustCompile(`(?i)SCANDAL|BETRAYAL|CONSPIRACY|COVER.?UP|DEEP STATE`),
		regexp.MustCompile(`(?i)LIBERAL|CONSERVATIVE|DEMOCRAT|REPUBLICAN.*(?:DESTROY|ATTACK|HATE)`),
		regexp.MustCompile(`(?i)BIG PHARMA|MAINSTREAM MEDIA|FAKE NEWS|DEEP STATE`),
	}

	sourcingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)according to.*(?:study|research|report|survey)`),
		regexp.MustCompile(`(?i)peer.?reviewed|published in.*journal`),
		regexp.MustCompile(`(?i)expert.*(?:says|explains|notes|states)`),
		regexp.MustCompile(`(?i)data (?:shows|indicates|suggests|reveals)`),
		regexp.MustCompile(`(?i)statistics.*(?:show|indicate|suggest)`),
	}

	datePattern   = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`)
	sourcePattern = regexp.MustCompile(`(?i)source:|via |courtesy of|photo by|image:|credit:`)

	grammarPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:there|their|they're)\s+(?:are|is)\s+(?:there|their|they're)\b`),
		regexp.MustCompile(`(?i)\b(?:your|you're)\s+(?:going|gonna)\s+(?:your|you're)\b`),
		regexp.MustCompile(`[.!?]{3,}`),
		regexp.MustCompile(`\s{3,}`),
	}
)

// lengthLadder penalizes thin articles. Input: length in characters.
var lengthLadder = Ladder[int]{
	{When: func(n int) bool { return n < 300 }, Score: 20, Reason: "Extremely short article with minimal substance"},
	{When: func(n int) bool { return n < 500 }, Score: 10, Reason: "Very brief article lacking depth"},
}

// capsLadder penalizes screaming text. Input: share of A-Z letters.
var capsLadder = Ladder[float64]{
	{When: func(r float64) bool { return r > 0.15 }, Score: 25, Reason: "Excessive use of capital letters (screaming text)"},
	{When: func(r float64) bool { return r > 0.1 }, Score: 15, Reason: "High use of capital letters"},
}

// emotionLadder penalizes polarizing language. Input: match count.
var emotionLadder = Ladder[int]{
	{When: func(n int) bool { return n > 8 }, Score: 25, Reason: "Heavy use of emotional manipulation and polarizing language"},
	{When: func(n int) bool { return n > 4 }, Score: 15, Reason: "Moderate use of emotional and sensational language"},
}

// sourcingLadder rewards references to studies and experts. Input: match count.
var sourcingLadder = Ladder[int]{
	{When: func(n int) bool { return n > 3 }, Score: -20, Reason: "Multiple references to studies, experts, and data"},
	{When: func(n int) bool { return n > 0 }, Score: -10, Reason: "Some references to credible sources"},
}

// citations records whether the text carries dates and source credits.
type citations struct {
	dates   bool
	sources bool
}

var citationLadder = Ladder[citations]{
	{When: func(c citations) bool { return c.dates && c.sources }, Score: -15, Reason: "Article includes proper dating and source citations"},
	{When: func(c citations) bool { return c.dates || c.sources }, Score: -8, Reason: "Some dating or source information present"},
}

// grammarLadder penalizes sloppy writing. Input: issue count.
var grammarLadder = Ladder[int]{
	{When: func(n int) bool { return n > 5 }, Score: 20, Reason: "Multiple grammar errors and poor writing quality"},
	{When: func(n int) bool { return n > 2 }, Score: 10, Reason: "Some grammar and formatting issues"},
}

// authorshipLadder rewards bylines and dates. Having only one of them is neutral.
var authorshipLadder = Ladder[markers]{
	{When: func(m markers) bool { return m.author && m.date }, Score: -10, Reason: "Article has clear authorship and publication date"},
	{When: func(m markers) bool { return !m.author && !m.date }, Score: 15, Reason: "No clear author or publication date information"},
}

// textInput is what the plain-text checks look at.
type textInput struct {
	title   string
	content string
	url     string
	doc     Document
}

// textCheck is one group of plain-text rules.
type textCheck func(t *tally, in *textInput)

// textChecks run in order; the order fixes the order of the reasons.
var textChecks = []textCheck{
	func(t *tally, in *textInput) { t.applyRules(titleRules, in.title) },
	func(t *tally, in *textInput) { t.applyRules(textURLRules, in.url) },
	func(t *tally, in *textInput) { t.applyRules(textCredibleRules, in.url) },
	func(t *tally, in *textInput) { climb(t, lengthLadder, utf8.RuneCountInString(in.content)) },
	func(t *tally, in *textInput) { climb(t, capsLadder, capsRatio(in.content)) },
	func(t *tally, in *textInput) { climb(t, emotionLadder, countMatches(emotionalPatterns, in.content)) },
	func(t *tally, in *textInput) { climb(t, sourcingLadder, countMatches(sourcingPatterns, in.content)) },
	func(t *tally, in *textInput) {
		climb(t, citationLadder, citations{
			dates:   datePattern.MatchString(in.content),
			sources: sourcePattern.MatchString(in.content),
		})
	},
	func(t *tally, in *textInput) { climb(t, grammarLadder, countMatches(grammarPatterns, in.content)) },
	func(t *tally, in *textInput) { climb(t, authorshipLadder, pageMarkers(in.doc)) },
}

// capsRatio is the share of ASCII capital letters among all characters.
// Empty text has a ratio of 0.
func capsRatio(s string) float64 {
	length := utf8.RuneCountInString(s)
	if length == 0 {
		return 0
	}
	return float64(len(uppercasePattern.FindAllStringIndex(s, -1))) / float64(length)
}

// ContentAnalyzer scores retrieved articles.
type ContentAnalyzer struct {
	blacklist Blacklist
	logger    *slog.Logger
}

// NewContentAnalyzer creates a content scorer. A nil blacklist disables the
// blacklist short-circuit.
func NewContentAnalyzer(bl Blacklist, opts ...Option) *ContentAnalyzer {
	o := newOptions(opts)
	return &ContentAnalyzer{blacklist: bl, logger: o.logger}
}

// ScoreText scores a title and the article's plain text.
// doc is consulted for authorship markers and may be nil.
//
// The reasons are the first five red flags for a bullshit verdict and the
// first five credibility signals otherwise.
func (a *ContentAnalyzer) ScoreText(ctx context.Context, title, content, rawURL string, doc Document) model.AnalysisScore {
	if score, hit := checkBlacklist(ctx, a.blacklist, rawURL, contentBlacklistConfidence); hit {
		a.logger.Debug("blacklisted publisher", "url", rawURL)
		return score
	}

	in := &textInput{title: title, content: content, url: rawURL, doc: doc}

	var t tally
	for _, check := range textChecks {
		check(&t, in)
	}

	r := rating(t.score)
	v := verdict(r, contentThreshold)

	reasons := firstN(t.credibility, textMaxReasons)
	if v == model.VerdictBullshit {
		reasons = firstN(t.redFlags, textMaxReasons)
	}

	a.logger.Debug("text analysis complete", "url", rawURL, "score", t.score, "rating", r, "verdict", v)

	return model.AnalysisScore{
		Verdict:        v,
		Confidence:     model.Clamp(abs(t.score)+65, 60, 95),
		BullshitRating: r,
		Reasons:        reasons,
	}
}
