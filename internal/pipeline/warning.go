package pipeline

import "golang.org/x/text/language"

// fallbackWarnings are the localized notes attached to recovered analyses.
// The first entry is the default.
var fallbackWarnings = []struct {
	tag  language.Tag
	text string
}{
	{tag: language.English, text: "Analysis limited due to content access restrictions"},
	{tag: language.German, text: "Analyse aufgrund von Zugriffsbeschränkungen begrenzt"},
}

var warningMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(fallbackWarnings))
	for i, w := range fallbackWarnings {
		tags[i] = w.tag
	}
	return language.NewMatcher(tags)
}()

// FallbackWarning returns the warning for a language code such as "de" or
// "de-AT". Unknown or empty codes get English.
func FallbackWarning(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return fallbackWarnings[0].text
	}
	_, index, confidence := warningMatcher.Match(tag)
	if confidence == language.No {
		return fallbackWarnings[0].text
	}
	return fallbackWarnings[index].text
}
