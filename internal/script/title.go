// Package script cleans up AI-generated titles and provides the localized
// fixed copy (outro sentence, fallback titles) used by the renderer.
package script

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxTitleWords = 8
	maxTitleRunes = 60
)

var (
	quoteBracketRe = regexp.MustCompile("[“”‘’'\"()\\[\\]{}«»]")
	multiPunctRe   = regexp.MustCompile(`[.!?;:,]{2,}`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
	separatorRe    = regexp.MustCompile(`[|\-\x{2013}\x{2014}:]`)
)

// Label prefixes generative models like to prepend. Longer variants first
// so "The Story of" wins over "Story of".
var titlePrefixes = []string{
	"title:",
	"story:",
	"the story of",
	"a story of",
	"story of",
	"the tale of",
	"a tale of",
	"tale of",
}

// CleanTitle normalizes a raw, possibly model-generated title: strips
// quotes and label prefixes, collapses punctuation runs, truncates to
// 8 words / 60 runes and title-cases the result. An empty result is
// replaced by a per-language fallback noun.
func CleanTitle(raw, language string) string {
	title := strings.TrimSpace(raw)

	title = quoteBracketRe.ReplaceAllString(title, "")
	title = multiPunctRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(multiSpaceRe.ReplaceAllString(title, " "))

	lower := strings.ToLower(title)
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(lower, prefix) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}

	// Bilingual model output ("कहानी - The Story") for a non-English
	// target: keep the first segment that carries non-ASCII text.
	if language != "en" && hasNonASCII(title) {
		for _, part := range separatorRe.Split(title, -1) {
			part = strings.TrimSpace(part)
			if hasNonASCII(part) {
				title = part
				break
			}
		}
	}

	words := strings.Fields(title)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	title = strings.Join(words, " ")

	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = strings.TrimSpace(string(runes[:maxTitleRunes-3])) + "..."
	}

	title = titleCase(title)

	if title == "" {
		return FallbackTitle(language)
	}
	return title
}

// FallbackTitle returns the per-language substitute used when cleaning
// leaves nothing usable.
func FallbackTitle(language string) string {
	if t, ok := fallbackTitles[language]; ok {
		return t
	}
	return fallbackTitles["en"]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		head := string(unicode.ToUpper(runes[0]))
		tail := strings.ToLower(string(runes[1:]))
		words[i] = head + tail
	}
	return strings.Join(words, " ")
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

var fallbackTitles = map[string]string{
	"en": "Story Video",
	"hi": "कहानी",
	"ta": "கதை",
	"te": "కథ",
	"mr": "कथा",
	"bn": "গল্প",
	"gu": "વાર્તા",
	"kn": "ಕಥೆ",
	"ml": "കഥ",
	"or": "କାହାଣୀ",
	"pa": "ਕਹਾਣੀ",
	"as": "কাহিনী",
	"ur": "کہانی",
	"es": "Historia",
	"fr": "Histoire",
	"de": "Geschichte",
	"ja": "物語",
	"ko": "이야기",
	"zh": "故事",
}
