package triage

import (
	"regexp"
)

// denylist is matched case-insensitively against listing name and description.
var denylist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(crypto(currency)?|bitcoin|btc|nfts?|forex signals?)\b`),
	regexp.MustCompile(`(?i)\b(casino|gambl(e|ing)|sports? betting|online slots?|poker)\b`),
	regexp.MustCompile(`(?i)\b(porn\w*|xxx|escorts?|nsfw|adult (content|services))\b`),
	regexp.MustCompile(`(?i)\b(viagra|cialis)\b`),
	regexp.MustCompile(`(?i)\b(get rich quick|make money fast|guaranteed (income|returns))\b`),
	regexp.MustCompile(`(?i)\b(replica|counterfeit|fake) (watch(es)?|handbags?|designer)\b`),
	regexp.MustCompile(`(?i)\b(click here|free money|payday loans?)\b`),
}

// KeywordFilter is the synchronous first pass of triage.
type KeywordFilter struct {
	patterns []*regexp.Regexp
}

// NewKeywordFilter returns a filter over the built-in denylist.
func NewKeywordFilter() *KeywordFilter {
	return &KeywordFilter{patterns: denylist}
}

// NewKeywordFilterWithPatterns returns a filter over custom patterns.
func NewKeywordFilterWithPatterns(patterns []*regexp.Regexp) *KeywordFilter {
	return &KeywordFilter{patterns: patterns}
}

// Match returns the first denylisted term found in text.
func (f *KeywordFilter) Match(text string) (string, bool) {
	for _, p := range f.patterns {
		if m := p.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
