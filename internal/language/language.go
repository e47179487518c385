// Package language implements a heuristic English detector used as a safety
// net behind the platforms' own language parameters.
package language

import (
	"strings"
	"unicode"
)

// nonLatinRatioThreshold rejects text once more than this fraction of its
// letters come from CJK, Arabic or Cyrillic scripts.
const nonLatinRatioThreshold = 0.20

// Common English function words used to corroborate the script-ratio test.
var functionWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {},
	"that": {}, "have": {}, "i": {}, "it": {}, "for": {}, "not": {}, "on": {},
	"with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {}, "this": {},
	"but": {}, "his": {}, "by": {}, "from": {}, "they": {}, "we": {}, "is": {},
	"her": {}, "she": {}, "or": {}, "an": {}, "will": {}, "my": {}, "one": {},
	"all": {}, "would": {}, "there": {}, "their": {}, "what": {}, "are": {},
}

// IsEnglish reports whether text is likely English. It is pure and
// deterministic. Empty or whitespace-only text is rejected so contentless
// posts never pass the filter. Hashtags, mentions and emoji are excluded from
// the character-ratio denominator, so an English post wrapped in hashtags is
// not penalized.
func IsEnglish(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	letters, nonLatin := countScripts(text)
	if letters > 0 && float64(nonLatin)/float64(letters) > nonLatinRatioThreshold {
		return false
	}

	// The script-ratio test is authoritative; function words only corroborate.
	// Long text with not a single common English word is rejected, short text
	// is given the benefit of the doubt.
	words := strings.Fields(text)
	if len(words) >= 20 && countFunctionWords(words) == 0 {
		return false
	}

	return true
}

// countScripts walks the text skipping hashtag and mention tokens, returning
// the number of letters considered and how many of them belong to non-Latin
// scripts.
func countScripts(text string) (letters, nonLatin int) {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, "#") || strings.HasPrefix(word, "@") {
			continue
		}
		for _, r := range word {
			if isNonLatinScript(r) {
				letters++
				nonLatin++
				continue
			}
			// Emoji and symbols are not letters and stay out of the
			// denominator.
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}
	return letters, nonLatin
}

func countFunctionWords(words []string) int {
	count := 0
	for _, word := range words {
		trimmed := strings.ToLower(strings.Trim(word, ".,!?;:'\"()[]"))
		if _, ok := functionWords[trimmed]; ok {
			count++
		}
	}
	return count
}

// isNonLatinScript reports whether the rune belongs to the CJK, Cyrillic or
// Arabic ranges the filter screens for.
func isNonLatinScript(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 0x3040 && r <= 0x309F: // hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // katakana
		return true
	case r >= 0x0400 && r <= 0x04FF: // Cyrillic
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic supplement
		return true
	}
	return false
}
