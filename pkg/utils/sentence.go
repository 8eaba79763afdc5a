package utils

import (
	"strings"
	"unicode"
)

// Sentence terminators. The Devanagari danda matters for Hindi passages in
// the Constitution/IPC corpus; the ellipsis shows up in statute quotations.
var sentenceTerminators = map[rune]bool{
	'.': true,
	'?': true,
	'!': true,
	'।': true,
	';': true,
	'…': true,
}

// forwardExtendLimit bounds how far past the cap CutAtSentence may reach to
// finish the sentence in progress.
const forwardExtendLimit = 400

// minBoundaryRatio rejects sentence boundaries that would discard most of the
// window; below this we prefer extending forward over a tiny fragment.
const minBoundaryRatio = 0.3

// CutAtSentence trims text to at most maxChars runes without ever cutting
// mid-sentence. It prefers the last sentence boundary inside the window,
// extends up to forwardExtendLimit runes to finish the current sentence when
// the boundary sits too early, and falls back to a word cut with an ellipsis
// only when no boundary exists at all.
func CutAtSentence(text string, maxChars int) string {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return strings.TrimSpace(text)
	}

	window := runes[:maxChars]
	lastTerm := -1
	for i, r := range window {
		if sentenceTerminators[r] {
			lastTerm = i
		}
	}

	if lastTerm >= 0 && float64(lastTerm+1) >= minBoundaryRatio*float64(maxChars) {
		return strings.TrimSpace(string(runes[:lastTerm+1]))
	}

	limit := maxChars + forwardExtendLimit
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := maxChars; i < limit; i++ {
		if sentenceTerminators[runes[i]] {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}

	lastSpace := -1
	for i, r := range window {
		if unicode.IsSpace(r) {
			lastSpace = i
		}
	}
	if lastSpace > 0 {
		return strings.TrimSpace(string(runes[:lastSpace])) + "..."
	}
	return strings.TrimSpace(string(window)) + "..."
}

// Sentences splits text into trimmed sentences, keeping each terminator
// attached to its sentence. Text after the last terminator is returned as a
// final unterminated sentence.
func Sentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if sentenceTerminators[r] {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// FirstSentences joins the first n sentences of text and caps the result at
// maxChars via CutAtSentence.
func FirstSentences(text string, n int, maxChars int) string {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if n > 0 && len(sentences) > n {
		sentences = sentences[:n]
	}
	joined := strings.Join(sentences, " ")
	return CutAtSentence(joined, maxChars)
}

// Canonical reduces a snippet to a comparison key: lowercased, trailing
// ellipsis stripped, every non-alphanumeric run collapsed to one space.
// Snippets whose canonical forms contain each other are near-duplicates.
func Canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "...")
	s = strings.TrimSuffix(s, "…")

	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
