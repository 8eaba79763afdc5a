package answer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Prajankrish/Lex-AI/internal/entity"
)

// Caps keep every structured field scannable in a chat UI. Overflow is
// dropped, never truncated mid-item.
const (
	maxSections  = 4
	maxPenalties = 4
	maxKeyPoints = 5
	maxExamples  = 2

	shortAnswerSentences = 3
	shortAnswerMaxChars  = 600
	tldrMaxChars         = 250
	detailedMaxChars     = 8000

	// listItemMaxChars keeps doc-derived bullets readable, not paragraphs.
	listItemMaxChars = 300
)

var (
	codeFenceRe   = regexp.MustCompile("```[\\s\\S]*?```")
	headingMarkRe = regexp.MustCompile(`(?m)^#+\s*`)
	bulletMarkRe  = regexp.MustCompile(`(?m)^[-*•+]\s+`)
	bracketedRe   = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
)

// cleanProse flattens markdown and statute annotations into plain prose for
// summarization: code fences, heading and bullet markers, bracketed notes
// like [Repealed] and short parentheticals all go, whitespace collapses.
func cleanProse(text string) string {
	if text == "" {
		return ""
	}
	text = codeFenceRe.ReplaceAllString(text, " ")
	text = headingMarkRe.ReplaceAllString(text, "")
	text = bulletMarkRe.ReplaceAllString(text, "")
	text = bracketedRe.ReplaceAllString(text, " ")
	text = parentheticRe.ReplaceAllString(text, " ")
	text = strings.NewReplacer("*", "", "`", "").Replace(text)
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(text, " "))
}

// HasStructure reports whether the model populated anything beyond the bare
// short answer. A structure-free parse means the model ignored the format
// instructions and the reply should be surfaced as-is, marked degraded.
func HasStructure(ans *entity.StructuredAnswer) bool {
	return len(ans.Sections) > 0 ||
		len(ans.Penalties) > 0 ||
		len(ans.KeyPoints) > 0 ||
		len(ans.Examples) > 0 ||
		ans.Detailed != nil ||
		ans.Tldr != nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
