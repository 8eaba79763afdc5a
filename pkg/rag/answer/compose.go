// FILE: pkg/rag/answer/compose.go
package answer

import (
	"fmt"
	"strings"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/pkg/utils"
)

// Compose renders a StructuredAnswer into the canonical chat markdown.
// Headings always appear in the same order and empty fields are omitted, so
// thin answers stay thin and the frontend can rely on a stable layout.
func Compose(ans *entity.StructuredAnswer) string {
	var b strings.Builder

	if ans.ShortAnswer != "" {
		b.WriteString("**Summary**\n")
		b.WriteString(ans.ShortAnswer)
		b.WriteString("\n")
	}

	writeBulleted(&b, "**Relevant IPC Sections:**", ans.Sections)
	writeBulleted(&b, "**Punishments / Penalties:**", ans.Penalties)
	writeNumbered(&b, "**Key Legal Points:**", ans.KeyPoints)
	writeBulleted(&b, "**Examples:**", ans.Examples)

	if ans.Detailed != nil {
		if detail := strings.TrimSpace(*ans.Detailed); detail != "" {
			b.WriteString("\n**Detailed Explanation:**\n")
			b.WriteString(detail)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String())
}

func writeBulleted(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}

func writeNumbered(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

// Fallback builds a deterministic extractive answer straight from the
// retrieved passages, for when the model produced nothing usable or the
// provider is down. The same query and passages always yield the same
// markdown. With no passages it degrades to a retry suggestion.
func Fallback(query string, passages []entity.RetrievedPassage) (*entity.StructuredAnswer, string) {
	ans := &entity.StructuredAnswer{}
	if len(passages) == 0 {
		ans.ShortAnswer = "I could not find grounded material for this question in the indexed legal corpus. " +
			"Please rephrase, or ask about a specific Act or section."
		return ans, Compose(ans)
	}

	ans.ShortAnswer = utils.FirstSentences(cleanProse(passages[0].Text), shortAnswerSentences, shortAnswerMaxChars)
	if ans.ShortAnswer == "" {
		ans.ShortAnswer = "The indexed corpus contains provisions relevant to: " + strings.TrimSpace(query)
	}
	EnrichFromPassages(ans, passages)
	return ans, Compose(ans)
}
