// FILE: pkg/rag/answer/enrich.go
package answer

import (
	"strings"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/pkg/utils"
)

// Enrichment caps are tighter than parse caps: extracted sentences are noisier
// than model output, so fewer of them keep the answer readable.
const (
	enrichSectionCap  = 3
	enrichPenaltyCap  = 3
	enrichKeyPointCap = 4
	enrichExampleCap  = 2
)

var (
	penaltyKeywords  = []string{"punish", "imprison", "fine"}
	keyPointKeywords = []string{"intent", "offence", "liable", "guilty", "element", "mens rea", "actus reus"}
	exampleKeywords  = []string{"illustration", "example"}
	sectionKeywords  = []string{"section", "ipc"}
)

// EnrichFromPassages backfills structured fields the model left empty with
// sentences extracted from the retrieved passages. Parsed content always
// wins; enrichment never overwrites a populated field. It also derives a
// tldr from the short answer when the model offered none.
func EnrichFromPassages(ans *entity.StructuredAnswer, passages []entity.RetrievedPassage) {
	if ans == nil {
		return
	}
	if len(passages) > 0 {
		if len(ans.Sections) == 0 {
			ans.Sections = sectionsFromPassages(passages)
		}
		if len(ans.Penalties) == 0 {
			ans.Penalties = normalizeList(matchingSentences(passages, penaltyKeywords), enrichPenaltyCap)
		}
		if len(ans.KeyPoints) == 0 {
			ans.KeyPoints = normalizeList(matchingSentences(passages, keyPointKeywords), enrichKeyPointCap)
		}
		if len(ans.Examples) == 0 {
			ans.Examples = normalizeList(matchingSentences(passages, exampleKeywords), enrichExampleCap)
		}
	}
	if ans.Tldr == nil && ans.ShortAnswer != "" {
		tldr := utils.FirstSentences(ans.ShortAnswer, 1, tldrMaxChars)
		ans.Tldr = &tldr
	}
}

// sectionsFromPassages prefers the indexed section label over text scraping.
// Passages without a label fall back to sentences that cite a section.
func sectionsFromPassages(passages []entity.RetrievedPassage) []string {
	items := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.SectionLabel != "" {
			label := p.SectionLabel
			if p.SourceTitle != "" {
				label += " (" + p.SourceTitle + ")"
			}
			items = append(items, label)
			continue
		}
		items = append(items, sentencesWithKeywords(p.Text, sectionKeywords)...)
	}
	return normalizeList(items, enrichSectionCap)
}

func matchingSentences(passages []entity.RetrievedPassage, keywords []string) []string {
	var hits []string
	for _, p := range passages {
		hits = append(hits, sentencesWithKeywords(p.Text, keywords)...)
	}
	return hits
}

func sentencesWithKeywords(text string, keywords []string) []string {
	var hits []string
	for _, sentence := range utils.Sentences(cleanProse(text)) {
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, sentence)
				break
			}
		}
	}
	return hits
}
