// FILE: pkg/rag/answer/parser.go
package answer

import (
	"regexp"
	"strings"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/pkg/utils"
)

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldSummary
	fieldSections
	fieldPenalties
	fieldKeyPoints
	fieldExamples
	fieldDetailed
	fieldTldr
)

// headingAliases maps normalized heading text to the field it introduces.
// Local models rarely reproduce the prompt format verbatim, so several
// spellings are accepted per field.
var headingAliases = map[string]fieldKind{
	"summary":      fieldSummary,
	"short answer": fieldSummary,
	"answer":       fieldSummary,

	"relevant ipc sections": fieldSections,
	"relevant sections":     fieldSections,
	"sections cited":        fieldSections,
	"sections":              fieldSections,

	"punishments / penalties": fieldPenalties,
	"punishments":             fieldPenalties,
	"punishment":              fieldPenalties,
	"penalties":               fieldPenalties,

	"key legal points": fieldKeyPoints,
	"key points":       fieldKeyPoints,

	"examples":      fieldExamples,
	"example":       fieldExamples,
	"illustrations": fieldExamples,
	"illustration":  fieldExamples,

	"detailed explanation": fieldDetailed,
	"detailed answer":      fieldDetailed,
	"explanation":          fieldDetailed,
	"details":              fieldDetailed,

	"tldr":  fieldTldr,
	"tl;dr": fieldTldr,
}

var listMarkerRe = regexp.MustCompile(`^(?:[-*•+]|\d{1,2}[.)])\s+`)

// Parse turns a raw model reply into a StructuredAnswer. It is a tolerant
// scanner, not a validator: unknown headings become body text, list markers
// are optional, and prose before the first heading seeds the short answer.
// The only reply it rejects is a blank one.
func Parse(raw string) (*entity.StructuredAnswer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &dto.UnparseableResponseError{}
	}

	collected := make(map[fieldKind][]string)
	var preamble []string
	current := fieldNone

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if kind, rest, ok := matchHeading(line); ok {
			current = kind
			if rest != "" {
				collected[current] = append(collected[current], rest)
			}
			continue
		}
		if current == fieldNone {
			preamble = append(preamble, line)
			continue
		}
		collected[current] = append(collected[current], stripListMarker(line))
	}

	ans := &entity.StructuredAnswer{}

	summarySrc := strings.Join(collected[fieldSummary], " ")
	if strings.TrimSpace(summarySrc) == "" {
		summarySrc = strings.Join(preamble, " ")
	}
	if strings.TrimSpace(summarySrc) == "" {
		// Headingless or list-only replies still yield a usable summary.
		summarySrc = trimmed
	}
	ans.ShortAnswer = utils.FirstSentences(cleanProse(summarySrc), shortAnswerSentences, shortAnswerMaxChars)

	ans.Sections = normalizeList(collected[fieldSections], maxSections)
	ans.Penalties = normalizeList(collected[fieldPenalties], maxPenalties)
	ans.KeyPoints = normalizeList(collected[fieldKeyPoints], maxKeyPoints)
	ans.Examples = normalizeList(collected[fieldExamples], maxExamples)

	if body := strings.TrimSpace(strings.Join(collected[fieldDetailed], "\n")); body != "" {
		detail := utils.CutAtSentence(body, detailedMaxChars)
		ans.Detailed = &detail
	}
	if body := strings.TrimSpace(strings.Join(collected[fieldTldr], " ")); body != "" {
		tl := utils.FirstSentences(cleanProse(body), 1, tldrMaxChars)
		ans.Tldr = &tl
	}

	return ans, nil
}

// matchHeading reports whether a line opens a known section. Accepts
// "**Summary:**", "# Penalties", "TL;DR:" and the like; inline content
// after the colon is returned as the first body line.
func matchHeading(line string) (fieldKind, string, bool) {
	stripped := strings.TrimLeft(stripListMarker(line), "#>*-_ \t")
	if stripped == "" {
		return fieldNone, "", false
	}

	head, rest := stripped, ""
	if idx := strings.Index(stripped, ":"); idx >= 0 {
		head, rest = stripped[:idx], stripped[idx+1:]
	}

	kind, ok := headingAliases[normalizeHeading(head)]
	if !ok {
		return fieldNone, "", false
	}
	rest = strings.TrimSpace(strings.TrimLeft(rest, "*_ \t"))
	return kind, rest, true
}

func normalizeHeading(s string) string {
	s = strings.NewReplacer("*", "", "_", "", "#", "", "`", "").Replace(s)
	s = strings.TrimRight(strings.TrimSpace(s), ": \t")
	return strings.ToLower(spaceRunRe.ReplaceAllString(s, " "))
}

func stripListMarker(line string) string {
	return listMarkerRe.ReplaceAllString(line, "")
}

// normalizeList strips markdown residue, cuts oversized items at a sentence
// boundary, drops canonical duplicates and applies the field cap. A shorter
// restatement of an item already kept counts as a duplicate.
func normalizeList(items []string, max int) []string {
	out := make([]string, 0, len(items))
	seen := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(strings.NewReplacer("*", "", "`", "").Replace(it))
		if it == "" {
			continue
		}
		if runeLen(it) > listItemMaxChars {
			it = utils.CutAtSentence(it, listItemMaxChars)
		}
		canon := utils.Canonical(it)
		if canon == "" || containsCanonical(seen, canon) {
			continue
		}
		seen = append(seen, canon)
		out = append(out, it)
		if len(out) == max {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsCanonical(seen []string, canon string) bool {
	for _, s := range seen {
		if strings.Contains(s, canon) || strings.Contains(canon, s) {
			return true
		}
	}
	return false
}
