// FILE: pkg/rag/answer/compose_test.go
package answer

import (
	"strings"
	"testing"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func fullAnswer() *entity.StructuredAnswer {
	return &entity.StructuredAnswer{
		ShortAnswer: "Theft is defined in Section 378 and punished under Section 379.",
		Sections:    []string{"Section 378 (Indian Penal Code)", "Section 379 (Indian Penal Code)"},
		Penalties:   []string{"Imprisonment up to three years, or fine, or both."},
		KeyPoints:   []string{"The taking must be dishonest.", "The property must be movable."},
		Examples:    []string{"A takes a ring out of Z's possession without consent. A commits theft."},
		Detailed:    strPtr("Section 378 lists five explanations and sixteen illustrations that bound the offence."),
	}
}

func TestComposeOrdersCanonicalHeadings(t *testing.T) {
	md := Compose(fullAnswer())

	headings := []string{
		"**Summary**",
		"**Relevant IPC Sections:**",
		"**Punishments / Penalties:**",
		"**Key Legal Points:**",
		"**Examples:**",
		"**Detailed Explanation:**",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(md, h)
		if idx < 0 {
			t.Fatalf("markdown missing heading %q:\n%s", h, md)
		}
		if idx < last {
			t.Errorf("heading %q out of order", h)
		}
		last = idx
	}
	if !strings.Contains(md, "1. The taking must be dishonest.") ||
		!strings.Contains(md, "2. The property must be movable.") {
		t.Errorf("key points not numbered:\n%s", md)
	}
	if !strings.Contains(md, "- Section 378 (Indian Penal Code)") {
		t.Errorf("sections not bulleted:\n%s", md)
	}
}

func TestComposeOmitsEmptyFields(t *testing.T) {
	md := Compose(&entity.StructuredAnswer{ShortAnswer: "Bail is the rule, jail the exception."})

	if !strings.HasPrefix(md, "**Summary**\nBail is the rule") {
		t.Errorf("markdown = %q, want summary only", md)
	}
	for _, h := range []string{"Relevant IPC Sections", "Punishments", "Key Legal Points", "Examples", "Detailed"} {
		if strings.Contains(md, h) {
			t.Errorf("markdown contains %q for an empty field:\n%s", h, md)
		}
	}
}

func TestComposeParseRoundTrip(t *testing.T) {
	original := fullAnswer()
	md := Compose(original)

	parsed, err := Parse(md)
	if err != nil {
		t.Fatalf("Parse(Compose()) error = %v", err)
	}
	if parsed.ShortAnswer != original.ShortAnswer {
		t.Errorf("ShortAnswer = %q, want %q", parsed.ShortAnswer, original.ShortAnswer)
	}
	if len(parsed.Sections) != len(original.Sections) {
		t.Errorf("Sections = %v, want %v", parsed.Sections, original.Sections)
	}
	if len(parsed.KeyPoints) != len(original.KeyPoints) {
		t.Errorf("KeyPoints = %v, want %v", parsed.KeyPoints, original.KeyPoints)
	}
	if parsed.Detailed == nil || !strings.Contains(*parsed.Detailed, "five explanations") {
		t.Errorf("Detailed = %v, want the original body", parsed.Detailed)
	}
}

func retrievedFixture() []entity.RetrievedPassage {
	return []entity.RetrievedPassage{
		{
			PassageId:    uuid.New(),
			SourceTitle:  "Indian Penal Code",
			SectionLabel: "Section 379",
			Text:         "Whoever commits theft shall be punished with imprisonment of either description for a term which may extend to three years, or with fine, or with both.",
			Score:        0.82,
			Rank:         1,
		},
		{
			PassageId:   uuid.New(),
			SourceTitle: "Indian Penal Code",
			Text:        "Illustration: A cuts down a tree on Z's ground with the intention of dishonestly taking it. A has committed theft.",
			Score:       0.74,
			Rank:        2,
		},
	}
}

func TestFallbackIsDeterministicAndGrounded(t *testing.T) {
	passages := retrievedFixture()

	ans1, md1 := Fallback("punishment for theft", passages)
	_, md2 := Fallback("punishment for theft", passages)

	if md1 != md2 {
		t.Error("Fallback() markdown differs across identical calls")
	}
	if !strings.HasPrefix(ans1.ShortAnswer, "Whoever commits theft") {
		t.Errorf("ShortAnswer = %q, want the top passage's opening sentence", ans1.ShortAnswer)
	}
	if len(ans1.Sections) == 0 || !strings.Contains(ans1.Sections[0], "Section 379") {
		t.Errorf("Sections = %v, want the labelled passage surfaced", ans1.Sections)
	}
	if len(ans1.Penalties) == 0 {
		t.Errorf("Penalties empty, want the punishment sentence extracted")
	}
	if len(ans1.Examples) == 0 || !strings.Contains(ans1.Examples[0], "cuts down a tree") {
		t.Errorf("Examples = %v, want the illustration extracted", ans1.Examples)
	}
	if !strings.Contains(md1, "**Summary**") {
		t.Errorf("markdown missing summary heading:\n%s", md1)
	}
}

func TestFallbackWithoutPassages(t *testing.T) {
	ans, md := Fallback("some question", nil)
	if ans.ShortAnswer == "" || md == "" {
		t.Fatal("Fallback() with no passages returned an empty reply")
	}
	if !strings.Contains(ans.ShortAnswer, "rephrase") {
		t.Errorf("ShortAnswer = %q, want a retry suggestion", ans.ShortAnswer)
	}
}

func TestEnrichDoesNotOverrideParsedFields(t *testing.T) {
	ans := &entity.StructuredAnswer{
		ShortAnswer: "Theft is punished under Section 379.",
		Sections:    []string{"Section 378"},
	}
	EnrichFromPassages(ans, retrievedFixture())

	if len(ans.Sections) != 1 || ans.Sections[0] != "Section 378" {
		t.Errorf("Sections = %v, want the parsed value untouched", ans.Sections)
	}
	if len(ans.Penalties) == 0 {
		t.Error("Penalties not backfilled from passages")
	}
	if ans.Tldr == nil {
		t.Error("Tldr not derived from the short answer")
	}
}

func TestEnrichWithoutPassagesOnlyDerivesTldr(t *testing.T) {
	ans := &entity.StructuredAnswer{ShortAnswer: "First sentence. Second sentence."}
	EnrichFromPassages(ans, nil)

	if len(ans.Sections) != 0 || len(ans.Penalties) != 0 {
		t.Errorf("lists backfilled without passages: %+v", ans)
	}
	if ans.Tldr == nil || *ans.Tldr != "First sentence." {
		t.Errorf("Tldr = %v, want the first sentence", ans.Tldr)
	}
}
