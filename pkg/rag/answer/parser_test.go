// FILE: pkg/rag/answer/parser_test.go
package answer

import (
	"errors"
	"strings"
	"testing"

	"github.com/Prajankrish/Lex-AI/internal/dto"
)

const structuredReply = `**Summary**
Murder under Section 302 IPC is punishable with death or imprisonment for life. The provision applies when culpable homicide amounts to murder. Intention is the deciding element.

**Relevant IPC Sections:**
- Section 302 (Indian Penal Code)
- Section 300 (Indian Penal Code)

**Punishments / Penalties:**
- Death, or imprisonment for life, and also liability to fine.

**Key Legal Points:**
1. The act must be done with the intention of causing death.
2. Culpable homicide becomes murder only when the stated conditions are met.

**Examples:**
- A shoots B intending to kill him. A commits murder.

**Detailed Explanation:**
Section 302 prescribes the punishment for murder. Courts apply the rarest of rare doctrine before imposing the death penalty.`

func TestParseStructuredReply(t *testing.T) {
	ans, err := Parse(structuredReply)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	if !strings.HasPrefix(ans.ShortAnswer, "Murder under Section 302 IPC") {
		t.Errorf("ShortAnswer = %q, want the summary prose", ans.ShortAnswer)
	}
	if got, want := len(ans.Sections), 2; got != want {
		t.Fatalf("len(Sections) = %d, want %d (%v)", got, want, ans.Sections)
	}
	if ans.Sections[0] != "Section 302 (Indian Penal Code)" {
		t.Errorf("Sections[0] = %q", ans.Sections[0])
	}
	if len(ans.Penalties) != 1 || len(ans.Examples) != 1 {
		t.Errorf("Penalties = %v, Examples = %v, want one item each", ans.Penalties, ans.Examples)
	}
	if got, want := len(ans.KeyPoints), 2; got != want {
		t.Errorf("len(KeyPoints) = %d, want %d", got, want)
	}
	if strings.HasPrefix(ans.KeyPoints[0], "1.") {
		t.Errorf("KeyPoints[0] = %q, want the list marker stripped", ans.KeyPoints[0])
	}
	if ans.Detailed == nil || !strings.Contains(*ans.Detailed, "rarest of rare") {
		t.Errorf("Detailed = %v, want the explanation body", ans.Detailed)
	}
	if !HasStructure(ans) {
		t.Error("HasStructure() = false for a fully structured reply")
	}
}

func TestParseHeadingVariants(t *testing.T) {
	raw := strings.Join([]string{
		"Short Answer: Sedition was codified in Section 124A.",
		"# Penalties",
		"- Imprisonment for life, to which fine may be added.",
		"Sections Cited:",
		"* Section 124A",
		"TL;DR: Section 124A criminalised sedition.",
	}, "\n")

	ans, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if !strings.Contains(ans.ShortAnswer, "Section 124A") {
		t.Errorf("ShortAnswer = %q, want inline heading content captured", ans.ShortAnswer)
	}
	if len(ans.Penalties) != 1 {
		t.Errorf("Penalties = %v, want the '# Penalties' body", ans.Penalties)
	}
	if len(ans.Sections) != 1 || ans.Sections[0] != "Section 124A" {
		t.Errorf("Sections = %v, want [Section 124A]", ans.Sections)
	}
	if ans.Tldr == nil || !strings.Contains(*ans.Tldr, "criminalised sedition") {
		t.Errorf("Tldr = %v, want the TL;DR line", ans.Tldr)
	}
}

func TestParsePlainProse(t *testing.T) {
	raw := "The Constitution guarantees equality before law. Article 14 extends to all persons within India. That includes foreign nationals."

	ans, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if ans.ShortAnswer != raw {
		t.Errorf("ShortAnswer = %q, want the full three-sentence prose", ans.ShortAnswer)
	}
	if HasStructure(ans) {
		t.Errorf("HasStructure() = true for headingless prose: %+v", ans)
	}
}

func TestParseBlankReply(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t \n"} {
		_, err := Parse(raw)
		var target *dto.UnparseableResponseError
		if !errors.As(err, &target) {
			t.Errorf("Parse(%q) error = %v, want UnparseableResponseError", raw, err)
		}
	}
}

func TestParseIsTotalOnNoise(t *testing.T) {
	noisy := "```json\n{\"x\": 1}\n```\n???!!! random ### tokens ///"
	ans, err := Parse(noisy)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil for any non-blank input", err)
	}
	if ans.ShortAnswer == "" {
		t.Error("ShortAnswer empty, want some salvaged text")
	}
}

func TestParseCapsAndDeduplicatesLists(t *testing.T) {
	var lines []string
	lines = append(lines, "Relevant Sections:")
	lines = append(lines,
		"- Section 302",
		"- section 302.",                     // canonical duplicate
		"- Section 302 (Indian Penal Code)",  // containment duplicate
		"- Section 300",
		"- Section 299",
		"- Section 301",
		"- Section 304", // over the cap of four
	)
	ans, err := Parse(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{"Section 302", "Section 300", "Section 299", "Section 301"}
	if len(ans.Sections) != len(want) {
		t.Fatalf("Sections = %v, want %v", ans.Sections, want)
	}
	for i := range want {
		if ans.Sections[i] != want[i] {
			t.Errorf("Sections[%d] = %q, want %q", i, ans.Sections[i], want[i])
		}
	}
}

func TestParseCutsShortAnswerAtSentenceBoundary(t *testing.T) {
	long := strings.Repeat("This clause imposes a duty on the state. ", 40)
	ans, err := Parse(long)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.HasSuffix(ans.ShortAnswer, ".") {
		t.Errorf("ShortAnswer ends %q, want a sentence terminator", ans.ShortAnswer[len(ans.ShortAnswer)-10:])
	}
	if got := len([]rune(ans.ShortAnswer)); got > shortAnswerMaxChars {
		t.Errorf("len(ShortAnswer) = %d runes, want <= %d", got, shortAnswerMaxChars)
	}
}
