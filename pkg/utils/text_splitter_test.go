package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	text := "short passage"
	got := SplitText(text, 100, 20)
	if len(got) != 1 || got[0] != text {
		t.Errorf("SplitText() = %v, want the input as a single chunk", got)
	}
}

func TestSplitTextChunkSizeRespected(t *testing.T) {
	text := strings.Repeat("The court held that the appeal must fail. ", 80)
	chunks := SplitText(text, 500, 100)

	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 500 {
			t.Errorf("chunk %d has %d runes, want <= 500", i, n)
		}
	}
}

func TestSplitTextPrefersSentenceBoundaries(t *testing.T) {
	text := strings.Repeat("A complete legal sentence ends here. ", 60)
	chunks := SplitText(text, 500, 100)

	for i, c := range chunks[:len(chunks)-1] {
		trimmed := strings.TrimRight(c, " ")
		if !strings.HasSuffix(trimmed, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, trimmed[len(trimmed)-20:])
		}
	}
}

func TestSplitTextOverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("Clause text continues without pause. ", 60)
	chunks := SplitText(text, 400, 100)

	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want several", len(chunks))
	}
	// The head of each later chunk must reappear at the tail of its
	// predecessor.
	for i := 1; i < len(chunks); i++ {
		head := string([]rune(chunks[i])[:50])
		if !strings.Contains(chunks[i-1], head) {
			t.Errorf("chunk %d head not found in chunk %d tail", i, i-1)
		}
	}
}

func TestSplitTextUnbrokenRunStillSplits(t *testing.T) {
	text := strings.Repeat("x", 3000)
	chunks := SplitText(text, 1000, 0)

	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3 hard cuts", len(chunks))
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Error("hard-cut chunks do not reassemble the input")
	}
}

func TestSplitTextDegenerateOverlapTerminates(t *testing.T) {
	text := strings.Repeat("word ", 400)
	chunks := SplitText(text, 100, 100) // overlap == chunkSize is ignored

	if len(chunks) == 0 {
		t.Fatal("SplitText() returned no chunks")
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 100 {
			t.Errorf("chunk %d has %d runes, want <= 100", i, n)
		}
	}
}
