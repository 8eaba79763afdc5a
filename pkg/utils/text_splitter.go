package utils

import "unicode"

// SplitText splits a long string into chunks of at most chunkSize runes, with
// overlap runes of trailing context repeated at the start of the next chunk.
// Cuts prefer a sentence terminator in the last fifth of the window, then any
// whitespace, and fall back to a hard cut so unbroken text still splits.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{text}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := boundaryBefore(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			// Overlap larger than the chunk just cut would stall progress.
			next = cut
		}
		start = next
	}
	return chunks
}

// boundaryBefore picks the cut for a window ending at end: the last sentence
// terminator in the final fifth of the window, else the last whitespace rune,
// else end itself.
func boundaryBefore(runes []rune, start, end int) int {
	floor := end - (end-start)/5
	for i := end - 1; i >= floor; i-- {
		if sentenceTerminators[runes[i]] {
			return i + 1
		}
	}
	for i := end - 1; i > start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}
