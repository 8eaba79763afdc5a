package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/llm"
	"github.com/Prajankrish/Lex-AI/pkg/utils"
)

const (
	contextHeader  = "LEGAL CONTEXT:\n"
	historyHeader  = "CONVERSATION SO FAR:\n"
	questionHeader = "QUESTION:\n"
	answerCue      = "\nANSWER:"
)

// Input is everything one prompt is assembled from.
type Input struct {
	Query    string
	Passages []entity.RetrievedPassage
	History  []llm.Message
}

// Prompt is the assembled text plus its budget accounting, logged with every
// generation attempt.
type Prompt struct {
	Text         string
	Used         int // runes
	Budget       int
	PassageCount int
	HistoryTurns int
}

// Assembler packs system instructions, retrieved passages and recent history
// into one prompt that never exceeds the configured rune budget. Precedence
// when space runs out: instructions and query always, then passages in rank
// order, then history.
type Assembler struct {
	budget      int
	passageTrim int
	logger      logger.ILogger
}

func NewAssembler(budget, passageTrim int, logger logger.ILogger) *Assembler {
	return &Assembler{
		budget:      budget,
		passageTrim: passageTrim,
		logger:      logger,
	}
}

// Assemble builds the prompt. It fails only with dto.BudgetExceededError,
// when the budget cannot even cover instructions plus the query; that is a
// deployment misconfiguration, not a runtime condition.
func (a *Assembler) Assemble(input Input) (*Prompt, error) {
	systemBlock := constant.LegalSystemPromptV1 + "\n\n"
	queryBlock := questionHeader + input.Query + "\n" + answerCue

	fixed := runeLen(systemBlock) + runeLen(contextHeader) + runeLen(queryBlock)

	markerBlock := ""
	if len(input.Passages) == 0 {
		// The model is told outright that retrieval came up empty; an empty
		// context block would invite hallucinated sections.
		markerBlock = constant.NoGroundingMarkerV1 + "\n\n"
		fixed += runeLen(markerBlock)
	}

	if fixed > a.budget {
		return nil, &dto.BudgetExceededError{Budget: a.budget, Required: fixed}
	}
	remaining := a.budget - fixed

	passageBlocks, remaining := a.selectPassages(input.Passages, remaining)
	historySection, keptTurns := a.selectHistory(input.History, remaining)

	var b strings.Builder
	b.WriteString(systemBlock)
	b.WriteString(contextHeader)
	if markerBlock != "" {
		b.WriteString(markerBlock)
	}
	for _, block := range passageBlocks {
		b.WriteString(block)
	}
	b.WriteString(historySection)
	b.WriteString(queryBlock)

	text := b.String()
	p := &Prompt{
		Text:         text,
		Used:         runeLen(text),
		Budget:       a.budget,
		PassageCount: len(passageBlocks),
		HistoryTurns: keptTurns,
	}

	a.logger.Debug("prompt", "prompt assembled", map[string]interface{}{
		"used":      p.Used,
		"budget":    p.Budget,
		"passages":  p.PassageCount,
		"turns":     p.HistoryTurns,
		"grounded":  markerBlock == "",
		"query_len": runeLen(input.Query),
	})

	return p, nil
}

// selectPassages walks passages in rank order. A passage that does not fit
// the leftover budget is skipped whole, never truncated mid-sentence; the
// scan continues so a shorter lower-ranked passage can still make it in.
func (a *Assembler) selectPassages(passages []entity.RetrievedPassage, remaining int) ([]string, int) {
	var blocks []string
	for _, p := range passages {
		block := formatPassage(p, a.passageTrim)
		n := runeLen(block)
		if n > remaining {
			a.logger.Debug("prompt", "passage skipped, over budget", map[string]interface{}{
				"rank":      p.Rank,
				"needed":    n,
				"remaining": remaining,
			})
			continue
		}
		blocks = append(blocks, block)
		remaining -= n
	}
	return blocks, remaining
}

// selectHistory gives leftover budget to the newest turns first and stops at
// the first turn that does not fit: history stays contiguous, a gap in the
// middle of a conversation confuses the model more than a shorter one.
// Selected turns are re-emitted in chronological order.
func (a *Assembler) selectHistory(history []llm.Message, remaining int) (string, int) {
	kept := 0
	for i := len(history) - 1; i >= 0; i-- {
		cost := runeLen(formatTurn(history[i], a.passageTrim))
		if kept == 0 {
			cost += runeLen(historyHeader) + 1 // closing newline of the section
		}
		if cost > remaining {
			break
		}
		remaining -= cost
		kept++
	}
	if kept == 0 {
		return "", 0
	}

	var b strings.Builder
	b.WriteString(historyHeader)
	for _, m := range history[len(history)-kept:] {
		b.WriteString(formatTurn(m, a.passageTrim))
	}
	b.WriteString("\n")
	return b.String(), kept
}

func formatPassage(p entity.RetrievedPassage, trim int) string {
	heading := p.SourceTitle
	if p.SectionLabel != "" {
		heading = p.SourceTitle + ", " + p.SectionLabel
	}
	return fmt.Sprintf("[%d] %s:\n%s\n\n", p.Rank, heading, utils.CutAtSentence(p.Text, trim))
}

func formatTurn(m llm.Message, trim int) string {
	label := "User"
	if m.Role == constant.RoleAssistant || m.Role == "model" {
		label = "Assistant"
	}
	return label + ": " + utils.CutAtSentence(m.Content, trim) + "\n"
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
