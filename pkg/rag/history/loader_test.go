// FILE: pkg/rag/history/loader_test.go
package history

import (
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/entity"

	"github.com/google/uuid"
)

func TestToMessagesReversesToChronologicalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sessionId := uuid.New()

	// Stored newest-first, the way the repository returns them.
	turns := []*entity.ChatTurn{
		{Id: uuid.New(), ChatSessionId: sessionId, Role: constant.RoleAssistant, Content: "third", CreatedAt: base.Add(2 * time.Minute)},
		{Id: uuid.New(), ChatSessionId: sessionId, Role: constant.RoleUser, Content: "second", CreatedAt: base.Add(time.Minute)},
		{Id: uuid.New(), ChatSessionId: sessionId, Role: constant.RoleUser, Content: "first", CreatedAt: base},
	}

	messages := ToMessages(turns)

	if len(messages) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(messages))
	}
	wantContent := []string{"first", "second", "third"}
	wantRole := []string{constant.RoleUser, constant.RoleUser, constant.RoleAssistant}
	for i := range messages {
		if messages[i].Content != wantContent[i] {
			t.Errorf("messages[%d].Content = %q, want %q", i, messages[i].Content, wantContent[i])
		}
		if messages[i].Role != wantRole[i] {
			t.Errorf("messages[%d].Role = %q, want %q", i, messages[i].Role, wantRole[i])
		}
	}
}

func TestToMessagesEmpty(t *testing.T) {
	if got := ToMessages(nil); len(got) != 0 {
		t.Errorf("ToMessages(nil) = %v, want empty", got)
	}
}
