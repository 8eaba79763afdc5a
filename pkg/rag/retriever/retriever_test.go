package retriever

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/rag/corpus"
	"github.com/Prajankrish/Lex-AI/pkg/rag/index"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

type passageFixture struct {
	sourceTitle  string
	sectionLabel string
	text         string
	vector       []float32
}

func fixtureHolder(t *testing.T, fixtures []passageFixture) (*corpus.Holder, []uuid.UUID) {
	t.Helper()
	snapshotId := uuid.New()
	ids := make([]uuid.UUID, len(fixtures))
	entries := make([]index.Entry, len(fixtures))
	catalog := make(map[uuid.UUID]corpus.CatalogEntry, len(fixtures))
	for i, f := range fixtures {
		ids[i] = uuid.New()
		entries[i] = index.Entry{
			Id:     ids[i],
			Vector: f.vector,
			Meta: index.PassageMeta{
				SourceTitle:  f.sourceTitle,
				SectionLabel: f.sectionLabel,
				Seq:          i,
			},
		}
		catalog[ids[i]] = corpus.CatalogEntry{
			SourceTitle:  f.sourceTitle,
			SectionLabel: f.sectionLabel,
			Text:         f.text,
			Seq:          i,
		}
	}
	idx, err := index.NewSnapshot(snapshotId, "test", entries)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	holder := corpus.NewHolder()
	holder.Swap(corpus.NewView(idx, snapshotId, "test", time.Now(), catalog))
	return holder, ids
}

func TestRetrieveRanksAndResolvesText(t *testing.T) {
	holder, ids := fixtureHolder(t, []passageFixture{
		{"IPC", "Section 300", "definition of murder", []float32{0.9, 0.1, 0}},
		{"IPC", "Section 302", "punishment for murder", []float32{1, 0, 0}},
		{"CrPC", "Section 154", "FIR procedure", []float32{0, 1, 0}},
	})
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, holder, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "punishment for murder", Options{TopK: 2, MinScore: 0.35, Oversample: 3})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].PassageId != ids[1] {
		t.Errorf("top passage = %v, want Section 302", got[0].PassageId)
	}
	if got[0].Text != "punishment for murder" {
		t.Errorf("top text = %q, want resolved catalog text", got[0].Text)
	}
	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Errorf("ranks = %d,%d, want 1,2", got[0].Rank, got[1].Rank)
	}
	if got[0].Score < got[1].Score {
		t.Errorf("scores out of order: %f < %f", got[0].Score, got[1].Score)
	}
}

func TestRetrieveDropsBelowMinScore(t *testing.T) {
	holder, _ := fixtureHolder(t, []passageFixture{
		{"IPC", "Section 302", "murder", []float32{1, 0, 0}},
		{"IPC", "Section 420", "cheating", []float32{0, 1, 0}}, // orthogonal, score ~0
	})
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, holder, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "murder", Options{TopK: 5, MinScore: 0.35, Oversample: 3})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (orthogonal passage filtered)", len(got))
	}
	if got[0].SectionLabel != "Section 302" {
		t.Errorf("kept %q, want Section 302", got[0].SectionLabel)
	}
}

// Two chunks of the same section: the better-scoring one represents it and
// the other must not consume a result slot.
func TestRetrieveDeduplicatesBySection(t *testing.T) {
	holder, ids := fixtureHolder(t, []passageFixture{
		{"IPC", "Section 302", "chunk one", []float32{1, 0, 0}},
		{"IPC", "Section 302", "chunk two", []float32{0.95, 0.05, 0}},
		{"IPC", "Section 304", "culpable homicide", []float32{0.8, 0.2, 0}},
	})
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, holder, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "murder", Options{TopK: 2, MinScore: 0.35, Oversample: 3})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].PassageId != ids[0] {
		t.Errorf("slot 1 = %v, want best chunk of Section 302", got[0].PassageId)
	}
	if got[1].SectionLabel != "Section 304" {
		t.Errorf("slot 2 = %q, want Section 304 (not the duplicate chunk)", got[1].SectionLabel)
	}
}

// Unlabeled passages must never collapse with each other.
func TestRetrieveKeepsUnlabeledPassagesApart(t *testing.T) {
	holder, _ := fixtureHolder(t, []passageFixture{
		{"Constitution", "", "preamble text", []float32{1, 0, 0}},
		{"Constitution", "", "schedule text", []float32{0.9, 0.1, 0}},
	})
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, holder, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "preamble", Options{TopK: 5, MinScore: 0.35, Oversample: 3})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 distinct unlabeled passages", len(got))
	}
}

func TestRetrieveEmptyResultIsNotError(t *testing.T) {
	holder, _ := fixtureHolder(t, []passageFixture{
		{"IPC", "Section 302", "murder", []float32{0, 1, 0}},
	})
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, holder, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "cricket rules", Options{TopK: 5, MinScore: 0.35, Oversample: 3})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRetrieveIndexNotReady(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{vector: []float32{1, 0, 0}}, corpus.NewHolder(), logger.NewNopLogger())

	_, err := r.Retrieve(context.Background(), "murder", DefaultOptions())
	var notReady *dto.IndexNotReadyError
	if !errors.As(err, &notReady) {
		t.Errorf("err = %v, want *dto.IndexNotReadyError", err)
	}
}

func TestRetrievePropagatesEmbeddingError(t *testing.T) {
	holder, _ := fixtureHolder(t, []passageFixture{
		{"IPC", "Section 302", "murder", []float32{1, 0, 0}},
	})
	r := NewRetriever(&fakeEmbedder{err: &dto.EmbeddingError{Reason: "empty input"}}, holder, logger.NewNopLogger())

	_, err := r.Retrieve(context.Background(), "", DefaultOptions())
	var embErr *dto.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Errorf("err = %v, want wrapped *dto.EmbeddingError", err)
	}
}
