package corpus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/pkg/rag/index"

	"github.com/google/uuid"
)

func testView(t *testing.T, label string, vectors [][]float32) *View {
	t.Helper()
	snapshotId := uuid.New()
	entries := make([]index.Entry, len(vectors))
	catalog := make(map[uuid.UUID]CatalogEntry, len(vectors))
	for i, v := range vectors {
		id := uuid.New()
		entries[i] = index.Entry{Id: id, Vector: v, Meta: index.PassageMeta{Seq: i}}
		catalog[id] = CatalogEntry{SourceTitle: "IPC", Text: "text", Seq: i}
	}
	idx, err := index.NewSnapshot(snapshotId, label, entries)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return NewView(idx, snapshotId, label, time.Now(), catalog)
}

func TestHolderNotReady(t *testing.T) {
	h := NewHolder()

	if h.Ready() {
		t.Error("Ready() = true on empty holder")
	}
	_, err := h.Current()
	if err == nil {
		t.Fatal("Current() on empty holder: want error, got nil")
	}
	var notReady *dto.IndexNotReadyError
	if !errors.As(err, &notReady) {
		t.Errorf("Current() error = %T, want *dto.IndexNotReadyError", err)
	}
}

func TestHolderSwapPublishes(t *testing.T) {
	h := NewHolder()
	v1 := testView(t, "v1", [][]float32{{1, 0}})
	v2 := testView(t, "v2", [][]float32{{0, 1}, {1, 1}})

	h.Swap(v1)
	got, err := h.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Label() != "v1" {
		t.Errorf("label = %q, want v1", got.Label())
	}

	h.Swap(v2)
	got, _ = h.Current()
	if got.Label() != "v2" || got.PassageCount() != 2 {
		t.Errorf("after swap: label %q count %d, want v2/2", got.Label(), got.PassageCount())
	}
}

// Readers racing a swap must always see a complete view, old or new.
func TestHolderConcurrentSwapAndSearch(t *testing.T) {
	h := NewHolder()
	h.Swap(testView(t, "gen-0", [][]float32{{1, 0}, {0, 1}}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				view, err := h.Current()
				if err != nil {
					t.Errorf("Current: %v", err)
					return
				}
				hits, err := view.Index.Search([]float32{1, 0}, 2)
				if err != nil {
					t.Errorf("Search: %v", err)
					return
				}
				for _, hit := range hits {
					if _, ok := view.Resolve(hit.PassageId); !ok {
						t.Errorf("hit %s not resolvable in its own view", hit.PassageId)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		h.Swap(testView(t, "gen-n", [][]float32{{1, 0}, {0, 1}, {1, 1}}))
	}
	close(stop)
	wg.Wait()
}

func TestViewResolveMiss(t *testing.T) {
	v := testView(t, "v1", [][]float32{{1, 0}})
	if _, ok := v.Resolve(uuid.New()); ok {
		t.Error("Resolve of unknown id = ok, want miss")
	}
}
