package corpus

import (
	"sync/atomic"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/pkg/rag/index"

	"github.com/google/uuid"
)

// CatalogEntry is the displayable side of an indexed passage. The vector
// index keeps only ids and vectors; answer assembly resolves text here.
type CatalogEntry struct {
	SourceTitle  string
	SectionLabel string
	Text         string
	Seq          int
}

// View is one published corpus generation: the searchable index and the text
// catalog built from the same snapshot read. It is immutable; a reload
// produces a whole new View.
type View struct {
	Index *index.Snapshot

	snapshotId  uuid.UUID
	label       string
	publishedAt time.Time
	entries     map[uuid.UUID]CatalogEntry
}

func NewView(idx *index.Snapshot, snapshotId uuid.UUID, label string, publishedAt time.Time, entries map[uuid.UUID]CatalogEntry) *View {
	return &View{
		Index:       idx,
		snapshotId:  snapshotId,
		label:       label,
		publishedAt: publishedAt,
		entries:     entries,
	}
}

func (v *View) SnapshotId() uuid.UUID  { return v.snapshotId }
func (v *View) Label() string          { return v.label }
func (v *View) PublishedAt() time.Time { return v.publishedAt }
func (v *View) PassageCount() int      { return len(v.entries) }

// Resolve returns the catalog entry for a passage id. A miss means the hit
// came from a different generation than this view, which cannot happen for
// hits produced by v.Index.
func (v *View) Resolve(id uuid.UUID) (CatalogEntry, bool) {
	e, ok := v.entries[id]
	return e, ok
}

// Holder publishes the current View with a single atomic pointer. Readers
// always see a complete generation: in-flight requests keep working on the
// view they grabbed while a reload swaps in the next one.
type Holder struct {
	ptr atomic.Pointer[View]
}

func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active view, or dto.IndexNotReadyError when no
// published corpus has been loaded yet.
func (h *Holder) Current() (*View, error) {
	v := h.ptr.Load()
	if v == nil {
		return nil, &dto.IndexNotReadyError{}
	}
	return v, nil
}

func (h *Holder) Ready() bool {
	return h.ptr.Load() != nil
}

func (h *Holder) Swap(next *View) {
	h.ptr.Store(next)
}
