package index

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MaxTopK bounds how many hits a single search may return.
const MaxTopK = 50

// PassageMeta is the searchable metadata carried next to each vector. The
// snapshot never holds passage text; display text resolves through the
// corpus catalog.
type PassageMeta struct {
	SourceTitle  string
	SectionLabel string
	Seq          int
}

// Entry is one passage handed to NewSnapshot.
type Entry struct {
	Id     uuid.UUID
	Vector []float32
	Meta   PassageMeta
}

// Hit is one search result, scored by cosine similarity.
type Hit struct {
	PassageId uuid.UUID
	Score     float32
	Meta      PassageMeta
}

// Snapshot is an immutable in-memory vector index over one published corpus
// build. It is never mutated after construction; rebuilds produce a fresh
// Snapshot that replaces the old one wholesale.
type Snapshot struct {
	snapshotId uuid.UUID
	label      string
	builtAt    time.Time
	dim        int

	ids     []uuid.UUID
	vectors [][]float32
	meta    []PassageMeta
}

// NewSnapshot builds an index from entries. All vectors must share one
// dimension; each is copied and re-normalized so scoring can rely on plain
// dot products no matter where the vectors came from.
func NewSnapshot(snapshotId uuid.UUID, label string, entries []Entry) (*Snapshot, error) {
	s := &Snapshot{
		snapshotId: snapshotId,
		label:      label,
		builtAt:    time.Now(),
		ids:        make([]uuid.UUID, 0, len(entries)),
		vectors:    make([][]float32, 0, len(entries)),
		meta:       make([]PassageMeta, 0, len(entries)),
	}

	for i, e := range entries {
		if len(e.Vector) == 0 {
			return nil, fmt.Errorf("entry %d (%s): empty vector", i, e.Id)
		}
		if s.dim == 0 {
			s.dim = len(e.Vector)
		} else if len(e.Vector) != s.dim {
			return nil, fmt.Errorf("entry %d (%s): dimension %d, index has %d", i, e.Id, len(e.Vector), s.dim)
		}
		s.ids = append(s.ids, e.Id)
		s.vectors = append(s.vectors, normalize(e.Vector))
		s.meta = append(s.meta, e.Meta)
	}

	return s, nil
}

func (s *Snapshot) SnapshotId() uuid.UUID { return s.snapshotId }
func (s *Snapshot) Label() string         { return s.label }
func (s *Snapshot) BuiltAt() time.Time    { return s.builtAt }
func (s *Snapshot) Len() int              { return len(s.ids) }
func (s *Snapshot) Dim() int              { return s.dim }

// Search returns the k nearest passages by cosine similarity, best first.
// k is clamped to [1, MaxTopK]. Equal scores order by Seq, so results are
// deterministic across runs for the same snapshot and query.
func (s *Snapshot) Search(query []float32, k int) ([]Hit, error) {
	if len(s.ids) == 0 {
		return nil, nil
	}
	if len(query) != s.dim {
		return nil, fmt.Errorf("query dimension %d, index has %d", len(query), s.dim)
	}

	if k < 1 {
		k = 1
	}
	if k > MaxTopK {
		k = MaxTopK
	}

	q := normalize(query)
	hits := make([]Hit, len(s.ids))
	for i, vec := range s.vectors {
		hits[i] = Hit{
			PassageId: s.ids[i],
			Score:     dot(q, vec),
			Meta:      s.meta[i],
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Meta.Seq < hits[j].Meta.Seq
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	out := make([]float32, len(vec))
	if magnitude == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
