package retriever

import (
	"context"
	"fmt"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/rag/corpus"
	"github.com/Prajankrish/Lex-AI/pkg/rag/index"
)

// Retriever turns a user query into ranked, deduplicated passages from the
// current corpus view. Results are computed per request; nothing here is
// cached across queries.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	holder            *corpus.Holder
	logger            logger.ILogger
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, holder *corpus.Holder, logger logger.ILogger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		holder:            holder,
		logger:            logger,
	}
}

// Options encapsulates retrieval parameters
type Options struct {
	// TopK is how many passages survive into the prompt.
	TopK int
	// MinScore drops candidates below this cosine similarity.
	MinScore float64
	// Oversample widens the index search to TopK*Oversample so score
	// filtering and section dedup still leave TopK survivors.
	Oversample int
}

// DefaultOptions returns default retrieval configuration
func DefaultOptions() Options {
	return Options{
		TopK:       5,
		MinScore:   0.35,
		Oversample: 3,
	}
}

// Retrieve embeds the query and searches the in-memory index. An empty
// result is a valid answer ("the corpus does not cover this"), not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts Options) ([]entity.RetrievedPassage, error) {
	if opts.TopK <= 0 {
		opts.TopK = DefaultOptions().TopK
	}
	if opts.Oversample < 1 {
		opts.Oversample = 1
	}

	embeddingRes, err := r.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	view, err := r.holder.Current()
	if err != nil {
		return nil, err
	}

	candidateK := opts.TopK * opts.Oversample
	if candidateK > index.MaxTopK {
		candidateK = index.MaxTopK
	}

	hits, err := view.Index.Search(embeddingRes.Embedding.Values, candidateK)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	r.logger.Debug("retriever", "raw index hits", map[string]interface{}{
		"query_len":  len(query),
		"candidates": len(hits),
		"top_k":      opts.TopK,
	})

	results := r.filterAndDeduplicate(view, hits, opts)

	r.logger.Debug("retriever", "filtered passages", map[string]interface{}{
		"kept": len(results),
	})

	return results, nil
}

// filterAndDeduplicate drops low-score hits and collapses passages sharing a
// section key. Hits arrive best-first, so the first passage seen for a key
// is its best-scoring representative.
func (r *Retriever) filterAndDeduplicate(view *corpus.View, hits []index.Hit, opts Options) []entity.RetrievedPassage {
	var results []entity.RetrievedPassage
	seen := make(map[string]bool)

	for _, hit := range hits {
		if float64(hit.Score) < opts.MinScore {
			continue
		}

		key := entity.SectionKey(hit.Meta.SourceTitle, hit.Meta.SectionLabel, hit.PassageId)
		if seen[key] {
			continue
		}
		seen[key] = true

		catalogEntry, ok := view.Resolve(hit.PassageId)
		if !ok {
			// Hits come from view.Index, so every id must resolve.
			r.logger.Warn("retriever", "hit not in catalog, skipped", map[string]interface{}{
				"passage_id": hit.PassageId.String(),
			})
			continue
		}

		results = append(results, entity.RetrievedPassage{
			PassageId:    hit.PassageId,
			SourceTitle:  hit.Meta.SourceTitle,
			SectionLabel: hit.Meta.SectionLabel,
			Text:         catalogEntry.Text,
			Score:        hit.Score,
			Rank:         len(results) + 1,
		})

		if len(results) == opts.TopK {
			break
		}
	}

	return results
}
