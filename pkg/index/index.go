// Package index implements an in-memory vector index over the reference
// corpus, with optional single-file persistence. The index is read-only once
// constructed and safe for concurrent queries. Rebuilding requires
// constructing a new Index and swapping the reference; the live structure is
// never mutated.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"

	"github.com/viterin/vek/vek32"
)

var log = internal.GetLogger()

var _ models.Retriever = &Index{}

type Index struct {
	docs     []models.Document
	vectors  [][]float32
	model    models.EmbeddingModel
	embedder models.EmbeddingsClient
}

// Build computes one embedding per document and constructs a new index.
// Deterministic for a fixed embedding model and document set.
func Build(
	ctx context.Context,
	docs []models.Document,
	embedder models.EmbeddingsClient,
) (*Index, error) {
	if len(docs) == 0 {
		return nil, models.NewEmptyCorpusError("document set")
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, models.NewEmbeddingModelError("unable to embed corpus", err)
	}
	if len(vectors) != len(docs) {
		return nil, models.NewEmbeddingModelError(
			fmt.Sprintf("embedder returned %d vectors for %d documents", len(vectors), len(docs)),
			nil,
		)
	}

	width := len(vectors[0])
	for _, v := range vectors {
		if len(v) != width {
			return nil, models.NewDimensionMismatchError(width, len(v))
		}
	}

	model := embedder.Model()
	model.Dimensions = width

	return &Index{
		docs:     docs,
		vectors:  vectors,
		model:    model,
		embedder: embedder,
	}, nil
}

// persistedIndex is the on-disk representation. The embedding model identity
// is stored alongside the vectors so a stale index is detected on load.
type persistedIndex struct {
	Model     models.EmbeddingModel `json:"model"`
	Documents []models.Document     `json:"documents"`
	Vectors   [][]float32           `json:"vectors"`
}

// Load restores a persisted index from path. Any unreadable or inconsistent
// store, including a model identity mismatch, returns IndexCorruptError.
// Callers are expected to fall back to Build.
func Load(path string, embedder models.EmbeddingsClient) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewIndexCorruptError("unable to read index file", err)
	}

	var stored persistedIndex
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, models.NewIndexCorruptError("unable to decode index file", err)
	}

	if stored.Model.Name != embedder.Model().Name {
		return nil, models.NewIndexCorruptError(
			fmt.Sprintf(
				"index was built with embedding model %q but %q is configured",
				stored.Model.Name,
				embedder.Model().Name,
			),
			nil,
		)
	}

	if len(stored.Documents) == 0 || len(stored.Documents) != len(stored.Vectors) {
		return nil, models.NewIndexCorruptError(
			fmt.Sprintf(
				"stored %d documents but %d vectors",
				len(stored.Documents),
				len(stored.Vectors),
			),
			nil,
		)
	}

	width := stored.Model.Dimensions
	for _, v := range stored.Vectors {
		if len(v) != width {
			return nil, models.NewIndexCorruptError("stored vector width is inconsistent", nil)
		}
	}

	return &Index{
		docs:     stored.Documents,
		vectors:  stored.Vectors,
		model:    stored.Model,
		embedder: embedder,
	}, nil
}

// Save persists the index to path, creating parent directories as needed.
// An existing store is overwritten.
func (idx *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create index directory: %w", err)
	}

	data, err := json.Marshal(persistedIndex{
		Model:     idx.model,
		Documents: idx.docs,
		Vectors:   idx.vectors,
	})
	if err != nil {
		return fmt.Errorf("unable to encode index: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write index file: %w", err)
	}

	return nil
}

// Query embeds text with the index's embedding model and returns the k
// documents with the highest cosine similarity, in non-increasing score
// order. Ties keep first-seen document order.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]models.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	vectors, err := idx.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, models.NewEmbeddingModelError("unable to embed query", err)
	}
	query := vectors[0]

	if len(query) != idx.model.Dimensions {
		return nil, models.NewDimensionMismatchError(idx.model.Dimensions, len(query))
	}

	results := make([]models.SearchResult, len(idx.docs))
	for i, v := range idx.vectors {
		score := vek32.CosineSimilarity(query, v)
		if math.IsNaN(float64(score)) || math.IsInf(float64(score), 0) {
			score = 0.0
		}
		results[i] = models.SearchResult{Document: idx.docs[i], Score: score}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}

	return results[:k], nil
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int {
	return len(idx.docs)
}

// Model returns the embedding model identity the index was built with.
func (idx *Index) Model() models.EmbeddingModel {
	return idx.model
}

// NewIndex restores the index from the configured store path when possible,
// falling back to a fresh build when the store is missing, unreadable, or was
// built with a different embedding model. A rebuilt index is persisted
// best-effort, overwriting any stale store.
func NewIndex(
	ctx context.Context,
	cfg *config.Config,
	docs []models.Document,
	embedder models.EmbeddingsClient,
) (*Index, error) {
	storePath := cfg.Index.StorePath

	if storePath != "" {
		idx, err := Load(storePath, embedder)
		if err == nil {
			log.Infof("restored vector index from %s (%d documents)", storePath, idx.Size())
			return idx, nil
		}
		log.Warnf("unable to restore vector index, rebuilding: %v", err)
	}

	idx, err := Build(ctx, docs, embedder)
	if err != nil {
		return nil, err
	}

	if storePath != "" {
		if err := idx.Save(storePath); err != nil {
			log.Warnf("unable to persist vector index: %v", err)
		}
	}

	log.Infof("built vector index over %d documents", idx.Size())

	return idx, nil
}
