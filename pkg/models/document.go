package models

// Document is a single reference configuration loaded from the corpus.
// Documents are immutable once loaded.
type Document struct {
	// Content is the raw text of the reference config.
	Content string `json:"content"`
	// Source identifies where the document was loaded from, typically a
	// file path relative to the corpus root.
	Source string `json:"source"`
}

// SearchResult is a single similarity search hit.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float32  `json:"score"`
}

// EmbeddingModel identifies the model an index's vectors were produced with.
// A persisted index is tagged with this identity; an index built with one
// model must never be queried with vectors from another.
type EmbeddingModel struct {
	Name       string `json:"name"`
	Dimensions int    `json:"dimensions"`
}
