package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

var ErrEmptyCorpus = errors.New("empty corpus")

// EmptyCorpusError indicates the corpus root contained no reference
// documents. An index built from zero documents is meaningless, so this is
// fatal at startup.
type EmptyCorpusError struct {
	Root string
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("no reference documents found in %s", e.Root)
}

func (e *EmptyCorpusError) Unwrap() error {
	return ErrEmptyCorpus
}

func NewEmptyCorpusError(root string) error {
	return &EmptyCorpusError{Root: root}
}

var ErrEmbeddingModel = errors.New("embedding model failure")

type EmbeddingModelError struct {
	Message       string
	OriginalError error
}

func (e *EmbeddingModelError) Error() string {
	return fmt.Sprintf(
		"embedding model error: %s (original error: %v)",
		e.Message,
		e.OriginalError,
	)
}

func (e *EmbeddingModelError) Unwrap() error {
	return ErrEmbeddingModel
}

func NewEmbeddingModelError(message string, originalError error) *EmbeddingModelError {
	return &EmbeddingModelError{Message: message, OriginalError: originalError}
}

var ErrIndexCorrupt = errors.New("index corrupt or stale")

// IndexCorruptError indicates a persisted index could not be restored,
// either because the stored format is unreadable or because it was built
// with a different embedding model than is currently configured. Callers
// must fall back to a rebuild rather than propagate this.
type IndexCorruptError struct {
	Message       string
	OriginalError error
}

func (e *IndexCorruptError) Error() string {
	return fmt.Sprintf(
		"index corrupt: %s (original error: %v)",
		e.Message,
		e.OriginalError,
	)
}

func (e *IndexCorruptError) Unwrap() error {
	return ErrIndexCorrupt
}

func NewIndexCorruptError(message string, originalError error) *IndexCorruptError {
	return &IndexCorruptError{Message: message, OriginalError: originalError}
}

var ErrDimensionMismatch = errors.New("embedding width mismatch")

// DimensionMismatchError indicates a query vector's width disagrees with the
// index. This signals embedding model drift between build and query time.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf(
		"embedding width mismatch: index has %d dimensions, query vector has %d. "+
			"please ensure the configured embedding model matches the one the "+
			"index was built with",
		e.Expected,
		e.Got,
	)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}

func NewDimensionMismatchError(expected, got int) *DimensionMismatchError {
	return &DimensionMismatchError{Expected: expected, Got: got}
}

var ErrSchemaParse = errors.New("schema parse failure")

type SchemaParseError struct {
	Path          string
	OriginalError error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf(
		"unable to parse schema %s (original error: %v)",
		e.Path,
		e.OriginalError,
	)
}

func (e *SchemaParseError) Unwrap() error {
	return ErrSchemaParse
}

func NewSchemaParseError(path string, originalError error) *SchemaParseError {
	return &SchemaParseError{Path: path, OriginalError: originalError}
}

var ErrRetrieval = errors.New("retrieval failure")

type RetrievalError struct {
	Message       string
	OriginalError error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf(
		"retrieval error: %s (original error: %v)",
		e.Message,
		e.OriginalError,
	)
}

func (e *RetrievalError) Unwrap() error {
	return ErrRetrieval
}

func NewRetrievalError(message string, originalError error) *RetrievalError {
	return &RetrievalError{Message: message, OriginalError: originalError}
}

var ErrGeneration = errors.New("generation backend failure")

type GenerationError struct {
	Message       string
	OriginalError error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf(
		"generation error: %s (original error: %v)",
		e.Message,
		e.OriginalError,
	)
}

func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}

func NewGenerationError(message string, originalError error) *GenerationError {
	return &GenerationError{Message: message, OriginalError: originalError}
}
