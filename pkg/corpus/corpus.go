// Package corpus loads reference config documents from a directory tree.
package corpus

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"
)

var log = internal.GetLogger()

const DefaultPattern = "promptfooconfig*.y*ml"

// LoadDocuments walks root recursively and loads every file whose base name
// matches pattern as a reference document. The walk is lexical, so document
// order is deterministic for a fixed tree. Returns NotFoundError if root
// does not exist and EmptyCorpusError if no files match.
func LoadDocuments(root string, pattern string) ([]models.Document, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if _, err := os.Stat(root); err != nil {
		return nil, models.NewNotFoundError("corpus directory " + root)
	}

	var documents []models.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		documents = append(documents, models.Document{
			Content: string(content),
			Source:  path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(documents) == 0 {
		return nil, models.NewEmptyCorpusError(root)
	}

	log.Infof("loaded %d reference documents from %s", len(documents), root)

	return documents, nil
}
