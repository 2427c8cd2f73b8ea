// Package schemavalidate loads the promptfoo config JSON Schema and checks
// generated YAML documents against it.
package schemavalidate

import (
	"fmt"
	"os"

	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

var log = internal.GetLogger()

var _ models.SchemaValidator = &Schema{}

// Schema is the compiled structural contract for generated configs. Loaded
// once at startup and immutable for the process lifetime.
type Schema struct {
	schema *gojsonschema.Schema
	raw    string
}

// Load probes the given paths in order and compiles the first readable
// schema file. Returns NotFoundError when no path exists and
// SchemaParseError when the schema itself is malformed; both are fatal at
// startup.
func Load(paths ...string) (*Schema, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, models.NewSchemaParseError(path, err)
		}

		log.Infof("loaded config schema from %s", path)

		return &Schema{schema: schema, raw: string(data)}, nil
	}

	return nil, models.NewNotFoundError(
		fmt.Sprintf("config schema (probed %v)", paths),
	)
}

// Raw returns the schema source text. Used for prompt assembly.
func (s *Schema) Raw() string {
	return s.raw
}

// ValidateYAML parses doc as YAML and validates it against the schema.
// Validation failures never surface as errors: an unparseable document
// yields a single diagnostic at field "yaml", and schema violations yield
// one diagnostic per violation in reported order.
func (s *Schema) ValidateYAML(doc string) (bool, []models.Diagnostic) {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		return false, []models.Diagnostic{
			{Field: "yaml", Message: fmt.Sprintf("invalid YAML: %v", err)},
		}
	}

	if parsed == nil {
		return false, []models.Diagnostic{
			{Field: "yaml", Message: "document is empty"},
		}
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(parsed))
	if err != nil {
		return false, []models.Diagnostic{
			{Field: "yaml", Message: fmt.Sprintf("unable to validate document: %v", err)},
		}
	}

	if result.Valid() {
		return true, nil
	}

	diagnostics := make([]models.Diagnostic, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		diagnostics = append(diagnostics, models.Diagnostic{
			Field:   resultError.Field(),
			Message: resultError.Description(),
		})
	}

	return false, diagnostics
}
