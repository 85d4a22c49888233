package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed meta_schema.json
var metaSchemaJSON []byte

// MetaValidationError reports why a master schema document does not match
// the expected grammar (structural containers plus metadata-only leaves).
type MetaValidationError struct {
	Problems []string
}

func (e *MetaValidationError) Error() string {
	return fmt.Sprintf("master schema rejected by meta-schema: %s", strings.Join(e.Problems, "; "))
}

// ValidateDocument checks raw master-schema bytes against the embedded
// meta-schema before any indexing happens. Malformed schemas are a startup
// configuration error, never a per-request one.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(metaSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("meta-schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		if len(problems) == 5 {
			problems = append(problems, "...")
			break
		}
	}
	return &MetaValidationError{Problems: problems}
}
