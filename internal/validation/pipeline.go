package validation

import (
	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

// Pipeline runs the four payload gates in their fixed order and stops
// at the first rejection.
func Pipeline(payload *types.Value, d types.Dimensions, index *schema.Index) error {
	if err := CheckSparseShape(payload); err != nil {
		return err
	}
	if err := CheckBusinessCoherence(payload, d); err != nil {
		return err
	}
	if err := CheckSchemaConformance(payload, index); err != nil {
		return err
	}
	return CheckTopicAlignment(payload, d.PrimaryTopic, d.SecondaryTopic)
}
