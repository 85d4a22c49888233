package prompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/caseforge/internal/types"
)

// MustInclude collects the mandatory factual and stylistic elements for
// a dimension assignment, deduplicated in first-seen order.
func MustInclude(d types.Dimensions) []string {
	var elements []string
	elements = append(elements, TopicTemplates[d.PrimaryTopic].Elements...)
	if d.SecondaryTopic != "" {
		elements = append(elements, TopicTemplates[d.SecondaryTopic].Elements...)
	}
	elements = append(elements, formatRequirements[d.Format]...)
	elements = append(elements, lengthRequirements[d.LengthBand]...)
	elements = append(elements, noiseRequirements[d.Noise]...)
	elements = append(elements, numericRequirements[d.NumericDensity]...)
	elements = append(elements, datePrecisionRequirements[d.DatePrecision]...)
	if d.HardNegativeMode != "" {
		elements = append(elements, hardNegativeRequirements[d.HardNegativeMode]...)
	}
	if d.HardNegativeIntensity != "" {
		elements = append(elements, hardNegativeIntensityRequirements[d.HardNegativeIntensity]...)
	}

	seen := make(map[string]struct{}, len(elements))
	deduped := elements[:0]
	for _, item := range elements {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}

// MustAvoid lists the prohibitions attached to every instruction, plus
// the hard negative secrecy rule when relevant.
func MustAvoid(d types.Dimensions) []string {
	items := make([]string, len(commonMustAvoid), len(commonMustAvoid)+1)
	copy(items, commonMustAvoid)
	if d.Complexity == "hard_negative" {
		items = append(items, "Ne pas signaler explicitement qu'il s'agit d'un hard negative ou d'un piège.")
	}
	return items
}

// StyleBrief summarizes narrator, voice, form and legal core in a few
// French sentences.
func StyleBrief(d types.Dimensions) string {
	parts := []string{
		fmt.Sprintf("Le cas doit être raconté comme si %s s'exprimait.", personaLabels[d.Persona]),
		fmt.Sprintf("La tournure attendue est %s.", voiceLabels[d.Voice]),
		fmt.Sprintf("La forme doit ressembler à %s.", formatLabels[d.Format]),
		fmt.Sprintf("Le coeur juridique doit tourner autour de %s.", TopicTemplates[d.PrimaryTopic].Label),
	}
	if d.SecondaryTopic != "" {
		parts = append(parts, fmt.Sprintf("Une seconde couche doit faire intervenir %s.", TopicTemplates[d.SecondaryTopic].Label))
	}
	return strings.Join(parts, " ")
}
