package coverage

import (
	"math"

	"github.com/jonathan/caseforge/internal/types"
)

// Progress computes per-value progress of one dimension against a base
// total. Negative gaps mean the value ran ahead of its target.
func Progress(targets Table, counts map[string]int, total float64) map[string]types.DimensionProgress {
	progress := make(map[string]types.DimensionProgress, len(targets))
	for _, target := range targets {
		current := counts[target.Key]
		targetCount := round1(total * target.Share)
		progress[target.Key] = types.DimensionProgress{
			TargetShare: target.Share,
			TargetCount: targetCount,
			Current:     current,
			Gap:         round1(targetCount - float64(current)),
		}
	}
	return progress
}

// Dimensions builds the full progress map for a coverage snapshot. Hard
// negative axes are measured against their share of the overall target
// rather than the whole stream.
func Dimensions(counts Counts, generationTarget int) map[string]map[string]types.DimensionProgress {
	total := float64(generationTarget)
	hardNegativeBase := total * ComplexityTargets.Share("hard_negative")
	return map[string]map[string]types.DimensionProgress{
		DimPersona:               Progress(PersonaTargets, counts[DimPersona], total),
		DimVoice:                 Progress(VoiceTargets, counts[DimVoice], total),
		DimFormat:                Progress(FormatTargets, counts[DimFormat], total),
		DimLengthBand:            Progress(LengthTargets, counts[DimLengthBand], total),
		DimNoise:                 Progress(NoiseTargets, counts[DimNoise], total),
		DimNumericDensity:        Progress(NumericTargets, counts[DimNumericDensity], total),
		DimDatePrecision:         Progress(DatePrecisionTargets, counts[DimDatePrecision], total),
		DimComplexity:            Progress(ComplexityTargets, counts[DimComplexity], total),
		DimPrimaryTopic:          Progress(TopicTargets, counts[DimPrimaryTopic], total),
		DimHardNegativeMode:      Progress(HardNegativeTargets, counts[DimHardNegativeMode], hardNegativeBase),
		DimHardNegativeIntensity: Progress(HardNegativeIntensityTargets, counts[DimHardNegativeIntensity], hardNegativeBase),
	}
}

// DimensionOrder lists dimension keys in reporting order.
func DimensionOrder() []string {
	return []string{
		DimPersona,
		DimVoice,
		DimFormat,
		DimLengthBand,
		DimNoise,
		DimNumericDensity,
		DimDatePrecision,
		DimComplexity,
		DimPrimaryTopic,
		DimHardNegativeMode,
		DimHardNegativeIntensity,
	}
}

// TableFor returns the target table backing a dimension key.
func TableFor(dimension string) Table {
	switch dimension {
	case DimPersona:
		return PersonaTargets
	case DimVoice:
		return VoiceTargets
	case DimFormat:
		return FormatTargets
	case DimLengthBand:
		return LengthTargets
	case DimNoise:
		return NoiseTargets
	case DimNumericDensity:
		return NumericTargets
	case DimDatePrecision:
		return DatePrecisionTargets
	case DimComplexity:
		return ComplexityTargets
	case DimPrimaryTopic:
		return TopicTargets
	case DimHardNegativeMode:
		return HardNegativeTargets
	case DimHardNegativeIntensity:
		return HardNegativeIntensityTargets
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
