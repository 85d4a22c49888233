package coverage

import "github.com/jonathan/caseforge/internal/types"

// Dimension names used as count buckets and progress keys.
const (
	DimPersona               = "persona"
	DimVoice                 = "voice"
	DimFormat                = "format"
	DimLengthBand            = "length_band"
	DimNoise                 = "noise"
	DimNumericDensity        = "numeric_density"
	DimDatePrecision         = "date_precision"
	DimComplexity            = "complexity"
	DimPrimaryTopic          = "primary_topic"
	DimHardNegativeMode      = "hard_negative_mode"
	DimHardNegativeIntensity = "hard_negative_intensity"
)

// Counts tracks per-dimension value frequencies over issued
// instructions. Secondary topics are not counted, only the primary
// topic drives topic balancing.
type Counts map[string]map[string]int

// NewCounts returns an empty count set with all buckets present.
func NewCounts() Counts {
	c := make(Counts)
	for _, dim := range []string{
		DimPersona, DimVoice, DimFormat, DimLengthBand, DimNoise,
		DimNumericDensity, DimDatePrecision, DimComplexity,
		DimPrimaryTopic, DimHardNegativeMode, DimHardNegativeIntensity,
	} {
		c[dim] = make(map[string]int)
	}
	return c
}

// Add folds one issued instruction's dimensions into the counts.
func (c Counts) Add(d types.Dimensions) {
	bump := func(dim, value string) {
		if value != "" {
			c[dim][value]++
		}
	}
	bump(DimPersona, d.Persona)
	bump(DimVoice, d.Voice)
	bump(DimFormat, d.Format)
	bump(DimLengthBand, d.LengthBand)
	bump(DimNoise, d.Noise)
	bump(DimNumericDensity, d.NumericDensity)
	bump(DimDatePrecision, d.DatePrecision)
	bump(DimComplexity, d.Complexity)
	bump(DimPrimaryTopic, d.PrimaryTopic)
	bump(DimHardNegativeMode, d.HardNegativeMode)
	bump(DimHardNegativeIntensity, d.HardNegativeIntensity)
}

// CountsFrom rebuilds counts from a replayed instruction log.
func CountsFrom(issued []types.Instruction) Counts {
	c := NewCounts()
	for _, instruction := range issued {
		c.Add(instruction.Dimensions)
	}
	return c
}
