package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/types"
)

func TestProgressRoundsAndSignsGaps(t *testing.T) {
	targets := Table{{"a", 0.24}, {"b", 0.76}}
	counts := map[string]int{"a": 9, "b": 1}

	progress := Progress(targets, counts, 30)

	a := progress["a"]
	assert.Equal(t, 7.2, a.TargetCount)
	assert.Equal(t, 9, a.Current)
	assert.Equal(t, -1.8, a.Gap)

	b := progress["b"]
	assert.Equal(t, 22.8, b.TargetCount)
	assert.Equal(t, 21.8, b.Gap)
}

func TestDimensionsUsesHardNegativeBase(t *testing.T) {
	counts := NewCounts()
	counts.Add(types.Dimensions{
		Persona:               "enfant",
		Voice:                 "premiere_personne",
		Format:                "recit_libre",
		LengthBand:            "moyen",
		Noise:                 "propre",
		NumericDensity:        "un_montant",
		DatePrecision:         "exacte",
		Complexity:            "hard_negative",
		PrimaryTopic:          "assurance_vie",
		HardNegativeMode:      "infos_incompletes",
		HardNegativeIntensity: "soft",
	})

	dims := Dimensions(counts, 100)
	require.Len(t, dims, len(DimensionOrder()))

	// Mode and intensity axes are scaled by the hard negative share of
	// the overall target, 16 cases out of 100 here.
	mode := dims[DimHardNegativeMode]["infos_incompletes"]
	assert.Equal(t, 4.8, mode.TargetCount)
	assert.Equal(t, 1, mode.Current)

	intensity := dims[DimHardNegativeIntensity]["soft"]
	assert.Equal(t, 12.8, intensity.TargetCount)

	persona := dims[DimPersona]["enfant"]
	assert.Equal(t, 18.0, persona.TargetCount)
}

func TestDimensionOrderMatchesTables(t *testing.T) {
	order := DimensionOrder()
	require.Len(t, order, 11)
	seen := make(map[string]struct{}, len(order))
	for _, dim := range order {
		_, dup := seen[dim]
		assert.False(t, dup, "duplicate dimension %s", dim)
		seen[dim] = struct{}{}
		assert.NotNil(t, TableFor(dim), "no table for %s", dim)
	}
	assert.Nil(t, TableFor("inconnu"))
}

func TestTableSharesSumToOne(t *testing.T) {
	for _, dim := range DimensionOrder() {
		table := TableFor(dim)
		sum := 0.0
		for _, target := range table {
			sum += target.Share
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "shares of %s", dim)
	}
}
