package coverage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/types"
)

func planMany(t *testing.T, n int) []types.Dimensions {
	t.Helper()
	counts := NewCounts()
	dims := make([]types.Dimensions, 0, n)
	for i := 0; i < n; i++ {
		rng := rand.New(rand.NewSource(int64(1000 + i)))
		d, err := Plan(rng, counts, "", nil)
		require.NoError(t, err)
		counts.Add(d)
		dims = append(dims, d)
	}
	return dims
}

func TestPlanFillsEveryMandatoryAxis(t *testing.T) {
	for _, d := range planMany(t, 200) {
		assert.True(t, PersonaTargets.Contains(d.Persona))
		assert.True(t, VoiceTargets.Contains(d.Voice))
		assert.True(t, FormatTargets.Contains(d.Format))
		assert.True(t, LengthTargets.Contains(d.LengthBand))
		assert.True(t, NoiseTargets.Contains(d.Noise))
		assert.True(t, NumericTargets.Contains(d.NumericDensity))
		assert.True(t, DatePrecisionTargets.Contains(d.DatePrecision))
		assert.True(t, ComplexityTargets.Contains(d.Complexity))
		assert.True(t, TopicTargets.Contains(d.PrimaryTopic))
	}
}

func TestPlanAmountsWithDatesRequireDatePrecision(t *testing.T) {
	for _, d := range planMany(t, 400) {
		if d.NumericDensity == "montants_et_dates" {
			assert.NotEqual(t, "aucune", d.DatePrecision)
		}
	}
}

func TestPlanHardNegativeCarriesModeAndIntensity(t *testing.T) {
	sawHardNegative := false
	for _, d := range planMany(t, 400) {
		if d.Complexity != "hard_negative" {
			assert.Empty(t, d.HardNegativeMode)
			assert.Empty(t, d.HardNegativeIntensity)
			continue
		}
		sawHardNegative = true
		assert.True(t, HardNegativeTargets.Contains(d.HardNegativeMode))
		assert.Contains(t, []string{"soft", "hard"}, d.HardNegativeIntensity)
		assert.NotEmpty(t, d.SecondaryTopic, "hard negatives always get a secondary topic")
	}
	assert.True(t, sawHardNegative)
}

func TestPlanBlocksMatrimonialTopicsForUnmarriedPersonas(t *testing.T) {
	for _, d := range planMany(t, 600) {
		if d.Persona == "partenaire_pacs" || d.Persona == "concubin" {
			assert.NotEqual(t, "regimes_matrimoniaux", d.PrimaryTopic)
			assert.NotEqual(t, "regimes_matrimoniaux", d.SecondaryTopic)
		}
	}
}

func TestPlanSecondaryTopicNeverRepeatsPrimary(t *testing.T) {
	for _, d := range planMany(t, 400) {
		if d.SecondaryTopic != "" {
			assert.NotEqual(t, d.PrimaryTopic, d.SecondaryTopic)
		}
	}
}

func TestPlanForcedTopic(t *testing.T) {
	counts := NewCounts()
	d, err := Plan(rand.New(rand.NewSource(5)), counts, "assurance_vie", nil)
	require.NoError(t, err)
	assert.Equal(t, "assurance_vie", d.PrimaryTopic)
}

func TestPlanUnknownForcedTopicIgnored(t *testing.T) {
	counts := NewCounts()
	d, err := Plan(rand.New(rand.NewSource(5)), counts, "droit_des_marques", nil)
	require.NoError(t, err)
	assert.True(t, TopicTargets.Contains(d.PrimaryTopic))
	assert.NotEqual(t, "droit_des_marques", d.PrimaryTopic)
}

func TestPlanRerollsFormatOnRecentSignature(t *testing.T) {
	counts := NewCounts()
	seed := int64(9)
	base, err := Plan(rand.New(rand.NewSource(seed)), counts, "", nil)
	require.NoError(t, err)

	recent := map[string]struct{}{base.Signature(): {}}
	rerolled, err := Plan(rand.New(rand.NewSource(seed)), counts, "", recent)
	require.NoError(t, err)

	assert.NotEqual(t, base.Format, rerolled.Format)
	assert.Equal(t, base.Persona, rerolled.Persona)
	assert.Equal(t, base.PrimaryTopic, rerolled.PrimaryTopic)
}

func TestPlanDeterministicForSeed(t *testing.T) {
	counts := NewCounts()
	first, err := Plan(rand.New(rand.NewSource(321)), counts, "", nil)
	require.NoError(t, err)
	second, err := Plan(rand.New(rand.NewSource(321)), counts, "", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
