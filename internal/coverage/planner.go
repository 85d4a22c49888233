package coverage

import (
	"math/rand"

	"github.com/jonathan/caseforge/internal/types"
)

const secondaryTopicProbability = 0.55

// personaBlockedTopics suppresses topics that contradict a persona.
// A PACS partner or concubine narrator cannot headline a matrimonial
// regime dispute, the regime presupposes a marriage.
var personaBlockedTopics = map[string]map[string]struct{}{
	"partenaire_pacs": exclusion("regimes_matrimoniaux"),
	"concubin":        exclusion("regimes_matrimoniaux"),
}

// Plan draws a full dimension assignment for the next instruction,
// steering each axis toward its target distribution given the counts of
// everything issued so far. An unknown forced topic is ignored and the
// balanced pick applies instead.
func Plan(rng *rand.Rand, counts Counts, forceTopic string, recentSignatures map[string]struct{}) (types.Dimensions, error) {
	var d types.Dimensions
	var err error

	if d.Persona, err = PickUnderrepresented(PersonaTargets, counts[DimPersona], rng, nil); err != nil {
		return d, err
	}
	if d.Voice, err = PickUnderrepresented(VoiceTargets, counts[DimVoice], rng, nil); err != nil {
		return d, err
	}
	if d.Format, err = PickUnderrepresented(FormatTargets, counts[DimFormat], rng, nil); err != nil {
		return d, err
	}
	if d.LengthBand, err = PickUnderrepresented(LengthTargets, counts[DimLengthBand], rng, nil); err != nil {
		return d, err
	}
	if d.Noise, err = PickUnderrepresented(NoiseTargets, counts[DimNoise], rng, nil); err != nil {
		return d, err
	}
	if d.NumericDensity, err = PickUnderrepresented(NumericTargets, counts[DimNumericDensity], rng, nil); err != nil {
		return d, err
	}

	// A case that must anchor amounts to dates cannot omit dates.
	var dateExclude map[string]struct{}
	if d.NumericDensity == "montants_et_dates" {
		dateExclude = exclusion("aucune")
	}
	if d.DatePrecision, err = PickUnderrepresented(DatePrecisionTargets, counts[DimDatePrecision], rng, dateExclude); err != nil {
		return d, err
	}
	if d.Complexity, err = PickUnderrepresented(ComplexityTargets, counts[DimComplexity], rng, nil); err != nil {
		return d, err
	}

	blocked := make(map[string]struct{})
	for topic := range personaBlockedTopics[d.Persona] {
		blocked[topic] = struct{}{}
	}

	if forceTopic != "" && TopicTargets.Contains(forceTopic) {
		d.PrimaryTopic = forceTopic
	} else if d.PrimaryTopic, err = PickUnderrepresented(TopicTargets, counts[DimPrimaryTopic], rng, blocked); err != nil {
		return d, err
	}

	if d.Complexity == "complexe" || d.Complexity == "hard_negative" || rng.Float64() < secondaryTopicProbability {
		secondaryExclude := exclusion(d.PrimaryTopic)
		for topic := range blocked {
			secondaryExclude[topic] = struct{}{}
		}
		if d.SecondaryTopic, err = PickUnderrepresented(TopicTargets, counts[DimPrimaryTopic], rng, secondaryExclude); err != nil {
			return d, err
		}
	}

	if d.Complexity == "hard_negative" {
		if d.HardNegativeIntensity, err = PickUnderrepresented(HardNegativeIntensityTargets, counts[DimHardNegativeIntensity], rng, nil); err != nil {
			return d, err
		}
		if d.HardNegativeMode, err = PickUnderrepresented(HardNegativeTargets, counts[DimHardNegativeMode], rng, nil); err != nil {
			return d, err
		}
	}

	// Re-roll the format once when the exact combination was issued
	// recently, cheap way to keep consecutive instructions varied.
	if _, seen := recentSignatures[d.Signature()]; seen {
		reroll, err := PickUnderrepresented(FormatTargets, counts[DimFormat], rng, exclusion(d.Format))
		if err != nil {
			return d, err
		}
		d.Format = reroll
	}
	return d, nil
}
