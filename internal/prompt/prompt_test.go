package prompt

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/coverage"
	"github.com/jonathan/caseforge/internal/types"
)

func sampleDimensions() types.Dimensions {
	return types.Dimensions{
		Persona:        "enfant",
		Voice:          "premiere_personne",
		Format:         "mail_brouillon",
		LengthBand:     "moyen",
		Noise:          "propre",
		NumericDensity: "montants_et_dates",
		DatePrecision:  "exacte",
		Complexity:     "intermediaire",
		PrimaryTopic:   "assurance_vie",
		SecondaryTopic: "testament_legs",
	}
}

func TestTopicTemplatesCoverEveryPlannableTopic(t *testing.T) {
	for _, key := range coverage.TopicTargets.Keys() {
		template, ok := TopicTemplates[key]
		require.True(t, ok, "missing template for %s", key)
		assert.NotEmpty(t, template.Label)
		assert.NotEmpty(t, template.Keywords)
		assert.NotEmpty(t, template.Elements)
	}
}

func TestMustIncludeDeduplicatesInOrder(t *testing.T) {
	d := sampleDimensions()
	items := MustInclude(d)
	require.NotEmpty(t, items)

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		_, dup := seen[item]
		assert.False(t, dup, "duplicate element %q", item)
		seen[item] = struct{}{}
	}
	// Topic elements lead, the primary topic's first element stays first.
	assert.Equal(t, TopicTemplates[d.PrimaryTopic].Elements[0], items[0])
}

func TestMustAvoidAddsHardNegativeSecrecy(t *testing.T) {
	d := sampleDimensions()
	base := MustAvoid(d)
	d.Complexity = "hard_negative"
	hardened := MustAvoid(d)
	assert.Len(t, hardened, len(base)+1)
	assert.Contains(t, hardened[len(hardened)-1], "hard negative")
}

func TestRenderMentionsEveryAxis(t *testing.T) {
	d := sampleDimensions()
	out := Render(d, nil, MustInclude(d), MustAvoid(d))

	assert.Contains(t, out, "énoncé")
	assert.Contains(t, out, "Persona :")
	assert.Contains(t, out, "Sujet principal :")
	assert.Contains(t, out, "Sujet secondaire :")
	assert.Contains(t, out, "Contraintes :")
	assert.Contains(t, out, "À éviter :")
	assert.NotContains(t, out, "Mode hard negative")
	assert.NotContains(t, out, "Repères de style")
}

func TestRenderListsReferenceExamples(t *testing.T) {
	d := sampleDimensions()
	examples := []types.ReferenceExample{{CaseID: "SEED-0001", Excerpt: "Mon père est décédé en mars."}}
	out := Render(d, examples, nil, nil)
	assert.Contains(t, out, "Repères de style")
	assert.Contains(t, out, "[SEED-0001] Mon père est décédé en mars.")
}

func TestAugmentWithTargetAppendsRulesAndTarget(t *testing.T) {
	out := AugmentWithTarget("Génère un énoncé.", "{\n  \"version\": \"1.0\"\n}\n")
	assert.True(t, strings.HasPrefix(out, "Génère un énoncé."))
	assert.Contains(t, out, "Règle A")
	assert.Contains(t, out, "CIBLE:")
	assert.True(t, strings.HasSuffix(out, "\"version\": \"1.0\"\n}"))
}

func TestPickReferenceExamplesMatchesTopicKeywords(t *testing.T) {
	seeds := []corpus.Seed{
		{CaseID: "SEED-0001", Text: "Mon père avait souscrit une assurance-vie avec clause bénéficiaire."},
		{CaseID: "SEED-0002", Text: "Une assurance vie de 80 000 euros au profit de sa compagne."},
		{CaseID: "SEED-0003", Text: "La maison reste en indivision entre les trois frères."},
		{CaseID: "SEED-0004", Text: "Le testament olographe institue un légataire universel."},
	}
	rng := rand.New(rand.NewSource(3))
	examples := PickReferenceExamples(seeds, "assurance_vie", "", rng)
	require.Len(t, examples, 2)
	for _, example := range examples {
		assert.Contains(t, []string{"SEED-0001", "SEED-0002"}, example.CaseID)
	}
}

func TestPickReferenceExamplesFallsBackToWholeCorpus(t *testing.T) {
	seeds := []corpus.Seed{
		{CaseID: "SEED-0001", Text: "Aucun mot clé pertinent ici."},
		{CaseID: "SEED-0002", Text: "Rien de thématique non plus."},
	}
	rng := rand.New(rand.NewSource(3))
	examples := PickReferenceExamples(seeds, "entreprise_dutreil", "", rng)
	assert.Len(t, examples, 2)
}

func TestPickReferenceExamplesTruncatesLongExcerpts(t *testing.T) {
	long := strings.Repeat("succession assurance-vie très détaillée ", 20)
	seeds := []corpus.Seed{
		{CaseID: "SEED-0001", Text: long},
		{CaseID: "SEED-0002", Text: long},
	}
	rng := rand.New(rand.NewSource(1))
	examples := PickReferenceExamples(seeds, "assurance_vie", "", rng)
	require.NotEmpty(t, examples)
	assert.LessOrEqual(t, len([]rune(examples[0].Excerpt)), excerptLimit+1)
	assert.True(t, strings.HasSuffix(examples[0].Excerpt, "…"))
}

func TestStyleBriefNamesPersonaAndTopic(t *testing.T) {
	d := sampleDimensions()
	brief := StyleBrief(d)
	assert.Contains(t, brief, personaLabels[d.Persona])
	assert.Contains(t, brief, TopicTemplates[d.PrimaryTopic].Label)
}
