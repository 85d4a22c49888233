package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/types"
)

func targetWithNames(names ...string) *types.Value {
	payload := types.Object()
	famille := types.Object()
	defunt := types.Object()
	defunt.Set("nom", types.String(names[0]))
	famille.Set("defunt", defunt)
	if len(names) > 1 {
		enfants := types.Array()
		for _, name := range names[1:] {
			child := types.Object()
			child.Set("nom", types.String(name))
			enfants.Append(child)
		}
		descendants := types.Object()
		descendants.Set("enfants", enfants)
		famille.Set("descendants", descendants)
	}
	payload.Set("famille", famille)
	return payload
}

func TestCollectNamesWalksNameKeys(t *testing.T) {
	target := targetWithNames("Claire Morel", "Hugo Morel")
	donation := types.Object()
	donation.Set("beneficiaire_nom", types.String("Hugo Morel"))
	donations := types.Array()
	donations.Append(donation)
	liberalites := types.Object()
	liberalites.Set("donations", donations)
	target.Set("liberalites", liberalites)
	legs := types.Object()
	noms := types.Array()
	noms.Append(types.String("Léa Fontaine"))
	legs.Set("beneficiaire_noms", noms)
	target.Set("legs_test", legs)

	names := CollectNames(target)
	assert.ElementsMatch(t, []string{"Claire Morel", "Hugo Morel", "Léa Fontaine"}, names)
}

func TestCollectNamesCleansPayloadNames(t *testing.T) {
	target := targetWithNames(" (Marc  Lefevre). ", "Marc Lefevre")

	// Stray punctuation and doubled spaces in the payload fold to the
	// same name, so the duplicate collapses too.
	names := CollectNames(target)
	assert.Equal(t, []string{"Marc Lefevre"}, names)
}

func TestMissingNamesAcceptsPartialMention(t *testing.T) {
	target := targetWithNames("Claire Morel", "Hugo Morel")

	// Surname alone is enough when it carries four characters or more.
	text := "Madame Morel est décédée en mai, laissant un fils."
	assert.Empty(t, MissingNames(text, target))
}

func TestMissingNamesReportsAbsentNames(t *testing.T) {
	target := targetWithNames("Claire Morel", "Hugo Dupont")
	text := "Claire Morel est décédée en mai dernier à Lyon."
	missing := MissingNames(text, target)
	assert.Equal(t, []string{"Hugo Dupont"}, missing)
}

func TestMissingNamesIgnoresAccents(t *testing.T) {
	target := targetWithNames("Léa Générale")
	text := "Lea Generale conteste le partage."
	assert.Empty(t, MissingNames(text, target))
}

func TestCheckLeaksRejections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"snake case", "Le statut_matrimonial du défunt pose question.", "snake_case"},
		{"caps enum", "Elle était PARTENAIRE_PACS du défunt.", "MAJUSCULES_AVEC_UNDERSCORE"},
		{"raw boolean", "Le testament existe: True, selon le notaire.", "booléens bruts"},
		{"path dump", "famille > defunt > nom", "chemins"},
		{"enum token", "Il était CELIBATAIRE au moment du décès.", "énumération"},
		{"schema phrase", "Voir famille defunt pour les détails.", "dump de champs"},
		{"semicolons", strings.Repeat("nom; ", 12), "';'"},
		{"colons", strings.Repeat("champ: valeur ", 12), "':'"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckLeaks(tc.text)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCheckLeaksAcceptsNaturalFrench(t *testing.T) {
	text := "Mon père est décédé en mars 2024 à Lyon. Il était marié et laisse deux enfants. " +
		"Le notaire évoque une assurance-vie de 80 000 euros souscrite en 2010."
	assert.NoError(t, CheckLeaks(text))
}

func TestCheckLeaksToleratesCommonAcronyms(t *testing.T) {
	assert.NoError(t, CheckLeaks("Il détenait des parts de SCI et un contrat d'assurance-vie (AV)."))
}

func TestReportExactDuplicateAgainstSeeds(t *testing.T) {
	seeds := []corpus.Seed{{CaseID: "SEED-0001", Text: "Mon père est décédé en mars 2024 à Lyon."}}
	g := New(seeds)

	report := g.Report("Mon père est décédé en mars 2024 à Lyon.", nil)
	assert.True(t, report.ExactDuplicate)
	assert.Equal(t, "SEED-0001", report.ClosestReference)
	assert.Equal(t, 1.0, report.MaxSimilarity)
	assert.Contains(t, report.Warnings, "doublon exact détecté")
}

func TestReportExactDuplicateAgainstPriorCases(t *testing.T) {
	g := New(nil)
	prior := []PriorCase{{ID: "uuid-1", Text: "La succession de Jeanne Petit oppose ses trois enfants."}}

	report := g.Report("La succession de Jeanne Petit oppose ses trois enfants.", prior)
	assert.True(t, report.ExactDuplicate)
	assert.Equal(t, "uuid-1", report.ClosestReference)
}

func TestReportNearDuplicateWarning(t *testing.T) {
	seeds := []corpus.Seed{{
		CaseID: "SEED-0001",
		Text:   "Mon père est décédé en mars 2024 à Lyon, laissant deux enfants et une maison en indivision.",
	}}
	g := New(seeds)

	report := g.Report("Mon père est décédé en mars 2024 à Lyon, laissant deux enfants et une maison en copropriété.", nil)
	assert.False(t, report.ExactDuplicate)
	assert.GreaterOrEqual(t, report.MaxSimilarity, similarityWarningThreshold)
	assert.Contains(t, report.Warnings, "cas très proche d'un cas existant")
}

func TestReportCountsAndShortWarning(t *testing.T) {
	g := New(nil)
	report := g.Report("Trop court pour un énoncé.", nil)
	assert.Equal(t, 5, report.WordCount)
	assert.False(t, report.ContainsDigits)
	assert.Contains(t, report.Warnings, "énoncé très court")

	report = g.Report("Un énoncé suffisamment long qui mentionne une somme de 80 000 euros versée au profit du second enfant du défunt.", nil)
	assert.True(t, report.ContainsDigits)
	assert.NotContains(t, report.Warnings, "énoncé très court")
}
