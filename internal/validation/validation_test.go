package validation

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/repair"
	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/synth"
	"github.com/jonathan/caseforge/internal/types"
)

func testIndex(t *testing.T) *schema.Index {
	t.Helper()
	index, err := schema.Load(schema.ResolvePath(filepath.Join("schemas", "succession.schema.json")))
	require.NoError(t, err)
	return index
}

func validFamille(statut string) *types.Value {
	payload := types.Object()
	famille := types.Object()
	defunt := types.Object()
	defunt.Set("nom", types.String("Claire Morel"))
	defunt.Set("statut_matrimonial", types.String(statut))
	defunt.Set("date_deces", types.String("2024-05-10"))
	famille.Set("defunt", defunt)
	payload.Set("famille", famille)
	return payload
}

func TestCheckSparseShapeAcceptsDenseTree(t *testing.T) {
	assert.NoError(t, CheckSparseShape(validFamille("VEUF")))
}

func TestCheckSparseShapeRejections(t *testing.T) {
	tests := []struct {
		name  string
		build func() *types.Value
	}{
		{"null leaf", func() *types.Value {
			p := validFamille("VEUF")
			p.Get("famille").Get("defunt").Set("nom", types.Null())
			return p
		}},
		{"empty object", func() *types.Value {
			p := validFamille("VEUF")
			p.Set("patrimoine", types.Object())
			return p
		}},
		{"empty array", func() *types.Value {
			p := validFamille("VEUF")
			patrimoine := types.Object()
			patrimoine.Set("actifs", types.Array())
			p.Set("patrimoine", patrimoine)
			return p
		}},
		{"blank string", func() *types.Value {
			p := validFamille("VEUF")
			p.Get("famille").Get("defunt").Set("nom", types.String("   "))
			return p
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSparseShape(tc.build())
			var rejection *RejectionError
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, "target généré non sparse", rejection.Rule)
		})
	}
}

func TestCheckBusinessCoherenceMaritalStatus(t *testing.T) {
	payload := validFamille("MARIE")
	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "ordre_heritiers"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "statut MARIE sans partenaire")

	partenaire := types.Object()
	partenaire.Set("nom", types.String("Paul Garnier"))
	lien := types.Object()
	lien.Set("type", types.String("CONJOINT"))
	partenaire.Set("lien", lien)
	payload.Get("famille").Set("partenaire", partenaire)
	assert.NoError(t, CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "ordre_heritiers"}))
}

func TestCheckBusinessCoherenceMinorFlag(t *testing.T) {
	payload := validFamille("VEUF")
	child := types.Object()
	child.Set("nom", types.String("Hugo Morel"))
	child.Set("age_au_deces", types.Int(25))
	child.Set("est_mineur", types.Boolean(true))
	enfants := types.Array()
	enfants.Append(child)
	descendants := types.Object()
	descendants.Set("enfants", enfants)
	payload.Get("famille").Set("descendants", descendants)

	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "ordre_heritiers"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "est_mineur incohérent avec âge à famille.descendants.enfants[0]")
}

func TestCheckBusinessCoherenceBirthDateAgainstDeath(t *testing.T) {
	payload := validFamille("VEUF")
	payload.Get("famille").Get("defunt").Set("date_naissance", types.String("2025-01-01"))

	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "ordre_heritiers"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "date_naissance postérieure au décès à famille.defunt")
}

func TestCheckBusinessCoherenceInsuranceFlags(t *testing.T) {
	payload := validFamille("VEUF")
	versement := types.Object()
	versement.Set("age_assure_au_versement", types.Int(72))
	versement.Set("apres_70_ans", types.Boolean(false))
	versements := types.Array()
	versements.Append(versement)
	contract := types.Object()
	contract.Set("libelle", types.String("Contrat AXA"))
	contract.Set("assure_nom", types.String("Claire Morel"))
	contract.Set("versements", versements)
	contracts := types.Array()
	contracts.Append(contract)
	av := types.Object()
	av.Set("contrats", contracts)
	payload.Set("assurance_vie", av)

	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "assurance_vie"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "versement[0] incohérent: age >= 70 mais apres_70_ans=false")
}

func TestCheckBusinessCoherenceDonationSelfGift(t *testing.T) {
	payload := validFamille("VEUF")
	donation := types.Object()
	donation.Set("donateur_nom", types.String("Claire Morel"))
	donation.Set("beneficiaire_nom", types.String("Claire Morel"))
	donations := types.Array()
	donations.Append(donation)
	liberalites := types.Object()
	liberalites.Set("donations", donations)
	payload.Set("liberalites", liberalites)

	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "ordre_heritiers"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "donation[0] donateur == beneficiaire")
}

func TestCheckBusinessCoherenceTopicSubstance(t *testing.T) {
	payload := validFamille("VEUF")
	err := CheckBusinessCoherence(payload, types.Dimensions{PrimaryTopic: "assurance_vie"})
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "topic assurance_vie sans contrat")
}

func TestCheckSchemaConformanceUnknownKey(t *testing.T) {
	index := testIndex(t)
	payload := validFamille("VEUF")
	payload.Get("famille").Get("defunt").Set("pseudo", types.String("x"))

	err := CheckSchemaConformance(payload, index)
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "clé inconnue: famille.defunt.pseudo")
}

func TestCheckSchemaConformanceEnumAndTypes(t *testing.T) {
	index := testIndex(t)

	payload := validFamille("VEUF")
	payload.Get("famille").Get("defunt").Set("statut_matrimonial", types.String("REMARIE"))
	err := CheckSchemaConformance(payload, index)
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	require.NotEmpty(t, rejection.Problems)
	assert.Contains(t, rejection.Problems[0], "valeur hors enum à famille.defunt.statut_matrimonial")

	payload = validFamille("VEUF")
	payload.Get("famille").Get("defunt").Set("age_au_deces", types.String("soixante"))
	err = CheckSchemaConformance(payload, index)
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "type attendu number à famille.defunt.age_au_deces")
}

func TestCheckSchemaConformanceAcceptsValidPayload(t *testing.T) {
	index := testIndex(t)
	assert.NoError(t, CheckSchemaConformance(validFamille("VEUF"), index))
}

func TestCheckTopicAlignment(t *testing.T) {
	payload := validFamille("VEUF")
	err := CheckTopicAlignment(payload, "assurance_vie", "")
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Problems, "primary_topic=assurance_vie absent de la cible")

	contract := types.Object()
	contract.Set("libelle", types.String("Contrat AXA"))
	contract.Set("assure_nom", types.String("Claire Morel"))
	contracts := types.Array()
	contracts.Append(contract)
	av := types.Object()
	av.Set("contrats", contracts)
	payload.Set("assurance_vie", av)
	assert.NoError(t, CheckTopicAlignment(payload, "assurance_vie", ""))
}

func TestPipelineAcceptsRepairedSynthesizedPayload(t *testing.T) {
	index := testIndex(t)
	s := synth.New(index)
	d := types.Dimensions{
		Persona:        "enfant",
		Complexity:     "intermediaire",
		PrimaryTopic:   "assurance_vie",
		NumericDensity: "plusieurs_montants",
	}

	accepted := false
	for attempt := int64(1); attempt <= 50; attempt++ {
		rng := rand.New(rand.NewSource(attempt))
		payload, ctx, err := s.Build(d, rng)
		require.NoError(t, err)
		repair.Repair(payload, d, ctx, rng)
		if Pipeline(payload, d, index) == nil {
			accepted = true
			break
		}
	}
	assert.True(t, accepted, "no candidate accepted in 50 attempts")
}

func TestRejectionErrorPreviewIsBounded(t *testing.T) {
	err := &RejectionError{Rule: "r", Problems: []string{"a", "b", "c", "d", "e"}}
	assert.Equal(t, "r: a; b; c; ...", err.Error())
}
