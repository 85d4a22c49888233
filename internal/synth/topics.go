package synth

import "github.com/jonathan/caseforge/internal/schema"

// TopicSchemaPrefixes maps each topic to the schema subtrees its
// payloads draw from during probabilistic leaf inclusion.
var TopicSchemaPrefixes = map[string][]schema.Path{
	"ordre_heritiers": {
		{"famille", "descendants"},
		{"famille", "ascendants"},
		{"famille", "collateraux"},
	},
	"famille_recomposee": {
		{"famille", "descendants"},
		{"famille", "partenaire"},
		{"famille", "collateraux"},
	},
	"regimes_matrimoniaux": {
		{"famille", "defunt", "regime_matrimonial"},
		{"famille", "partenaire"},
		{"patrimoine", "actifs"},
		{"patrimoine", "recompenses"},
	},
	"donations_reduction": {
		{"liberalites", "donations"},
		{"liberalites", "testament"},
		{"liberalites", "legs"},
		{"liberalites", "renonciations_action_reduction"},
		{"liberalites", "raar"},
	},
	"assurance_vie": {
		{"assurance_vie", "contrats"},
		{"contexte", "procedure", "contestation_clause_beneficiaire_assurance_vie"},
	},
	"indivision_partage": {
		{"indivision", "gestion"},
		{"indivision", "comptes"},
		{"indivision", "creances"},
		{"operations_de_partage", "licitation"},
		{"operations_de_partage", "attributions_preferentielles"},
		{"operations_de_partage", "soultes_mentionnees"},
	},
	"entreprise_dutreil": {
		{"patrimoine", "actifs"},
		{"liberalites", "donations"},
		{"operations_de_partage", "attributions_preferentielles"},
	},
	"demembrement_usufruit": {
		{"patrimoine", "actifs"},
		{"operations_de_partage", "conversion_usufruit"},
	},
	"testament_legs": {
		{"liberalites", "testament"},
		{"liberalites", "legs"},
		{"contexte", "procedure", "contestation_testament"},
	},
	"dettes_passif": {
		{"patrimoine", "passifs"},
		{"operations_de_partage", "creances_entre_copartageants"},
	},
	"pacs_concubinage": {
		{"famille", "partenaire"},
		{"famille", "droits_du_partenaire"},
	},
	"international_procedure": {
		{"contexte", "international"},
		{"contexte", "procedure"},
		{"famille", "defunt"},
		{"famille", "partenaire"},
	},
}

// TopicRequiredLeafPaths lists the leaves whose presence proves a topic
// is actually represented in a payload.
var TopicRequiredLeafPaths = map[string][]schema.Path{
	"ordre_heritiers": {
		{"famille", "descendants", "enfants", "*", "nom"},
	},
	"famille_recomposee": {
		{"famille", "descendants", "enfants", "*", "nom"},
		{"famille", "descendants", "enfants", "*", "est_d_une_precedente_union"},
	},
	"regimes_matrimoniaux": {
		{"famille", "defunt", "regime_matrimonial", "type"},
		{"patrimoine", "actifs", "*", "type"},
		{"patrimoine", "actifs", "*", "propriete", "nature"},
	},
	"donations_reduction": {
		{"liberalites", "donations", "*", "donateur_nom"},
		{"liberalites", "donations", "*", "beneficiaire_nom"},
		{"liberalites", "donations", "*", "type"},
	},
	"assurance_vie": {
		{"assurance_vie", "contrats", "*", "libelle"},
		{"assurance_vie", "contrats", "*", "assure_nom"},
	},
	"indivision_partage": {
		{"contexte", "procedure", "refus_de_vendre_ou_de_partager", "existe"},
		{"operations_de_partage", "licitation", "est_prevue"},
	},
	"entreprise_dutreil": {
		{"patrimoine", "actifs", "*", "type"},
		{"patrimoine", "actifs", "*", "entreprise", "type"},
		{"patrimoine", "actifs", "*", "entreprise", "est_presente_comme_eligible_dutreil"},
	},
	"demembrement_usufruit": {
		{"patrimoine", "actifs", "*", "demembrement", "droits_du_defunt"},
	},
	"testament_legs": {
		{"liberalites", "testament", "existe"},
		{"liberalites", "legs", "*", "beneficiaire_nom"},
		{"liberalites", "legs", "*", "type"},
	},
	"dettes_passif": {
		{"patrimoine", "passifs", "*", "type"},
		{"patrimoine", "passifs", "*", "valeur"},
	},
	"pacs_concubinage": {
		{"famille", "partenaire", "nom"},
		{"famille", "partenaire", "lien", "type"},
	},
	"international_procedure": {
		{"contexte", "international", "professio_juris", "existe"},
		{"contexte", "procedure", "divorce_ou_separation_en_cours", "existe"},
	},
}

// sparseCoveragePrefixes are rarely-seen subtrees that get an extra,
// low-probability chance of inclusion so they stay represented in the
// overall training set.
var sparseCoveragePrefixes = []schema.Path{
	{"famille", "adoption_simple_du_defunt"},
	{"liberalites", "donation_entre_epoux"},
	{"patrimoine", "ameliorations_bien_propre"},
}
