// Package coverage plans instruction dimensions so the issued stream
// converges toward the configured distribution targets.
package coverage

// Target binds one dimension value to its desired share of the stream.
type Target struct {
	Key   string
	Share float64
}

// Table is an ordered list of targets for one dimension. Order matters
// for deterministic tie-breaking during selection.
type Table []Target

// Keys returns the dimension values in table order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, target := range t {
		keys[i] = target.Key
	}
	return keys
}

// Contains reports whether the table defines the given value.
func (t Table) Contains(key string) bool {
	for _, target := range t {
		if target.Key == key {
			return true
		}
	}
	return false
}

// Share returns the target share of a value, zero when undefined.
func (t Table) Share(key string) float64 {
	for _, target := range t {
		if target.Key == key {
			return target.Share
		}
	}
	return 0
}

var PersonaTargets = Table{
	{"enfant", 0.18},
	{"conjoint", 0.12},
	{"beau_enfant", 0.09},
	{"fratrie", 0.08},
	{"notaire", 0.08},
	{"avocat", 0.07},
	{"partenaire_pacs", 0.07},
	{"concubin", 0.06},
	{"associe", 0.07},
	{"petit_enfant", 0.05},
	{"tiers", 0.05},
	{"narrateur_neutre", 0.08},
}

var VoiceTargets = Table{
	{"premiere_personne", 0.45},
	{"troisieme_personne", 0.35},
	{"note_dossier", 0.10},
	{"parole_rapportee", 0.10},
}

var FormatTargets = Table{
	{"question_directe", 0.22},
	{"mail_brouillon", 0.18},
	{"recit_libre", 0.22},
	{"note_professionnelle", 0.14},
	{"oral_retranscrit", 0.14},
	{"message_conflictuel", 0.10},
}

var LengthTargets = Table{
	{"court", 0.18},
	{"moyen", 0.42},
	{"long", 0.32},
	{"tres_long", 0.08},
}

var NoiseTargets = Table{
	{"propre", 0.42},
	{"legeres_fautes", 0.22},
	{"fautes_et_abreviations", 0.17},
	{"ambigu", 0.16},
	{"tres_brouillon", 0.03},
}

var NumericTargets = Table{
	{"sans_montant", 0.06},
	{"un_montant", 0.26},
	{"plusieurs_montants", 0.38},
	{"montants_et_dates", 0.30},
}

var DatePrecisionTargets = Table{
	{"aucune", 0.15},
	{"approx", 0.20},
	{"exacte", 0.65},
}

var ComplexityTargets = Table{
	{"simple", 0.20},
	{"intermediaire", 0.40},
	{"complexe", 0.24},
	{"hard_negative", 0.16},
}

var TopicTargets = Table{
	{"ordre_heritiers", 0.08},
	{"famille_recomposee", 0.12},
	{"regimes_matrimoniaux", 0.08},
	{"donations_reduction", 0.10},
	{"assurance_vie", 0.10},
	{"indivision_partage", 0.09},
	{"entreprise_dutreil", 0.08},
	{"demembrement_usufruit", 0.06},
	{"testament_legs", 0.08},
	{"dettes_passif", 0.06},
	{"pacs_concubinage", 0.07},
	{"international_procedure", 0.08},
}

var HardNegativeTargets = Table{
	{"pas_de_deces_clair", 0.30},
	{"infos_incompletes", 0.30},
	{"faits_contradictoires", 0.25},
	{"hors_perimetre_mal_qualifie", 0.15},
}

var HardNegativeIntensityTargets = Table{
	{"soft", 0.80},
	{"hard", 0.20},
}
