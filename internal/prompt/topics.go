package prompt

// TopicTemplate carries the French framing of one legal topic: its
// human label, the corpus keywords used to pick reference examples and
// the factual elements a case on this topic must include.
type TopicTemplate struct {
	Label    string
	Keywords []string
	Elements []string
}

// TopicTemplates covers every plannable topic.
var TopicTemplates = map[string]TopicTemplate{
	"ordre_heritiers": {
		Label:    "ordre des héritiers / dévolution",
		Keywords: []string{"enfant", "célibataire", "frère", "marié", "représentation"},
		Elements: []string{
			"préciser les liens de parenté utiles",
			"indiquer s'il existe ou non un testament",
		},
	},
	"famille_recomposee": {
		Label:    "famille recomposée / enfants non communs",
		Keywords: []string{"recompos", "premier lit", "enfant non commun", "beau", "adoption simple"},
		Elements: []string{
			"inclure au moins un enfant d'une autre union",
			"laisser un point de friction entre branches familiales",
		},
	},
	"regimes_matrimoniaux": {
		Label:    "régime matrimonial / liquidation préalable",
		Keywords: []string{"communauté", "séparation de biens", "participation", "récompense"},
		Elements: []string{
			"mentionner le régime matrimonial ou son absence de contrat",
			"faire apparaître un enjeu de propriété entre époux",
		},
	},
	"donations_reduction": {
		Label:    "donation / rapport / réduction",
		Keywords: []string{"donation", "hors part", "réduction", "rapport", "donation-partage"},
		Elements: []string{
			"inclure une libéralité antérieure",
			"laisser planer un doute sur son traitement civil",
		},
	},
	"assurance_vie": {
		Label:    "assurance-vie / bénéficiaires / primes",
		Keywords: []string{"assurance vie", "AV", "bénéficiaire", "primes exag"},
		Elements: []string{
			"mentionner un contrat d'assurance-vie ou un bénéficiaire",
			"glisser un doute sur la place du contrat dans le calcul global",
		},
	},
	"indivision_partage": {
		Label:    "indivision / partage bloqué / licitation",
		Keywords: []string{"indivision", "vendre", "licitation", "occupation"},
		Elements: []string{
			"faire apparaître au moins deux héritiers en désaccord",
			"inclure un bien difficile à partager",
		},
	},
	"entreprise_dutreil": {
		Label:    "entreprise / titres / Dutreil",
		Keywords: []string{"société", "parts", "Dutreil", "SARL", "SCI", "fonds"},
		Elements: []string{
			"inclure des titres, une société ou un outil professionnel",
			"laisser un enjeu de valorisation ou de reprise",
		},
	},
	"demembrement_usufruit": {
		Label:    "démembrement / usufruit / nue-propriété",
		Keywords: []string{"usufruit", "nue-propriété", "quasi-usufruit", "démembrement"},
		Elements: []string{
			"inclure un usufruit existant ou à choisir",
			"faire apparaître un effet différé ou une créance future",
		},
	},
	"testament_legs": {
		Label:    "testament / legs / clause contestée",
		Keywords: []string{"testament", "legs", "olographe", "légataire"},
		Elements: []string{
			"inclure une disposition testamentaire ou un legs",
			"laisser un doute sur la portée ou la validité de la clause",
		},
	},
	"dettes_passif": {
		Label:    "dettes / passif / déficit",
		Keywords: []string{"dette", "impôts", "URSSAF", "passif", "déficit"},
		Elements: []string{
			"inclure un passif significatif",
			"faire sentir une tension sur le règlement des dettes",
		},
	},
	"pacs_concubinage": {
		Label:    "PACS / concubinage",
		Keywords: []string{"PACS", "concubin", "union libre", "partenaire"},
		Elements: []string{
			"inclure une relation non matrimoniale",
			"faire apparaître un doute sur la protection du survivant",
		},
	},
	"international_procedure": {
		Label:    "international / procédure / blocage",
		Keywords: []string{"étranger", "Belgique", "Espagne", "procédure", "mandat", "juge"},
		Elements: []string{
			"inclure un élément procédural ou international",
			"laisser au moins un point de compétence ou de formalité flou",
		},
	},
}
