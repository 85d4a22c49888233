package prompt

var formatRequirements = map[string][]string{
	"question_directe":     {"terminer comme une vraie question ou une demande de conseil"},
	"mail_brouillon":       {"faire sentir un message envoyé vite, sans mise en forme parfaite"},
	"recit_libre":          {"laisser le narrateur dérouler les faits sans structure trop scolaire"},
	"note_professionnelle": {"style sec, quasi-notarial ou cabinet"},
	"oral_retranscrit":     {"ponctuation un peu irrégulière, rythme oral"},
	"message_conflictuel":  {"faire sentir un conflit ou une tension explicite"},
}

var lengthRequirements = map[string][]string{
	"court":     {"viser un cas bref et dense, sans devenir télégraphique"},
	"moyen":     {"viser un niveau de détail intermédiaire, lisible d'un seul bloc"},
	"long":      {"ajouter assez de matière factuelle pour un cas nettement développé"},
	"tres_long": {"viser un cas riche, détaillé et multi-couches, sans donner la solution"},
}

var noiseRequirements = map[string][]string{
	"propre":                 {"pas d'erreur volontaire obligatoire"},
	"legeres_fautes":         {"ajouter 1 ou 2 fautes réalistes maximum"},
	"fautes_et_abreviations": {"ajouter quelques abréviations réalistes (AV, RP, M., Mme, etc.)"},
	"ambigu":                 {"laisser au moins un détail flou, approximatif ou contesté"},
	"tres_brouillon":         {"laisser des morceaux incomplets, hésitants ou mal ponctués"},
}

var numericRequirements = map[string][]string{
	"sans_montant":       {"aucun chiffre n'est obligatoire"},
	"un_montant":         {"inclure au moins un montant ou une valeur"},
	"plusieurs_montants": {"inclure plusieurs montants, valeurs ou proportions"},
	"montants_et_dates":  {"inclure au moins un montant et une date utile, de préférence exacte"},
}

var datePrecisionRequirements = map[string][]string{
	"aucune": {"aucune date n'est obligatoire si elle n'apporte rien"},
	"approx": {"utiliser un repère temporel flou ou approximatif si une date apparaît"},
	"exacte": {"inclure au moins une date exacte (jour/mois/année ou format ISO)"},
}

var hardNegativeRequirements = map[string][]string{
	"pas_de_deces_clair": {
		"le texte doit ressembler à une succession mais sans décès exploitable clairement posé",
	},
	"infos_incompletes": {
		"laisser manquer une donnée-clé (date, lien, testament, régime, composition des héritiers)",
	},
	"faits_contradictoires": {
		"introduire une contradiction factuelle réaliste sans la résoudre",
	},
	"hors_perimetre_mal_qualifie": {
		"faire croire à une succession alors qu'une partie du problème relève d'autre chose",
	},
}

var hardNegativeIntensityRequirements = map[string][]string{
	"soft": {"ne mettre qu'un défaut principal, le cas doit rester très crédible au premier regard"},
	"hard": {"cumuler au moins deux sources de confusion sans rendre le texte absurde"},
}

var commonMustAvoid = []string{
	"Ne pas donner la solution ni conclure sur les droits exacts.",
	"Ne pas fournir d'analyse juridique, de calcul ou de raisonnement explicatif.",
	"Ne pas répondre en liste de points juridiques ou en checklist.",
	"Ne pas recopier mot pour mot les exemples de référence.",
	"Ne pas remplacer la paire demandée par un texte libre, une checklist ou un pseudo-format.",
}
