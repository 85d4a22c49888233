// Package prompt renders the French authoring instructions handed to
// narrative authors, from dimension labels to the final prompt text.
package prompt

var personaLabels = map[string]string{
	"enfant":           "un enfant du défunt",
	"conjoint":         "le conjoint survivant",
	"beau_enfant":      "un beau-fils ou une belle-fille",
	"fratrie":          "un frère ou une sœur",
	"notaire":          "un notaire ou un clerc",
	"avocat":           "un avocat en contentieux",
	"partenaire_pacs":  "le partenaire de PACS",
	"concubin":         "le concubin ou la concubine",
	"associe":          "un associé ou coindivisaire",
	"petit_enfant":     "un petit-enfant",
	"tiers":            "un voisin, aidant ou proche extérieur",
	"narrateur_neutre": "un narrateur externe neutre",
}

var voiceLabels = map[string]string{
	"premiere_personne":  "à la première personne",
	"troisieme_personne": "à la troisième personne",
	"note_dossier":       "en note de dossier",
	"parole_rapportee":   "en parole rapportée",
}

var formatLabels = map[string]string{
	"question_directe":     "question directe courte",
	"mail_brouillon":       "mail brouillon ou message client",
	"recit_libre":          "récit libre",
	"note_professionnelle": "synthèse professionnelle",
	"oral_retranscrit":     "oral retranscrit avec ponctuation irrégulière",
	"message_conflictuel":  "message conflictuel ou familial tendu",
}

var lengthLabels = map[string]string{
	"court":     "court (1 à 3 phrases)",
	"moyen":     "moyen (un paragraphe net)",
	"long":      "long (paragraphe dense ou deux blocs)",
	"tres_long": "très long (cas détaillé quasi dossier)",
}

var noiseLabels = map[string]string{
	"propre":                 "français propre, quasiment sans bruit",
	"legeres_fautes":         "1 ou 2 fautes crédibles",
	"fautes_et_abreviations": "fautes légères + abréviations réalistes",
	"ambigu":                 "formulation floue avec zones d'ombre",
	"tres_brouillon":         "message très brouillon mais compréhensible",
}

var numericLabels = map[string]string{
	"sans_montant":       "aucun montant obligatoire",
	"un_montant":         "au moins un montant ou une valeur approximative",
	"plusieurs_montants": "plusieurs montants ou valorisations",
	"montants_et_dates":  "montants + au moins une date utile",
}

var datePrecisionLabels = map[string]string{
	"aucune": "aucune date imposée",
	"approx": "repères temporels approximatifs",
	"exacte": "au moins une date exacte",
}

var complexityLabels = map[string]string{
	"simple":        "cas simple",
	"intermediaire": "cas intermédiaire",
	"complexe":      "cas complexe",
	"hard_negative": "hard negative volontaire",
}

var hardNegativeLabels = map[string]string{
	"pas_de_deces_clair":          "faux ami sans décès clairement exploitable",
	"infos_incompletes":           "dossier incomplet avec infos majeures manquantes",
	"faits_contradictoires":       "faits contradictoires ou incohérents",
	"hors_perimetre_mal_qualifie": "hors périmètre ou mal qualifié mais proche de la succession",
}

var hardNegativeIntensityLabels = map[string]string{
	"soft": "hard negative léger, très proche d'un vrai cas",
	"hard": "hard negative dur, plus piégeux et plus bruité",
}
