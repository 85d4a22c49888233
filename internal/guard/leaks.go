package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// Narratives must read like a person wrote them. These patterns catch
// the typical ways a structured target leaks into the prose.
var (
	snakeCaseRE      = regexp.MustCompile(`\b[a-z]+_[a-z_]+\b`)
	capsUnderscoreRE = regexp.MustCompile(`\b[A-Z]{2,}(?:_[A-Z0-9]{2,})+\b`)
	sourceBoolRE     = regexp.MustCompile(`\b(?:True|False)\b`)
	pathDumpRE       = regexp.MustCompile(`\s>\s`)
	enumTokenRE      = regexp.MustCompile(`\b(?:CELIBATAIRE|MARIE|PACSE|DIVORCE|VEUF|JOURS|MOIS|ANNEES)\b`)
	schemaPhraseRE   = regexp.MustCompile(`(?i)\b(?:famille\s+defunt|contexte\s+procedure|patrimoine\s+actifs?|liberalites?\s+donations?)\b`)
	defuntFieldsRE   = regexp.MustCompile(`(?i)\bdefunt\s+(?:date\s+deces|date\s+naissance|age\s+au\s+deces)\b`)
)

const (
	maxSemicolons = 10
	maxColons     = 10
)

// CheckLeaks rejects a narrative whose text echoes the structured
// target instead of telling the story.
func CheckLeaks(caseText string) error {
	if snakeCaseRE.MatchString(caseText) {
		return fmt.Errorf("format invalide: ne pas inclure de clés internes en snake_case dans l'énoncé (ex: statut_matrimonial, option_successorale)")
	}
	if token := capsUnderscoreRE.FindString(caseText); token != "" {
		return fmt.Errorf("format invalide: ne pas inclure de codes en MAJUSCULES_AVEC_UNDERSCORE dans l'énoncé (reçu: %q), traduire en français naturel", token)
	}
	if sourceBoolRE.MatchString(caseText) {
		return fmt.Errorf("format invalide: ne pas inclure de booléens bruts ('True'/'False') dans l'énoncé, utiliser une formulation française (oui/non)")
	}
	if pathDumpRE.MatchString(caseText) {
		return fmt.Errorf("format invalide: ne pas inclure de chemins type 'famille > defunt > ...' dans l'énoncé, reformuler en phrases françaises")
	}
	if enumTokenRE.MatchString(caseText) {
		return fmt.Errorf("format invalide: ne pas inclure de tokens d'énumération en majuscules (ex: CELIBATAIRE, JOURS, MOIS), traduire en français naturel")
	}
	if schemaPhraseRE.MatchString(caseText) || defuntFieldsRE.MatchString(caseText) {
		return fmt.Errorf("format invalide: l'énoncé ressemble à un dump de champs, reformuler en français naturel")
	}
	if strings.Count(caseText, ";") > maxSemicolons {
		return fmt.Errorf("format invalide: trop de séparateurs ';' (probable dump de champs), limite: %d", maxSemicolons)
	}
	if strings.Count(caseText, ":") > maxColons {
		return fmt.Errorf("format invalide: trop de séparateurs ':' (probable dump de champs), limite: %d", maxColons)
	}
	return nil
}
