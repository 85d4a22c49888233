package prompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/caseforge/internal/types"
)

// Render builds the full French authoring prompt for a planned
// instruction: dimension summary, mandatory elements, prohibitions and
// optional style references.
func Render(d types.Dimensions, examples []types.ReferenceExample, mustInclude, mustAvoid []string) string {
	lines := []string{
		"Génère uniquement un énoncé (case_text) pour un cas de succession en français.",
		fmt.Sprintf("Persona : %s.", personaLabels[d.Persona]),
		fmt.Sprintf("Tournure : %s.", voiceLabels[d.Voice]),
		fmt.Sprintf("Format : %s.", formatLabels[d.Format]),
		fmt.Sprintf("Longueur visée : %s.", lengthLabels[d.LengthBand]),
		fmt.Sprintf("Niveau de bruit : %s.", noiseLabels[d.Noise]),
		fmt.Sprintf("Densité chiffrée : %s.", numericLabels[d.NumericDensity]),
		fmt.Sprintf("Précision temporelle : %s.", datePrecisionLabels[d.DatePrecision]),
		fmt.Sprintf("Niveau : %s.", complexityLabels[d.Complexity]),
		fmt.Sprintf("Sujet principal : %s.", TopicTemplates[d.PrimaryTopic].Label),
	}
	if d.SecondaryTopic != "" {
		lines = append(lines, fmt.Sprintf("Sujet secondaire : %s.", TopicTemplates[d.SecondaryTopic].Label))
	}
	if d.HardNegativeMode != "" {
		lines = append(lines, fmt.Sprintf("Mode hard negative : %s.", hardNegativeLabels[d.HardNegativeMode]))
	}
	if d.HardNegativeIntensity != "" {
		lines = append(lines, fmt.Sprintf("Intensité hard negative : %s.", hardNegativeIntensityLabels[d.HardNegativeIntensity]))
	}
	lines = append(lines, "Contraintes :")
	for _, item := range mustInclude {
		lines = append(lines, "- "+item)
	}
	lines = append(lines, "À éviter :")
	for _, item := range mustAvoid {
		lines = append(lines, "- "+item)
	}
	lines = append(lines, "Sortie attendue : texte brut uniquement (l'énoncé), sans structure codée, sans analyse.")
	if len(examples) > 0 {
		lines = append(lines, "Repères de style (à ne pas recopier mot pour mot) :")
		for _, example := range examples {
			lines = append(lines, fmt.Sprintf("- [%s] %s", example.CaseID, example.Excerpt))
		}
	}
	return strings.Join(lines, "\n")
}

// AugmentWithTarget appends the encoded target and the rewriting rules
// that bind the narrative to it. The narrative must cover every fact in
// the target without echoing its structure.
func AugmentWithTarget(basePrompt, encodedTarget string) string {
	var lines []string
	if base := strings.TrimSpace(basePrompt); base != "" {
		lines = append(lines, base, "")
	}
	lines = append(lines,
		"Source de vérité des faits: la cible structurée ci-dessous.",
		"Règle A: chaque information présente dans la cible doit apparaître dans l'énoncé, mais reformulée en français naturel.",
		"  - Ne jamais recopier des codes d'énumération de la cible (ex: PARTENAIRE_PACS, NEVEU_NIECE, PROPRE_DEFUNT, IMPOT_SUCCESSION).",
		"  - Si une valeur ressemble à `MAJUSCULES_AVEC_UNDERSCORE`, tu dois la traduire en mots (sans underscores).",
		"  - Exemples: PARTENAIRE_PACS -> partenaire de PACS ; NEVEU_NIECE -> neveu / nièce ;",
		"    COMMUNAUTE_REDUITE_AUX_ACQUETS -> communauté réduite aux acquêts ; A_TITRE_UNIVERSEL -> à titre universel.",
		"Règle B: ne pas ajouter de nouvelles informations structurées (noms, dates, montants, liens, biens) absentes de la cible.",
		"Règle C: ne pas donner la solution juridique, seulement les faits.",
		"Règle D: ne pas recopier la structure ou les clés de la cible (pas de `snake_case`, pas de `champ: valeur`, pas de bloc encodé dans la réponse).",
		"Règle E: tu peux utiliser des sigles usuels (PACS, SCI, SARL, AV), mais pas des tokens en MAJUSCULES_AVEC_UNDERSCORE.",
		"Sortie attendue: texte brut uniquement (l'énoncé).",
		"",
		"CIBLE:",
		strings.TrimSpace(encodedTarget),
	)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
