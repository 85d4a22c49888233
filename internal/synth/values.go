package synth

import (
	"math/rand"
	"slices"
	"strings"

	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

// nameForPath resolves which cast member a name leaf refers to, based
// on the surrounding schema branch.
func (c *EntityContext) nameForPath(path schema.Path, rng *rand.Rand) string {
	switch {
	case path.Contains("defunt"):
		return c.DefuntName
	case path.Contains("partenaire"):
		return c.PartnerName
	case path.Contains("enfants"):
		return c.ChildNames[0]
	case path.Contains("petits_enfants"):
		return c.ChildNames[1]
	case path.Contains("beneficiaires") || path.Contains("beneficiaire_noms") || strings.Contains(path.LeafKey(), "beneficiaire"):
		pool := []string{c.PartnerName, c.ChildNames[0], c.ChildNames[1], c.DefuntName}
		return pool[rng.Intn(len(pool))]
	}
	return c.FreshName(rng)
}

// leafValue draws a plausible value for one schema leaf, keyed on the
// leaf name and its branch so the payload reads like a real dossier.
func (c *EntityContext) leafValue(path schema.Path, spec schema.LeafSpec, rng *rand.Rand) *types.Value {
	key := strings.ToLower(path.LeafKey())

	if len(spec.Enum) > 0 {
		if key == "statut_matrimonial" && slices.Contains(spec.Enum, c.StatutMatrimonial) {
			return types.String(c.StatutMatrimonial)
		}
		if key == "type" && path.Contains("lien") {
			switch {
			case c.StatutMatrimonial == "MARIE" && slices.Contains(spec.Enum, "CONJOINT"):
				return types.String("CONJOINT")
			case c.StatutMatrimonial == "PACSE" && slices.Contains(spec.Enum, "PARTENAIRE_PACS"):
				return types.String("PARTENAIRE_PACS")
			case slices.Contains(spec.Enum, "CONCUBIN"):
				return types.String("CONCUBIN")
			}
		}
		return types.String(spec.Enum[rng.Intn(len(spec.Enum))])
	}

	switch spec.ExpectedType() {
	case "boolean":
		if key == "existe" {
			return types.Boolean(rng.Float64() < 0.78)
		}
		return types.Boolean(rng.Float64() < 0.55)
	case "number":
		return types.Int(c.numberValue(path, key, rng))
	}
	return types.String(c.stringValue(path, key, rng))
}

func (c *EntityContext) numberValue(path schema.Path, key string, rng *rand.Rand) int {
	switch {
	case strings.Contains(key, "age"):
		if path.Contains("defunt") {
			return randIntBetween(rng, 55, 94)
		}
		return randIntBetween(rng, 18, 92)
	case strings.Contains(key, "duree") || strings.Contains(key, "anciennete"):
		return randIntBetween(rng, 1, 25)
	case strings.Contains(key, "mois"):
		return randIntBetween(rng, 1, 48)
	case strings.Contains(key, "loyers_encaisses") || strings.Contains(key, "charges_reglees"):
		return randIntBetween(rng, 0, 250_000)
	case strings.Contains(key, "valeur") || strings.Contains(key, "montant") ||
		strings.Contains(key, "capital") || strings.Contains(key, "creance") ||
		strings.Contains(key, "prix") || strings.Contains(key, "travaux"):
		return randIntBetween(rng, 1_000, 900_000)
	}
	return randIntBetween(rng, 1, 1000)
}

func (c *EntityContext) stringValue(path schema.Path, key string, rng *rand.Rand) string {
	switch {
	case key == "nom" || strings.HasSuffix(key, "_nom") || strings.HasSuffix(key, "_noms"):
		if strings.Contains(key, "creancier") {
			return creditors[rng.Intn(len(creditors))]
		}
		return c.nameForPath(path, rng)
	case strings.Contains(key, "date"):
		return randomISODate(rng, 2005, 2026)
	case strings.Contains(key, "residence_habituelle"):
		return pick(rng, "France", "Belgique", "Espagne", "Suisse")
	case strings.Contains(key, "nationalite"):
		return pick(rng, "Française", "Belge", "Espagnole", "Suisse")
	case strings.Contains(key, "loi_designee") || strings.Contains(key, "loi_applicable"):
		return "Loi française"
	case strings.Contains(key, "libelle") || strings.Contains(key, "description") || strings.Contains(key, "motif"):
		return c.labelValue(path, key, rng)
	case strings.Contains(key, "localisation"):
		return cities[rng.Intn(len(cities))]
	}
	return cities[rng.Intn(len(cities))]
}

func (c *EntityContext) labelValue(path schema.Path, key string, rng *rand.Rand) string {
	switch {
	case path.Contains("actifs"):
		return pick(rng,
			"Maison à "+cities[rng.Intn(len(cities))],
			"Appartement à "+cities[rng.Intn(len(cities))],
			"Terrain à "+cities[rng.Intn(len(cities))],
			"Résidence secondaire à "+cities[rng.Intn(len(cities))],
			"Compte bancaire (banque "+banks[rng.Intn(len(banks))]+")",
			"Parts "+companies[rng.Intn(len(companies))],
		)
	case path.Contains("passifs"):
		return pick(rng, "Emprunt bancaire", "Impôt", "Facture prestataire")
	case path.Contains("contrats"):
		return "Contrat " + insurers[rng.Intn(len(insurers))]
	case strings.Contains(key, "motif"):
		return pick(rng, "Travaux financés par un seul héritier", "Occupation exclusive du bien", "Avance de frais de succession")
	}
	return pick(rng,
		"Maison à "+cities[rng.Intn(len(cities))],
		"Appartement à "+cities[rng.Intn(len(cities))],
		"Bien à "+cities[rng.Intn(len(cities))],
		"Parts "+companies[rng.Intn(len(companies))],
	)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

func randIntBetween(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low+1)
}
