package synth

import (
	"fmt"
	"math/rand"
)

var firstNames = []string{
	"Jean", "Marie", "Claire", "Thomas", "Camille", "Hugo", "Lucie",
	"Nicolas", "Sophie", "Julien", "Emma", "Paul", "Lea", "Antoine",
}

var lastNames = []string{
	"Durand", "Morel", "Lefevre", "Martin", "Roux", "Bernard",
	"Petit", "Garcia", "Thomas", "Robert", "Leroy", "Girard",
}

var cities = []string{
	"Paris", "Lyon", "Marseille", "Nantes", "Bordeaux", "Lille",
	"Toulouse", "Montpellier", "Grenoble",
}

var companies = []string{
	"SARL Atelier Delta", "SAS Nova Conseil", "SCI Les Tilleuls",
	"SARL Horizon Bois", "SAS Aquila Services",
}

var insurers = []string{
	"Generali", "AXA", "MAIF", "Credit Agricole Predica", "CNP Assurances",
}

var creditors = []string{
	"Trésor Public", "Banque Populaire", "URSSAF", "EDF",
}

var banks = []string{"BNP", "SG", "CA", "BP"}

// EntityContext holds the cast of one synthesized case so every block
// of the payload refers to the same people.
type EntityContext struct {
	DefuntName        string
	PartnerName       string
	ChildNames        [2]string
	StatutMatrimonial string

	used map[string]struct{}
}

// NewEntityContext draws a fresh cast. Names are unique within a case.
func NewEntityContext(rng *rand.Rand) *EntityContext {
	ctx := &EntityContext{used: make(map[string]struct{})}
	ctx.DefuntName = ctx.FreshName(rng)
	ctx.PartnerName = ctx.FreshName(rng)
	ctx.ChildNames[0] = ctx.FreshName(rng)
	ctx.ChildNames[1] = ctx.FreshName(rng)
	return ctx
}

// FreshName returns a name not yet used in this case.
func (c *EntityContext) FreshName(rng *rand.Rand) string {
	for range 200 {
		candidate := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		if _, taken := c.used[candidate]; !taken {
			c.used[candidate] = struct{}{}
			return candidate
		}
	}
	fallback := fmt.Sprintf("Personne %d", len(c.used)+1)
	c.used[fallback] = struct{}{}
	return fallback
}

// randomISODate draws a day in [yearMin, yearMax], capped at day 28 so
// every month is valid.
func randomISODate(rng *rand.Rand, yearMin, yearMax int) string {
	year := yearMin + rng.Intn(yearMax-yearMin+1)
	month := 1 + rng.Intn(12)
	day := 1 + rng.Intn(28)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
