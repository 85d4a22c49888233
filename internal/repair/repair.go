// Package repair normalizes synthesized payloads so they satisfy the
// domain coherence rules before validation. Applying it twice yields
// the same tree, existing values win over drawn defaults.
package repair

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jonathan/caseforge/internal/synth"
	"github.com/jonathan/caseforge/internal/types"
)

var regimeTypes = []string{
	"COMMUNAUTE_REDUITE_AUX_ACQUETS",
	"SEPARATION_DE_BIENS",
	"COMMUNAUTE_UNIVERSELLE",
	"PARTICIPATION_AUX_ACQUETS",
}

// Repair harmonizes a payload in place: cast names are forced from the
// entity context, every person's birth date is derived from their age
// against the death date, marital blocks match the deceased's status
// and topic-driven blocks get their required defaults.
func Repair(payload *types.Value, d types.Dimensions, ctx *synth.EntityContext, rng *rand.Rand) {
	famille := ensureObject(payload, "famille")
	defunt := ensureObject(famille, "defunt")

	statut := defunt.StringAt("statut_matrimonial")
	if statut == "" {
		statut = ctx.StatutMatrimonial
	}
	if statut == "" {
		statut = "CELIBATAIRE"
	}
	defunt.Set("nom", types.String(ctx.DefuntName))
	defunt.Set("statut_matrimonial", types.String(statut))

	death, ok := ParseISODate(defunt.StringAt("date_deces"))
	if !ok {
		death, _ = ParseISODate(randomISODate(rng, 2023, 2026))
	}
	defunt.Set("date_deces", types.String(death.Format("2006-01-02")))
	harmonizePerson(defunt, death, 62+rng.Intn(29), 35, 105, false)
	if handicap, present := defunt.BoolAt("est_handicape"); present {
		defunt.Set("est_handicape", types.Boolean(handicap))
	}

	repairRegime(defunt, statut, rng)
	repairPartner(famille, defunt, statut, death, ctx, rng)
	repairDescendants(famille, defunt, death, d.PrimaryTopic, ctx, rng)
	harmonizeRemainingPersons(payload, death)
	repairInsurance(payload, death, d.PrimaryTopic, ctx, rng)
	repairTopicBlocks(payload, d.PrimaryTopic, ctx)
	repairMonetaryValues(payload)
}

// harmonizePerson clamps the age, rewrites the birth date from it, and
// keeps minority and succession option flags consistent.
func harmonizePerson(person *types.Value, refDate time.Time, defaultAge, minAge, maxAge int, canBeMinor bool) {
	age := defaultAge
	if raw, present := person.NumberAt("age_au_deces"); present {
		age = int(raw + 0.5)
	}
	age = clamp(age, minAge, maxAge)
	person.Set("age_au_deces", types.Int(age))
	person.Set("date_naissance", types.String(birthFromAge(refDate, age).Format("2006-01-02")))
	if _, present := person.BoolAt("est_mineur"); present {
		person.Set("est_mineur", types.Boolean(canBeMinor && age < 18))
	}

	option := person.StringAt("option_successorale")
	if deceased, present := person.BoolAt("est_decede"); present {
		if deceased && option != "PREDECEDE" {
			person.Set("option_successorale", types.String("PREDECEDE"))
		}
		if !deceased && option == "PREDECEDE" {
			person.Set("option_successorale", types.String("ACCEPTE"))
		}
	}
}

func repairRegime(defunt *types.Value, statut string, rng *rand.Rand) {
	regime := defunt.Get("regime_matrimonial")
	if regime == nil || regime.Kind != types.KindObject {
		return
	}
	// A regime only makes sense inside a marriage context.
	if statut == "CELIBATAIRE" || statut == "PACSE" || statut == "DIVORCE" {
		defunt.Delete("regime_matrimonial")
		return
	}
	if regime.Get("participation") != nil {
		regime.Set("type", types.String("PARTICIPATION_AUX_ACQUETS"))
	}
	if regime.StringAt("type") == "" {
		if full, _ := regime.BoolAt("clause_attribution_integrale"); full {
			regime.Set("type", types.String("COMMUNAUTE_UNIVERSELLE"))
		} else {
			regime.Set("type", types.String(regimeTypes[rng.Intn(len(regimeTypes))]))
		}
	}
}

func repairPartner(famille, defunt *types.Value, statut string, death time.Time, ctx *synth.EntityContext, rng *rand.Rand) {
	partenaire := famille.Get("partenaire")
	if statut == "MARIE" || statut == "PACSE" {
		if partenaire == nil || partenaire.Kind != types.KindObject {
			partenaire = types.Object()
			famille.Set("partenaire", partenaire)
		}
		partenaire.Set("nom", types.String(ctx.PartnerName))
		lien := ensureObject(partenaire, "lien")
		if statut == "MARIE" {
			lien.Set("type", types.String("CONJOINT"))
		} else {
			lien.Set("type", types.String("PARTENAIRE_PACS"))
		}
		defaultAge := 75
		if raw, present := defunt.NumberAt("age_au_deces"); present {
			defaultAge = clamp(int(raw+0.5), 40, 105)
		}
		harmonizePerson(partenaire, death, defaultAge-4, 18, 105, false)
		return
	}
	if partenaire != nil && partenaire.Kind == types.KindObject {
		partenaire.Set("nom", types.String(ctx.PartnerName))
		if lien := partenaire.Get("lien"); lien != nil && lien.Kind == types.KindObject {
			if t := lien.StringAt("type"); t == "CONJOINT" || t == "PARTENAIRE_PACS" {
				lien.Set("type", types.String("CONCUBIN"))
			}
		}
		harmonizePerson(partenaire, death, 60, 18, 100, false)
	}
}

func repairDescendants(famille, defunt *types.Value, death time.Time, primaryTopic string, ctx *synth.EntityContext, rng *rand.Rand) {
	needsChildren := primaryTopic == "ordre_heritiers" || primaryTopic == "famille_recomposee" ||
		primaryTopic == "donations_reduction" || primaryTopic == "testament_legs"

	descendants := famille.Get("descendants")
	if descendants == nil || descendants.Kind != types.KindObject {
		if !needsChildren {
			return
		}
		descendants = types.Object()
		famille.Set("descendants", descendants)
	}

	children := descendants.Get("enfants")
	if needsChildren && (children == nil || children.Kind != types.KindArray || len(children.Arr) == 0) {
		children = types.Array()
		child := types.Object()
		child.Set("nom", types.String(ctx.ChildNames[0]))
		children.Append(child)
		descendants.Set("enfants", children)
	}
	if children != nil && children.Kind == types.KindArray {
		defuntAge := 75
		if raw, present := defunt.NumberAt("age_au_deces"); present {
			defuntAge = clamp(int(raw+0.5), 35, 105)
		}
		maxChildAge := clamp(defuntAge-14, 1, 75)
		for idx, child := range children.Arr {
			if child == nil || child.Kind != types.KindObject {
				child = types.Object()
				children.Arr[idx] = child
			}
			child.Set("nom", types.String(ctx.ChildNames[idx%len(ctx.ChildNames)]))
			defaultAge := 2 + rng.Intn(max(1, maxChildAge-1))
			harmonizePerson(child, death, defaultAge, 0, maxChildAge, true)
			if _, present := child.BoolAt("est_decede"); !present {
				child.Set("est_decede", types.Boolean(false))
			}
			if primaryTopic == "famille_recomposee" {
				child.Set("est_d_une_precedente_union", types.Boolean(idx == 0))
			}
		}
	}

	if grandChildren := descendants.Get("petits_enfants"); grandChildren != nil && grandChildren.Kind == types.KindArray {
		for idx, gc := range grandChildren.Arr {
			if gc == nil || gc.Kind != types.KindObject {
				gc = types.Object()
				grandChildren.Arr[idx] = gc
			}
			harmonizePerson(gc, death, rng.Intn(36), 0, 55, true)
			if gc.StringAt("nom") == "" {
				gc.Set("nom", types.String(ctx.ChildNames[1]))
			}
			if gc.StringAt("parent_nom") == "" {
				gc.Set("parent_nom", types.String(ctx.ChildNames[0]))
			}
		}
	}
	if len(descendants.Obj) == 0 {
		famille.Delete("descendants")
	}
}

// harmonizeRemainingPersons is a safety pass keeping every person block
// date/age coherent, whatever branch created it.
func harmonizeRemainingPersons(payload *types.Value, death time.Time) {
	for _, record := range CollectPersonRecords(payload) {
		if record.Label == "famille.defunt" || record.Label == "famille.partenaire" {
			continue
		}
		switch {
		case strings.HasPrefix(record.Label, "famille.descendants"):
			harmonizePerson(record.Node, death, currentAge(record.Node, 25), 0, 75, true)
		case strings.HasPrefix(record.Label, "famille.ascendants"):
			harmonizePerson(record.Node, death, currentAge(record.Node, 82), 40, 110, false)
		case strings.HasPrefix(record.Label, "famille.collateraux"):
			minor := strings.Contains(record.Label, "neveux_nieces")
			harmonizePerson(record.Node, death, currentAge(record.Node, 48), 0, 100, minor)
		}
	}
}

func repairInsurance(payload *types.Value, death time.Time, primaryTopic string, ctx *synth.EntityContext, rng *rand.Rand) {
	av := payload.Get("assurance_vie")
	if primaryTopic == "assurance_vie" && (av == nil || av.Kind != types.KindObject) {
		av = types.Object()
		payload.Set("assurance_vie", av)
	}
	if av == nil || av.Kind != types.KindObject {
		return
	}
	contracts := av.Get("contrats")
	if primaryTopic == "assurance_vie" && (contracts == nil || contracts.Kind != types.KindArray || len(contracts.Arr) == 0) {
		contracts = types.Array()
		contract := types.Object()
		contract.Set("libelle", types.String("Contrat "+insurerName(rng)))
		contract.Set("assure_nom", types.String(ctx.DefuntName))
		contracts.Append(contract)
		av.Set("contrats", contracts)
	}
	if contracts == nil || contracts.Kind != types.KindArray {
		return
	}
	for idx, contract := range contracts.Arr {
		if contract == nil || contract.Kind != types.KindObject {
			contract = types.Object()
			contracts.Arr[idx] = contract
		}
		if contract.StringAt("libelle") == "" {
			contract.Set("libelle", types.String("Contrat "+insurerName(rng)))
		}
		contract.Set("assure_nom", types.String(ctx.DefuntName))

		// Subscription must predate the death.
		subscription, ok := ParseISODate(contract.StringAt("date_souscription"))
		if !ok || !subscription.Before(death) {
			yearMin := max(1970, death.Year()-25)
			year := yearMin + rng.Intn(max(1, death.Year()-yearMin))
			subscription = time.Date(year, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		}
		contract.Set("date_souscription", types.String(subscription.Format("2006-01-02")))

		if versements := contract.Get("versements"); versements != nil && versements.Kind == types.KindArray {
			for vidx, versement := range versements.Arr {
				if versement == nil || versement.Kind != types.KindObject {
					versement = types.Object()
					versements.Arr[vidx] = versement
				}
				age := 35 + rng.Intn(51)
				if raw, present := versement.NumberAt("age_assure_au_versement"); present {
					age = clamp(int(raw+0.5), 18, 100)
				}
				versement.Set("age_assure_au_versement", types.Int(age))
				versement.Set("apres_70_ans", types.Boolean(age >= 70))
			}
		}
	}
}

func repairTopicBlocks(payload *types.Value, primaryTopic string, ctx *synth.EntityContext) {
	switch primaryTopic {
	case "entreprise_dutreil":
		patrimoine := ensureObject(payload, "patrimoine")
		actifs := patrimoine.Get("actifs")
		if actifs == nil || actifs.Kind != types.KindArray || len(actifs.Arr) == 0 {
			actifs = types.Array()
			actifs.Append(types.Object())
			patrimoine.Set("actifs", actifs)
		}
		first := actifs.Arr[0]
		if first == nil || first.Kind != types.KindObject {
			first = types.Object()
			actifs.Arr[0] = first
		}
		if first.StringAt("type") == "" {
			first.Set("type", types.String("ENTREPRISE"))
		}
		entreprise := ensureObject(first, "entreprise")
		if entreprise.StringAt("type") == "" {
			entreprise.Set("type", types.String("PME"))
		}
		entreprise.Set("est_presente_comme_eligible_dutreil", types.Boolean(true))

	case "donations_reduction":
		liberalites := ensureObject(payload, "liberalites")
		donations := liberalites.Get("donations")
		if donations == nil || donations.Kind != types.KindArray || len(donations.Arr) == 0 {
			donations = types.Array()
			donations.Append(types.Object())
			liberalites.Set("donations", donations)
		}
		first := donations.Arr[0]
		if first == nil || first.Kind != types.KindObject {
			first = types.Object()
			donations.Arr[0] = first
		}
		if first.StringAt("donateur_nom") == "" {
			first.Set("donateur_nom", types.String(ctx.DefuntName))
		}
		if first.StringAt("beneficiaire_nom") == "" || first.StringAt("beneficiaire_nom") == first.StringAt("donateur_nom") {
			first.Set("beneficiaire_nom", types.String(ctx.ChildNames[0]))
		}
		if first.StringAt("type") == "" {
			first.Set("type", types.String("DONATION_SIMPLE"))
		}
	}
}

// repairMonetaryValues flips non-positive asset and debt values, a
// dossier never lists a zero or negative valuation.
func repairMonetaryValues(payload *types.Value) {
	patrimoine := payload.Get("patrimoine")
	if patrimoine == nil || patrimoine.Kind != types.KindObject {
		return
	}
	for _, bloc := range []string{"actifs", "passifs"} {
		items := patrimoine.Get(bloc)
		if items == nil || items.Kind != types.KindArray {
			continue
		}
		for _, item := range items.Arr {
			if item == nil || item.Kind != types.KindObject {
				continue
			}
			if valeur, present := item.NumberAt("valeur"); present && valeur <= 0 {
				item.Set("valeur", types.Number(-valeur+1))
			}
		}
	}
}

func ensureObject(parent *types.Value, key string) *types.Value {
	child := parent.Get(key)
	if child == nil || child.Kind != types.KindObject {
		child = types.Object()
		parent.Set(key, child)
	}
	return child
}

func birthFromAge(refDate time.Time, age int) time.Time {
	year := max(1900, refDate.Year()-age)
	day := min(refDate.Day(), 28)
	return time.Date(year, refDate.Month(), day, 0, 0, 0, 0, time.UTC)
}

func currentAge(person *types.Value, fallback int) int {
	if raw, present := person.NumberAt("age_au_deces"); present {
		return int(raw + 0.5)
	}
	return fallback
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func insurerName(rng *rand.Rand) string {
	options := []string{"Generali", "AXA", "MAIF", "Credit Agricole Predica", "CNP Assurances"}
	return options[rng.Intn(len(options))]
}

func randomISODate(rng *rand.Rand, yearMin, yearMax int) string {
	year := yearMin + rng.Intn(yearMax-yearMin+1)
	return fmt.Sprintf("%04d-%02d-%02d", year, 1+rng.Intn(12), 1+rng.Intn(28))
}
