package validation

import (
	"fmt"
	"math"

	"github.com/jonathan/caseforge/internal/repair"
	"github.com/jonathan/caseforge/internal/types"
)

// CheckBusinessCoherence enforces the domain rules a notary would spot
// immediately: marital status must match the partner link, ages must
// agree with birth and death dates, insurance and donation blocks must
// be self-consistent, and the planned topic must have substance.
func CheckBusinessCoherence(payload *types.Value, d types.Dimensions) error {
	var problems []string

	famille := payload.Get("famille")
	var defunt, partenaire *types.Value
	if famille != nil && famille.Kind == types.KindObject {
		defunt = famille.Get("defunt")
		partenaire = famille.Get("partenaire")
	}

	defuntName := ""
	statut := ""
	if defunt != nil && defunt.Kind == types.KindObject {
		defuntName = defunt.StringAt("nom")
		statut = defunt.StringAt("statut_matrimonial")
	}
	if defuntName == "" {
		problems = append(problems, "défunt.nom manquant")
	}

	partnerLink := ""
	hasPartner := partenaire != nil && partenaire.Kind == types.KindObject
	if hasPartner {
		if lien := partenaire.Get("lien"); lien != nil && lien.Kind == types.KindObject {
			partnerLink = lien.StringAt("type")
		}
	}
	switch statut {
	case "MARIE":
		if !hasPartner {
			problems = append(problems, "statut MARIE sans partenaire")
		}
		if partnerLink != "CONJOINT" {
			problems = append(problems, "statut MARIE incohérent avec partenaire.lien.type")
		}
	case "PACSE":
		if !hasPartner {
			problems = append(problems, "statut PACSE sans partenaire")
		}
		if partnerLink != "PARTENAIRE_PACS" {
			problems = append(problems, "statut PACSE incohérent avec partenaire.lien.type")
		}
	case "CELIBATAIRE", "DIVORCE", "VEUF":
		if partnerLink == "CONJOINT" {
			problems = append(problems, "statut sans conjoint incohérent avec partenaire CONJOINT")
		}
	}

	problems = append(problems, personProblems(payload)...)
	problems = append(problems, insuranceProblems(payload, defuntName)...)
	problems = append(problems, donationProblems(payload)...)
	problems = append(problems, patrimoineProblems(payload)...)
	problems = append(problems, topicSubstanceProblems(payload, d.PrimaryTopic)...)

	return reject("target généré incohérent métier", problems)
}

func personProblems(payload *types.Value) []string {
	var problems []string
	for _, record := range repair.CollectPersonRecords(payload) {
		age, hasAge := record.Node.NumberAt("age_au_deces")
		minor, hasMinor := record.Node.BoolAt("est_mineur")
		if hasAge {
			if age < 0 || age > 125 {
				problems = append(problems, "age hors plage à "+record.Label)
			}
			if hasMinor {
				if minor && age >= 18 {
					problems = append(problems, "est_mineur incohérent avec âge à "+record.Label)
				}
				if !minor && age < 18 {
					problems = append(problems, "est_mineur incohérent avec âge à "+record.Label)
				}
			}
		}
		birth, hasBirth := repair.ParseISODate(record.Node.StringAt("date_naissance"))
		ref, hasRef := repair.ParseISODate(record.RefDeath)
		if hasBirth && hasRef {
			if birth.After(ref) {
				problems = append(problems, "date_naissance postérieure au décès à "+record.Label)
			} else if hasAge {
				computed := repair.YearsBetween(birth, ref)
				if math.Abs(math.Round(age)-float64(computed)) > 1 {
					problems = append(problems, "age/date incohérent à "+record.Label)
				}
			}
		}
	}
	return problems
}

func insuranceProblems(payload *types.Value, defuntName string) []string {
	var problems []string
	contracts := arrayAt(payload, "assurance_vie", "contrats")
	if contracts == nil {
		return nil
	}
	for idx, contract := range contracts.Arr {
		if contract == nil || contract.Kind != types.KindObject {
			continue
		}
		if assured := contract.StringAt("assure_nom"); defuntName != "" && assured != "" && assured != defuntName {
			problems = append(problems, fmt.Sprintf("assurance_vie.contrats[%d].assure_nom != défunt.nom", idx))
		}
		versements := contract.Get("versements")
		if versements == nil || versements.Kind != types.KindArray {
			continue
		}
		for vidx, versement := range versements.Arr {
			if versement == nil || versement.Kind != types.KindObject {
				continue
			}
			age, hasAge := versement.NumberAt("age_assure_au_versement")
			after, hasAfter := versement.BoolAt("apres_70_ans")
			if hasAge && hasAfter {
				if age >= 70 && !after {
					problems = append(problems, fmt.Sprintf("versement[%d] incohérent: age >= 70 mais apres_70_ans=false", vidx))
				}
				if age < 70 && after {
					problems = append(problems, fmt.Sprintf("versement[%d] incohérent: age < 70 mais apres_70_ans=true", vidx))
				}
			}
		}
	}
	return problems
}

func donationProblems(payload *types.Value) []string {
	var problems []string
	donations := arrayAt(payload, "liberalites", "donations")
	if donations == nil {
		return nil
	}
	for idx, donation := range donations.Arr {
		if donation == nil || donation.Kind != types.KindObject {
			continue
		}
		donor := donation.StringAt("donateur_nom")
		beneficiary := donation.StringAt("beneficiaire_nom")
		if donor != "" && donor == beneficiary {
			problems = append(problems, fmt.Sprintf("donation[%d] donateur == beneficiaire", idx))
		}
	}
	return problems
}

func patrimoineProblems(payload *types.Value) []string {
	var problems []string
	for _, bloc := range []string{"actifs", "passifs"} {
		items := arrayAt(payload, "patrimoine", bloc)
		if items == nil {
			continue
		}
		for idx, item := range items.Arr {
			if item == nil || item.Kind != types.KindObject {
				continue
			}
			if valeur, present := item.NumberAt("valeur"); present && valeur <= 0 {
				problems = append(problems, fmt.Sprintf("%s[%d] valeur <= 0", bloc[:len(bloc)-1], idx))
			}
		}
	}
	return problems
}

func topicSubstanceProblems(payload *types.Value, primaryTopic string) []string {
	var problems []string
	switch primaryTopic {
	case "assurance_vie":
		if contracts := arrayAt(payload, "assurance_vie", "contrats"); contracts == nil || len(contracts.Arr) == 0 {
			problems = append(problems, "topic assurance_vie sans contrat")
		}
	case "donations_reduction":
		if donations := arrayAt(payload, "liberalites", "donations"); donations == nil || len(donations.Arr) == 0 {
			problems = append(problems, "topic donations_reduction sans donation")
		}
	case "entreprise_dutreil":
		actifs := arrayAt(payload, "patrimoine", "actifs")
		if actifs == nil || len(actifs.Arr) == 0 {
			problems = append(problems, "topic entreprise_dutreil sans actif")
			break
		}
		hasCompany := false
		for _, actif := range actifs.Arr {
			if actif != nil && actif.Kind == types.KindObject {
				if company := actif.Get("entreprise"); company != nil && company.Kind == types.KindObject {
					hasCompany = true
					break
				}
			}
		}
		if !hasCompany {
			problems = append(problems, "topic entreprise_dutreil sans bloc entreprise")
		}
	}
	return problems
}

func arrayAt(payload *types.Value, root, key string) *types.Value {
	parent := payload.Get(root)
	if parent == nil || parent.Kind != types.KindObject {
		return nil
	}
	child := parent.Get(key)
	if child == nil || child.Kind != types.KindArray {
		return nil
	}
	return child
}
