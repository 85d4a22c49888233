package guard

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/types"
)

// similarityWarningThreshold flags near-duplicates that are still
// accepted, only an exact normalized match is fatal.
const similarityWarningThreshold = 0.72

const shortTextThreshold = 60

var digitRE = regexp.MustCompile(`\d`)

// Guard scores a submitted narrative against the seed corpus and all
// prior submissions.
type Guard struct {
	seeds []corpus.Seed
}

// New returns a guard backed by the reference corpus.
func New(seeds []corpus.Seed) *Guard {
	return &Guard{seeds: seeds}
}

// PriorCase is a previously accepted narrative used for duplicate
// detection.
type PriorCase struct {
	ID   string
	Text string
}

// Report measures the narrative and detects exact or near duplicates
// among seeds and prior submissions. Exact duplicates set the fatal
// flag on the report; the caller decides how to surface it.
func (g *Guard) Report(caseText string, prior []PriorCase) types.ValidationReport {
	normalized := corpus.NormalizeKey(caseText)
	textTokens := corpus.TokenSet(caseText)

	report := types.ValidationReport{
		WordCount:      len(strings.Fields(caseText)),
		CharCount:      len([]rune(caseText)),
		ContainsDigits: digitRE.MatchString(caseText),
	}

	for _, seed := range g.seeds {
		if normalized == corpus.NormalizeKey(seed.Text) {
			report.ExactDuplicate = true
			report.ClosestReference = seed.CaseID
			report.MaxSimilarity = 1.0
			break
		}
		if score := corpus.Jaccard(textTokens, corpus.TokenSet(seed.Text)); score > report.MaxSimilarity {
			report.MaxSimilarity = score
			report.ClosestReference = seed.CaseID
		}
	}
	if !report.ExactDuplicate {
		for _, existing := range prior {
			if normalized == corpus.NormalizeKey(existing.Text) {
				report.ExactDuplicate = true
				report.ClosestReference = existing.ID
				report.MaxSimilarity = 1.0
				break
			}
			if score := corpus.Jaccard(textTokens, corpus.TokenSet(existing.Text)); score > report.MaxSimilarity {
				report.MaxSimilarity = score
				report.ClosestReference = existing.ID
			}
		}
	}
	report.MaxSimilarity = math.Round(report.MaxSimilarity*10000) / 10000

	if report.ExactDuplicate {
		report.Warnings = append(report.Warnings, "doublon exact détecté")
	} else if report.MaxSimilarity >= similarityWarningThreshold {
		report.Warnings = append(report.Warnings, "cas très proche d'un cas existant")
	}
	if len([]rune(caseText)) < shortTextThreshold {
		report.Warnings = append(report.Warnings, "énoncé très court")
	}
	if snakeCaseRE.MatchString(caseText) {
		report.Warnings = append(report.Warnings, "le texte contient du 'snake_case' (probable recrachage de schéma)")
	}
	if capsUnderscoreRE.MatchString(caseText) {
		report.Warnings = append(report.Warnings, "le texte contient un token en MAJUSCULES_AVEC_UNDERSCORE (probable recrachage d'énumération)")
	}
	return report
}
