package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/caseforge/internal/coverage"
	"github.com/jonathan/caseforge/internal/types"
)

// pairTrainingSystemPrompt is the fixed system turn of every exported
// training pair.
const pairTrainingSystemPrompt = "Tu extrais les informations d'un énoncé de succession en français. " +
	"Tu réponds uniquement par une cible structurée valide conforme au schéma attendu."

type trainingMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type trainingRecord struct {
	Messages []trainingMessage `json:"messages"`
}

func pairTrainingRecord(caseText, targetEncoded string) trainingRecord {
	return trainingRecord{Messages: []trainingMessage{
		{Role: "system", Content: pairTrainingSystemPrompt},
		{Role: "user", Content: caseText},
		{Role: "assistant", Content: targetEncoded},
	}}
}

// WriteTrainingExports rewrites both training files from the accepted
// submissions. The files are regenerated whole on every accepted case.
func (s *Store) WriteTrainingExports(submitted []types.Submission) error {
	var rows []string
	for _, submission := range submitted {
		caseText := strings.TrimSpace(submission.CaseText)
		target := strings.TrimSpace(submission.TargetEncoded)
		if caseText == "" || target == "" {
			continue
		}
		data, err := marshalJSON(pairTrainingRecord(submission.CaseText, target), false)
		if err != nil {
			return err
		}
		rows = append(rows, string(data))
	}

	content := ""
	if len(rows) > 0 {
		content = strings.Join(rows, "\n") + "\n"
	}
	if err := writeFileAtomic(filepath.Join(s.dir, generatedTrainFilename), content); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, fullTrainFilename), content)
}

func renderSummaryMarkdown(snapshot *types.CoverageSummary) string {
	lines := []string{
		"# Case Instruction Server",
		"",
		fmt.Sprintf("- target_total_cases: %d", snapshot.TargetTotalCases),
		fmt.Sprintf("- generation_target: %d", snapshot.GenerationTarget),
		fmt.Sprintf("- seed_cases: %d", snapshot.SeedCases),
		fmt.Sprintf("- issued: %d", snapshot.Issued),
		fmt.Sprintf("- submitted: %d", snapshot.Submitted),
		fmt.Sprintf("- training_cases_current: %d", snapshot.TrainingCasesCurrent),
		fmt.Sprintf("- remaining: %d", snapshot.Remaining),
		"",
		"## Coverage",
	}
	for _, dimension := range coverage.DimensionOrder() {
		values, ok := snapshot.Dimensions[dimension]
		if !ok {
			continue
		}
		lines = append(lines, "", "### "+dimension)
		for _, target := range coverage.TableFor(dimension) {
			row, ok := values[target.Key]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf(
				"- %s: current=%d target=%v gap=%v",
				target.Key, row.Current, row.TargetCount, row.Gap,
			))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
