package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/types"
)

func testInstruction(id string) types.Instruction {
	return types.Instruction{
		ID:       id,
		IssuedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Dimensions: types.Dimensions{
			Persona:        "enfant",
			Voice:          "premiere_personne",
			Format:         "recit_libre",
			LengthBand:     "moyen",
			Noise:          "propre",
			NumericDensity: "un_montant",
			DatePrecision:  "exacte",
			Complexity:     "simple",
			PrimaryTopic:   "ordre_heritiers",
		},
		Prompt:        "Rédige un énoncé.",
		TargetEncoded: "famille:\n  defunt:\n    nom: Marc Lefevre",
	}
}

func testSubmission(instructionID string) types.Submission {
	return types.Submission{
		SubmissionID:  "9f9b6ab5-0000-4000-8000-000000000001",
		InstructionID: instructionID,
		SubmittedAt:   time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		CaseText:      "Marc Lefevre est décédé en 2024 à Lyon.",
		TargetEncoded: "famille:\n  defunt:\n    nom: Marc Lefevre",
	}
}

func TestOpenCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "state"))
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dir, "state", "instructions"))
	assert.DirExists(t, filepath.Join(dir, "state", "submissions"))
}

func TestLoadOrCreateConfigKeepsCreatedAt(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	first, err := store.LoadOrCreateConfig(CampaignConfig{
		TargetTotalCases: 100,
		GenerationTarget: 40,
		Seed:             42,
		CorpusFile:       "seeds.jsonl",
	})
	require.NoError(t, err)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := store.LoadOrCreateConfig(CampaignConfig{
		TargetTotalCases: 200,
		GenerationTarget: 80,
		Seed:             7,
		CorpusFile:       "seeds.jsonl",
	})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, 200, second.TargetTotalCases)
	assert.Equal(t, int64(7), second.Seed)
}

func TestAppendAndReplay(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	instruction := testInstruction("INS-0001")
	require.NoError(t, store.AppendIssued(instruction))
	require.NoError(t, store.AppendSubmission(testSubmission("INS-0001")))

	issued, submitted, err := store.Replay()
	require.NoError(t, err)
	require.Len(t, issued, 1)
	require.Len(t, submitted, 1)
	assert.Equal(t, "INS-0001", issued[0].ID)
	assert.Equal(t, "INS-0001", submitted[0].InstructionID)
	assert.Equal(t, instruction.TargetEncoded, issued[0].TargetEncoded)
}

func TestReplayEmptyState(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	issued, submitted, err := store.Replay()
	require.NoError(t, err)
	assert.Empty(t, issued)
	assert.Empty(t, submitted)
}

func TestInstructionMirrorStatus(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	instruction := testInstruction("INS-0002")
	require.NoError(t, store.WriteInstructionMirror(instruction, nil))

	data, err := os.ReadFile(filepath.Join(dir, "instructions", "INS-0002.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "issued"`)

	submission := testSubmission("INS-0002")
	require.NoError(t, store.WriteInstructionMirror(instruction, &submission))

	data, err = os.ReadFile(filepath.Join(dir, "instructions", "INS-0002.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "submitted"`)
	assert.Contains(t, string(data), submission.SubmissionID)
}

func TestWriteTrainingExports(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	submissions := []types.Submission{
		testSubmission("INS-0001"),
		{InstructionID: "INS-0002", CaseText: "  ", TargetEncoded: "x: 1"},
	}
	require.NoError(t, store.WriteTrainingExports(submissions))

	data, err := os.ReadFile(filepath.Join(dir, "generated_cases_train_mistral.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"role":"system"`)
	assert.Contains(t, lines[0], "Marc Lefevre est décédé")

	full, err := os.ReadFile(filepath.Join(dir, "full_training_cases_mistral.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, data, full)
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	snapshot := &types.CoverageSummary{
		TargetTotalCases: 100,
		GenerationTarget: 40,
		Submitted:        3,
		Remaining:        37,
		Dimensions: map[string]map[string]types.DimensionProgress{
			"persona": {
				"enfant": {TargetShare: 0.18, TargetCount: 7.2, Current: 1, Gap: 6.2},
			},
		},
	}
	require.NoError(t, store.WriteSummary(snapshot))

	loaded, err := store.ReadSummary()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Submitted)

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Case Instruction Server")
	assert.Contains(t, string(md), "### persona")
	assert.Contains(t, string(md), "- enfant: current=1 target=7.2 gap=6.2")
}

func TestReadSummaryMissing(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	snapshot, err := store.ReadSummary()
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}
