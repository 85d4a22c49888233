// Package state persists the campaign on disk: append-only logs for
// issued instructions and accepted submissions, per-record mirror
// files, and derived summary and training-export artifacts.
package state

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/caseforge/internal/types"
)

const (
	configFilename         = "config.json"
	issuedFilename         = "issued_instructions.jsonl"
	submittedFilename      = "generated_cases.jsonl"
	summaryJSONFilename    = "summary.json"
	summaryMarkdownName    = "summary.md"
	generatedTrainFilename = "generated_cases_train_mistral.jsonl"
	fullTrainFilename      = "full_training_cases_mistral.jsonl"
)

// CampaignConfig is the persisted campaign contract. Startup flags win
// over the stored values; created_at survives restarts.
type CampaignConfig struct {
	TargetTotalCases int       `json:"target_total_cases"`
	GenerationTarget int       `json:"generation_target"`
	Seed             int64     `json:"seed"`
	CorpusFile       string    `json:"corpus_file"`
	CreatedAt        time.Time `json:"created_at"`
}

// Store owns the state directory layout.
type Store struct {
	dir             string
	instructionsDir string
	submissionsDir  string
}

// Dir returns the state directory root.
func (s *Store) Dir() string { return s.dir }

// Open creates the state directory tree if needed.
func Open(dir string) (*Store, error) {
	s := &Store{
		dir:             dir,
		instructionsDir: filepath.Join(dir, "instructions"),
		submissionsDir:  filepath.Join(dir, "submissions"),
	}
	for _, d := range []string{dir, s.instructionsDir, s.submissionsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory %s: %w", d, err)
		}
	}
	return s, nil
}

// LoadOrCreateConfig reconciles the stored campaign config with the
// startup values. Startup values always win; only created_at is kept
// from a previous run.
func (s *Store) LoadOrCreateConfig(fresh CampaignConfig) (CampaignConfig, error) {
	path := filepath.Join(s.dir, configFilename)
	cfg := fresh
	if data, err := os.ReadFile(path); err == nil {
		var stored CampaignConfig
		if err := json.Unmarshal(data, &stored); err == nil && !stored.CreatedAt.IsZero() {
			cfg.CreatedAt = stored.CreatedAt
		}
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}
	if err := writeJSONFile(path, cfg); err != nil {
		return CampaignConfig{}, err
	}
	return cfg, nil
}

// Replay loads both append-only logs concurrently.
func (s *Store) Replay() ([]types.Instruction, []types.Submission, error) {
	var (
		issued    []types.Instruction
		submitted []types.Submission
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		issued, err = readJSONLines[types.Instruction](filepath.Join(s.dir, issuedFilename))
		return err
	})
	g.Go(func() error {
		var err error
		submitted, err = readJSONLines[types.Submission](filepath.Join(s.dir, submittedFilename))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return issued, submitted, nil
}

// AppendIssued appends one instruction to the issued log and writes
// its mirror file.
func (s *Store) AppendIssued(instruction types.Instruction) error {
	if err := appendJSONLine(filepath.Join(s.dir, issuedFilename), instruction); err != nil {
		return err
	}
	return s.WriteInstructionMirror(instruction, nil)
}

// AppendSubmission appends one submission to the accepted log and
// writes its mirror file.
func (s *Store) AppendSubmission(submission types.Submission) error {
	if err := appendJSONLine(filepath.Join(s.dir, submittedFilename), submission); err != nil {
		return err
	}
	path := filepath.Join(s.submissionsDir, submission.InstructionID+".json")
	return writeJSONFile(path, submission)
}

type instructionMirror struct {
	types.Instruction
	Status     string            `json:"status"`
	Submission *types.Submission `json:"submission,omitempty"`
}

// WriteInstructionMirror writes the per-instruction file. A non-nil
// submission flips the status to submitted and embeds the record.
func (s *Store) WriteInstructionMirror(instruction types.Instruction, submission *types.Submission) error {
	status := types.StatusIssued
	if submission != nil {
		status = types.StatusSubmitted
	}
	path := filepath.Join(s.instructionsDir, instruction.ID+".json")
	return writeJSONFile(path, instructionMirror{
		Instruction: instruction,
		Status:      status,
		Submission:  submission,
	})
}

// WriteSummary refreshes summary.json and summary.md from a snapshot.
func (s *Store) WriteSummary(snapshot *types.CoverageSummary) error {
	if err := writeJSONFile(filepath.Join(s.dir, summaryJSONFilename), snapshot); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, summaryMarkdownName), renderSummaryMarkdown(snapshot))
}

// ReadSummary returns the persisted snapshot, or nil when none exists.
func (s *Store) ReadSummary() (*types.CoverageSummary, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, summaryJSONFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var snapshot types.CoverageSummary
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	return &snapshot, nil
}

func appendJSONLine(path string, record any) error {
	data, err := marshalJSON(record, false)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

func readJSONLines[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}
		out = append(out, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeJSONFile(path string, v any) error {
	data, err := marshalJSON(v, true)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, string(data)+"\n")
}

func writeFileAtomic(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
