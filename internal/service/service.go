package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/caseforge/internal/codec"
	"github.com/jonathan/caseforge/internal/config"
	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/coverage"
	"github.com/jonathan/caseforge/internal/guard"
	"github.com/jonathan/caseforge/internal/prompt"
	"github.com/jonathan/caseforge/internal/repair"
	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/state"
	"github.com/jonathan/caseforge/internal/synth"
	"github.com/jonathan/caseforge/internal/types"
	"github.com/jonathan/caseforge/internal/validation"
)

const (
	maxTargetAttempts    = 50
	recentSignatureLimit = 12
)

// Service coordinates the whole issue/submit cycle. All mutations run
// under the mutex; the coverage snapshot is swapped atomically so
// dashboard reads never block the generation path.
type Service struct {
	log   *zap.Logger
	store *state.Store
	cfg   state.CampaignConfig
	index *schema.Index
	seeds []corpus.Seed
	guard *guard.Guard
	synth *synth.Synthesizer
	codec codec.Codec

	mu        sync.Mutex
	issued    []types.Instruction
	submitted []types.Submission
	counts    coverage.Counts

	snapshot atomic.Pointer[types.CoverageSummary]
}

// New loads the schema, corpus and persisted campaign state, then
// replays the logs so coverage counters reflect previous runs.
func New(cfg *config.Configuration, cdc codec.Codec, log *zap.Logger) (*Service, error) {
	index, err := schema.Load(cfg.MasterSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load master schema: %w", err)
	}
	seeds, err := corpus.LoadSeeds(cfg.CorpusFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed corpus: %w", err)
	}
	store, err := state.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	generationTarget := cfg.GenerationTarget
	if generationTarget <= 0 {
		generationTarget = cfg.TargetTotalCases - len(seeds)
		if generationTarget < 0 {
			generationTarget = 0
		}
	}
	campaign, err := store.LoadOrCreateConfig(state.CampaignConfig{
		TargetTotalCases: cfg.TargetTotalCases,
		GenerationTarget: generationTarget,
		Seed:             cfg.Seed,
		CorpusFile:       cfg.CorpusFile,
	})
	if err != nil {
		return nil, err
	}

	issued, submitted, err := store.Replay()
	if err != nil {
		return nil, fmt.Errorf("failed to replay state logs: %w", err)
	}

	s := &Service{
		log:       log,
		store:     store,
		cfg:       campaign,
		index:     index,
		seeds:     seeds,
		guard:     guard.New(seeds),
		synth:     synth.New(index),
		codec:     cdc,
		issued:    issued,
		submitted: submitted,
		counts:    coverage.CountsFrom(issued),
	}
	if err := store.WriteTrainingExports(submitted); err != nil {
		return nil, err
	}
	if err := s.refreshSummary(); err != nil {
		return nil, err
	}
	log.Info("service ready",
		zap.Int("seed_cases", len(seeds)),
		zap.Int("issued", len(issued)),
		zap.Int("submitted", len(submitted)),
		zap.Int("generation_target", campaign.GenerationTarget),
		zap.Int("schema_leaves", index.LeafCount()))
	return s, nil
}

// HealthStatus is the liveness payload.
type HealthStatus struct {
	OK                   bool `json:"ok"`
	TargetTotalCases     int  `json:"target_total_cases"`
	GenerationTarget     int  `json:"generation_target"`
	SeedCases            int  `json:"seed_cases"`
	Issued               int  `json:"issued"`
	Submitted            int  `json:"submitted"`
	TrainingCasesCurrent int  `json:"training_cases_current"`
}

// Health reports campaign counters.
func (s *Service) Health() HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HealthStatus{
		OK:                   true,
		TargetTotalCases:     s.cfg.TargetTotalCases,
		GenerationTarget:     s.cfg.GenerationTarget,
		SeedCases:            len(s.seeds),
		Issued:               len(s.issued),
		Submitted:            len(s.submitted),
		TrainingCasesCurrent: len(s.submitted),
	}
}

// Dashboard returns the latest coverage snapshot.
func (s *Service) Dashboard() *types.CoverageSummary {
	return s.snapshot.Load()
}

// NextInstructionResult carries either a new instruction or the
// campaign-finished signal, always with a coverage snapshot.
type NextInstructionResult struct {
	Done        bool                     `json:"done,omitempty"`
	Message     string                   `json:"message,omitempty"`
	Instruction *types.PublicInstruction `json:"instruction,omitempty"`
	Coverage    *types.CoverageSummary   `json:"coverage"`
}

// NextInstruction plans one instruction, synthesizes and validates its
// target payload, persists the record and returns the public view.
func (s *Service) NextInstruction(ctx context.Context, agentID, forceTopic string) (*NextInstructionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.GenerationTarget > 0 && len(s.submitted) >= s.cfg.GenerationTarget {
		return &NextInstructionResult{
			Done:     true,
			Message:  "generation_target reached",
			Coverage: s.buildSnapshot(),
		}, nil
	}

	sequence := len(s.issued) + 1
	rng := rand.New(rand.NewSource(s.cfg.Seed + int64(sequence)))

	dims, err := coverage.Plan(rng, s.counts, forceTopic, s.recentSignatures())
	if err != nil {
		return nil, err
	}

	examples := prompt.PickReferenceExamples(s.seeds, dims.PrimaryTopic, dims.SecondaryTopic, rng)
	mustInclude := prompt.MustInclude(dims)
	mustAvoid := prompt.MustAvoid(dims)
	promptText := prompt.Render(dims, examples, mustInclude, mustAvoid)

	payload, err := s.synthesizeTarget(dims, sequence)
	if err != nil {
		return nil, err
	}
	encoded, err := s.codec.Encode(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("échec encodage de la cible: %w", err)
	}

	instruction := types.Instruction{
		ID:                fmt.Sprintf("INS-%04d", sequence),
		AgentID:           agentID,
		IssuedAt:          time.Now().UTC(),
		Signature:         dims.Signature(),
		Dimensions:        dims,
		StyleBrief:        prompt.StyleBrief(dims),
		MustInclude:       mustInclude,
		MustAvoid:         mustAvoid,
		ReferenceExamples: examples,
		Prompt:            promptText,
		TargetEncoded:     encoded,
	}
	if err := s.store.AppendIssued(instruction); err != nil {
		return nil, fmt.Errorf("failed to persist instruction: %w", err)
	}
	s.issued = append(s.issued, instruction)
	s.counts.Add(dims)
	if err := s.refreshSummary(); err != nil {
		s.log.Warn("summary refresh failed", zap.Error(err))
	}
	s.log.Info("instruction issued",
		zap.String("instruction_id", instruction.ID),
		zap.String("signature", instruction.Signature),
		zap.String("primary_topic", dims.PrimaryTopic),
		zap.String("complexity", dims.Complexity))

	return &NextInstructionResult{
		Instruction: &types.PublicInstruction{
			ID:            instruction.ID,
			TargetEncoded: encoded,
			Prompt:        prompt.AugmentWithTarget(promptText, encoded),
		},
		Coverage: s.buildSnapshot(),
	}, nil
}

// synthesizeTarget retries payload synthesis with attempt-specific rng
// seeds until a candidate clears every validation gate.
func (s *Service) synthesizeTarget(dims types.Dimensions, sequence int) (*types.Value, error) {
	var lastErr error
	for attempt := 1; attempt <= maxTargetAttempts; attempt++ {
		rng := rand.New(rand.NewSource(s.cfg.Seed*1000 + int64(sequence)*100 + int64(attempt)))
		payload, entities, err := s.synth.Build(dims, rng)
		if err != nil {
			lastErr = err
			continue
		}
		repair.Repair(payload, dims, entities, rng)
		if err := validation.Pipeline(payload, dims, s.index); err != nil {
			lastErr = err
			continue
		}
		return payload, nil
	}
	return nil, &ErrGenerationExhausted{Attempts: maxTargetAttempts, LastErr: lastErr}
}

// SubmitRequest is the author-facing submission payload.
type SubmitRequest struct {
	InstructionID string `json:"instruction_id"`
	AgentID       string `json:"agent_id"`
	CaseText      string `json:"case_text"`
	TargetEncoded string `json:"target_encoded,omitempty"`
}

// SubmitResult acknowledges an accepted case.
type SubmitResult struct {
	Stored      bool                   `json:"stored"`
	Validation  types.ValidationReport `json:"validation"`
	TargetLines int                    `json:"target_lines"`
	Coverage    *types.CoverageSummary `json:"coverage"`
}

// SubmitCase validates a narrative against its instruction's stored
// target and records it when every blocking check passes.
func (s *Service) SubmitCase(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	instructionID := strings.TrimSpace(req.InstructionID)
	if instructionID == "" {
		return nil, &ErrBadRequest{Message: "instruction_id manquant"}
	}
	caseText := corpus.NormalizeText(req.CaseText)
	if caseText == "" {
		return nil, &ErrBadRequest{Message: "case_text vide"}
	}
	if strings.TrimSpace(req.TargetEncoded) != "" {
		return nil, &ErrBadRequest{Message: "cible non attendue: soumettre uniquement instruction_id + case_text"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	instruction := s.findInstruction(instructionID)
	if instruction == nil {
		return nil, &ErrInstructionNotFound{InstructionID: instructionID}
	}
	if s.hasSubmission(instructionID) {
		return nil, &ErrAlreadySubmitted{InstructionID: instructionID}
	}
	if strings.TrimSpace(instruction.TargetEncoded) == "" {
		return nil, &ErrBadRequest{Message: "cible serveur introuvable pour cette instruction"}
	}

	target, err := s.codec.Decode(ctx, instruction.TargetEncoded)
	if err != nil {
		return nil, fmt.Errorf("cible serveur invalide: %w", err)
	}

	if missing := guard.MissingNames(caseText, target); len(missing) > 0 {
		preview := strings.Join(missing[:min(3, len(missing))], ", ")
		if len(missing) > 3 {
			preview += ", …"
		}
		return nil, &ErrSubmissionRejected{
			Reason: fmt.Sprintf("incohérence texte/cible: noms absents de l'énoncé (%s)", preview),
		}
	}
	if err := guard.CheckLeaks(caseText); err != nil {
		return nil, &ErrSubmissionRejected{Reason: err.Error()}
	}

	prior := make([]guard.PriorCase, len(s.submitted))
	for i, row := range s.submitted {
		prior[i] = guard.PriorCase{ID: row.InstructionID, Text: row.CaseText}
	}
	report := s.guard.Report(caseText, prior)
	if report.ExactDuplicate {
		return nil, &ErrSubmissionRejected{
			Reason: fmt.Sprintf("doublon exact d'un cas existant (%s)", report.ClosestReference),
		}
	}

	agentID := strings.TrimSpace(req.AgentID)
	if agentID == "" {
		agentID = instruction.AgentID
	}
	submission := types.Submission{
		SubmissionID:  uuid.NewString(),
		InstructionID: instructionID,
		AgentID:       agentID,
		SubmittedAt:   time.Now().UTC(),
		CaseText:      caseText,
		TargetEncoded: instruction.TargetEncoded,
		Validation:    report,
		Dimensions:    instruction.Dimensions,
	}
	if err := s.store.AppendSubmission(submission); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}
	if err := s.store.WriteInstructionMirror(*instruction, &submission); err != nil {
		return nil, fmt.Errorf("failed to update instruction mirror: %w", err)
	}
	s.submitted = append(s.submitted, submission)
	if err := s.store.WriteTrainingExports(s.submitted); err != nil {
		return nil, fmt.Errorf("failed to refresh training exports: %w", err)
	}
	if err := s.refreshSummary(); err != nil {
		s.log.Warn("summary refresh failed", zap.Error(err))
	}
	s.log.Info("case submitted",
		zap.String("instruction_id", instructionID),
		zap.Int("word_count", report.WordCount),
		zap.Float64("max_similarity", report.MaxSimilarity),
		zap.Strings("warnings", report.Warnings))

	return &SubmitResult{
		Stored:      true,
		Validation:  report,
		TargetLines: len(strings.Split(instruction.TargetEncoded, "\n")),
		Coverage:    s.buildSnapshot(),
	}, nil
}

func (s *Service) findInstruction(id string) *types.Instruction {
	for i := range s.issued {
		if s.issued[i].ID == id {
			return &s.issued[i]
		}
	}
	return nil
}

func (s *Service) hasSubmission(instructionID string) bool {
	for _, row := range s.submitted {
		if row.InstructionID == instructionID {
			return true
		}
	}
	return false
}

func (s *Service) recentSignatures() map[string]struct{} {
	signatures := make(map[string]struct{})
	start := len(s.issued) - recentSignatureLimit
	if start < 0 {
		start = 0
	}
	for _, instruction := range s.issued[start:] {
		if instruction.Signature != "" {
			signatures[instruction.Signature] = struct{}{}
		}
	}
	return signatures
}

// buildSnapshot must be called with the mutex held.
func (s *Service) buildSnapshot() *types.CoverageSummary {
	remaining := s.cfg.GenerationTarget - len(s.submitted)
	if remaining < 0 {
		remaining = 0
	}
	return &types.CoverageSummary{
		TargetTotalCases:     s.cfg.TargetTotalCases,
		GenerationTarget:     s.cfg.GenerationTarget,
		SeedCases:            len(s.seeds),
		Issued:               len(s.issued),
		Submitted:            len(s.submitted),
		TrainingCasesCurrent: len(s.submitted),
		Remaining:            remaining,
		Dimensions:           coverage.Dimensions(s.counts, s.cfg.GenerationTarget),
	}
}

// refreshSummary must be called with the mutex held (or before the
// service is shared).
func (s *Service) refreshSummary() error {
	snapshot := s.buildSnapshot()
	s.snapshot.Store(snapshot)
	return s.store.WriteSummary(snapshot)
}
