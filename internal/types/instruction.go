//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// Instruction lifecycle states.
const (
	StatusIssued    = "issued"
	StatusSubmitted = "submitted"
)

// Dimensions is one full assignment across every categorical axis. Optional
// axes stay empty when inactive (secondary topic, hard-negative fields).
type Dimensions struct {
	Persona               string `json:"persona"`
	Voice                 string `json:"voice"`
	Format                string `json:"format"`
	LengthBand            string `json:"length_band"`
	Noise                 string `json:"noise"`
	NumericDensity        string `json:"numeric_density"`
	DatePrecision         string `json:"date_precision"`
	Complexity            string `json:"complexity"`
	PrimaryTopic          string `json:"primary_topic"`
	SecondaryTopic        string `json:"secondary_topic,omitempty"`
	HardNegativeMode      string `json:"hard_negative_mode,omitempty"`
	HardNegativeIntensity string `json:"hard_negative_intensity,omitempty"`
}

// Signature derives the anti-repetition key: all chosen values joined in
// fixed order, empty axes skipped.
func (d Dimensions) Signature() string {
	parts := []string{
		d.Persona,
		d.Voice,
		d.Format,
		d.LengthBand,
		d.Noise,
		d.NumericDensity,
		d.DatePrecision,
		d.Complexity,
		d.HardNegativeIntensity,
		d.PrimaryTopic,
		d.SecondaryTopic,
	}
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "|")
}

// ReferenceExample is a style anchor excerpted from the seed corpus.
type ReferenceExample struct {
	CaseID     string `json:"case_id"`
	SourceType string `json:"source_type"`
	SourceName string `json:"source_name"`
	Excerpt    string `json:"excerpt"`
}

// Instruction is one issued authoring task. It is created exactly once and
// immutable afterwards; the submission backlink lives in the per-record
// mirror file, not here.
type Instruction struct {
	ID                string             `json:"instruction_id"`
	AgentID           string             `json:"agent_id,omitempty"`
	IssuedAt          time.Time          `json:"issued_at"`
	Signature         string             `json:"signature"`
	Dimensions        Dimensions         `json:"dimensions"`
	StyleBrief        string             `json:"style_brief"`
	MustInclude       []string           `json:"must_include"`
	MustAvoid         []string           `json:"must_avoid"`
	ReferenceExamples []ReferenceExample `json:"reference_examples,omitempty"`
	Prompt            string             `json:"prompt"`
	TargetEncoded     string             `json:"target_encoded"`
}

// PublicInstruction is the subset returned to authors.
type PublicInstruction struct {
	ID            string `json:"instruction_id"`
	TargetEncoded string `json:"target_encoded"`
	Prompt        string `json:"prompt"`
}

// ValidationReport summarizes the non-fatal checks run on a submitted
// narrative. Warnings never block acceptance.
type ValidationReport struct {
	WordCount        int      `json:"word_count"`
	CharCount        int      `json:"char_count"`
	ContainsDigits   bool     `json:"contains_digits"`
	ExactDuplicate   bool     `json:"exact_duplicate"`
	MaxSimilarity    float64  `json:"max_similarity"`
	ClosestReference string   `json:"closest_reference,omitempty"`
	Warnings         []string `json:"warnings"`
}

// Submission pairs an authored narrative with its issued instruction.
// Exactly one submission may exist per instruction.
type Submission struct {
	SubmissionID  string           `json:"submission_id"`
	InstructionID string           `json:"instruction_id"`
	AgentID       string           `json:"agent_id,omitempty"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	CaseText      string           `json:"case_text"`
	TargetEncoded string           `json:"target_encoded"`
	Validation    ValidationReport `json:"validation"`
	Dimensions    Dimensions       `json:"dimensions"`
}

// DimensionProgress is the per-value coverage view: how far the observed
// count sits from its proportional target.
type DimensionProgress struct {
	TargetShare float64 `json:"target_share"`
	TargetCount float64 `json:"target_count"`
	Current     int     `json:"current"`
	Gap         float64 `json:"gap"`
}

// CoverageSummary is the derived read-only dashboard snapshot.
type CoverageSummary struct {
	TargetTotalCases     int                                     `json:"target_total_cases"`
	GenerationTarget     int                                     `json:"generation_target"`
	SeedCases            int                                     `json:"seed_cases"`
	Issued               int                                     `json:"issued"`
	Submitted            int                                     `json:"submitted"`
	TrainingCasesCurrent int                                     `json:"training_cases_current"`
	Remaining            int                                     `json:"remaining"`
	Dimensions           map[string]map[string]DimensionProgress `json:"dimensions"`
}
