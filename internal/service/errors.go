// Package service implements the campaign logic behind the HTTP API:
// planning, target synthesis, validation and submission intake.
package service

import "fmt"

// ErrBadRequest indicates a malformed or incomplete request payload.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// ErrInstructionNotFound indicates the referenced instruction was never issued.
type ErrInstructionNotFound struct {
	InstructionID string
}

func (e *ErrInstructionNotFound) Error() string {
	return fmt.Sprintf("instruction inconnue: %s", e.InstructionID)
}

// ErrAlreadySubmitted indicates a second submission for the same instruction.
type ErrAlreadySubmitted struct {
	InstructionID string
}

func (e *ErrAlreadySubmitted) Error() string {
	return fmt.Sprintf("instruction déjà soumise: %s", e.InstructionID)
}

// ErrSubmissionRejected indicates the narrative failed a blocking check.
type ErrSubmissionRejected struct {
	Reason string
}

func (e *ErrSubmissionRejected) Error() string {
	return e.Reason
}

// ErrGenerationExhausted indicates no valid target payload could be
// synthesized within the attempt budget.
type ErrGenerationExhausted struct {
	Attempts int
	LastErr  error
}

func (e *ErrGenerationExhausted) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("échec génération de la cible après %d tentatives: %v", e.Attempts, e.LastErr)
	}
	return fmt.Sprintf("échec génération de la cible après %d tentatives", e.Attempts)
}

func (e *ErrGenerationExhausted) Unwrap() error { return e.LastErr }
