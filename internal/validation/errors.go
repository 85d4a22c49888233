// Package validation gates synthesized payloads through the sparse
// shape, business coherence, schema conformance and topic alignment
// checks before an instruction can be issued.
package validation

import (
	"fmt"
	"strings"
)

// RejectionError rejects one candidate payload with the rule that fired
// and a bounded preview of the individual problems.
type RejectionError struct {
	Rule     string
	Problems []string
}

func (e *RejectionError) Error() string {
	preview := e.Problems
	suffix := ""
	if len(preview) > 3 {
		preview = preview[:3]
		suffix = "; ..."
	}
	return fmt.Sprintf("%s: %s%s", e.Rule, strings.Join(preview, "; "), suffix)
}

func reject(rule string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &RejectionError{Rule: rule, Problems: problems}
}
