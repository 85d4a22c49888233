// Package codec abstracts the external serializer turning target
// payload trees into the compact text form shipped to authors.
package codec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/caseforge/internal/types"
)

// Codec encodes payload trees to the wire text form and back. Encode
// must be deterministic and reject non-object roots; Decode must reject
// malformed input and non-object roots.
type Codec interface {
	Encode(ctx context.Context, payload *types.Value) (string, error)
	Decode(ctx context.Context, encoded string) (*types.Value, error)
}

// ErrEmptyTarget is returned for blank encoded targets.
var ErrEmptyTarget = errors.New("cible encodée vide")

// Normalize canonicalizes encoded target text: unix newlines, no
// trailing whitespace, no surrounding blank lines.
func Normalize(encoded string) (string, error) {
	text := strings.ReplaceAll(encoded, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	normalized := strings.Join(lines, "\n")
	if strings.TrimSpace(normalized) == "" {
		return "", ErrEmptyTarget
	}
	return normalized, nil
}

func requireObjectRoot(payload *types.Value) error {
	if payload == nil || payload.Kind != types.KindObject {
		return fmt.Errorf("la racine de la cible doit être un objet")
	}
	return nil
}
