package codec

import (
	"context"
	"encoding/json"

	"github.com/jonathan/caseforge/internal/types"
)

// JSONCodec renders targets as indented JSON with sorted keys. It is
// the default when no external serializer command is configured.
type JSONCodec struct{}

func NewJSON() *JSONCodec { return &JSONCodec{} }

func (JSONCodec) Encode(_ context.Context, payload *types.Value) (string, error) {
	if err := requireObjectRoot(payload); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return Normalize(string(data))
}

func (JSONCodec) Decode(_ context.Context, encoded string) (*types.Value, error) {
	normalized, err := Normalize(encoded)
	if err != nil {
		return nil, err
	}
	payload, err := types.ParseJSON([]byte(normalized))
	if err != nil {
		return nil, err
	}
	if err := requireObjectRoot(payload); err != nil {
		return nil, err
	}
	return payload, nil
}
