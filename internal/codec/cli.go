package codec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jonathan/caseforge/internal/types"
)

const cliTimeout = 20 * time.Second

// CLICodec shells out to an external encoder binary. The command reads
// a file path argument and writes the converted form on stdout; the
// --encode flag selects the JSON-to-wire direction.
type CLICodec struct {
	command []string
}

// NewCLI builds a CLI codec from an argv-style command line.
func NewCLI(command []string) (*CLICodec, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("commande codec vide")
	}
	return &CLICodec{command: command}, nil
}

// Encode serializes the payload to deterministic JSON, feeds it to the
// external tool and returns the normalized wire text.
func (c *CLICodec) Encode(ctx context.Context, payload *types.Value) (string, error) {
	if err := requireObjectRoot(payload); err != nil {
		return "", err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("sérialisation de la cible: %w", err)
	}
	out, err := c.run(ctx, data, ".json", "--encode")
	if err != nil {
		return "", fmt.Errorf("encodage de la cible: %w", err)
	}
	return Normalize(out)
}

// Decode converts wire text back to a payload tree via the external
// tool, which emits JSON on stdout.
func (c *CLICodec) Decode(ctx context.Context, encoded string) (*types.Value, error) {
	normalized, err := Normalize(encoded)
	if err != nil {
		return nil, err
	}
	out, err := c.run(ctx, []byte(normalized), ".txt")
	if err != nil {
		return nil, fmt.Errorf("décodage de la cible: %w", err)
	}
	payload, err := types.ParseJSON([]byte(strings.TrimSpace(out)))
	if err != nil {
		return nil, fmt.Errorf("cible invalide: sortie de décodage illisible: %w", err)
	}
	if err := requireObjectRoot(payload); err != nil {
		return nil, fmt.Errorf("cible invalide: %w", err)
	}
	return payload, nil
}

func (c *CLICodec) run(ctx context.Context, input []byte, suffix string, extraArgs ...string) (string, error) {
	tmp, err := os.CreateTemp("", "caseforge-*"+suffix)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(input); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(ctx, cliTimeout)
	defer cancel()

	args := append(append([]string(nil), c.command[1:]...), extraArgs...)
	args = append(args, tmp.Name())
	cmd := exec.CommandContext(runCtx, c.command[0], args...)
	out, err := cmd.Output()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("délai du codec dépassé")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s", firstLine(string(exitErr.Stderr)))
		}
		return "", err
	}
	result := strings.TrimSpace(string(out))
	if result == "" {
		return "", fmt.Errorf("sortie vide du codec")
	}
	return result, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "échec du codec externe"
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
