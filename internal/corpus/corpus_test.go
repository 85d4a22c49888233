package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seeds.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeeds(t *testing.T) {
	path := writeCorpus(t, `{"case_id": "CASE-1", "source_type": "annale", "text": "Un premier énoncé."}

{"text": "Un second énoncé sans identifiant."}
`)
	seeds, err := LoadSeeds(path)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "CASE-1", seeds[0].CaseID)
	assert.Equal(t, "SEED-0003", seeds[1].CaseID)
}

func TestLoadSeedsRejectsMalformedLine(t *testing.T) {
	path := writeCorpus(t, "{not json}\n")
	_, err := LoadSeeds(path)
	assert.Error(t, err)
}

func TestLoadSeedsRejectsMissingText(t *testing.T) {
	path := writeCorpus(t, `{"case_id": "CASE-1", "text": "   "}`+"\n")
	_, err := LoadSeeds(path)
	assert.Error(t, err)
}

func TestLoadSeedsMissingFile(t *testing.T) {
	_, err := LoadSeeds(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}
