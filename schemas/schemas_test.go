package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

func TestMasterSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "succession.schema.json"))
	require.NoError(t, err, "schema file should be readable")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc), "schema file should be valid JSON")

	// every top-level root the pipeline relies on must exist
	for _, root := range []string{
		"contexte", "famille", "liberalites", "assurance_vie",
		"patrimoine", "indivision", "operations_de_partage",
	} {
		assert.Contains(t, doc, root, "missing root %s", root)
	}
}

func TestMasterSchema_PassesMetaValidation(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "succession.schema.json"))
	require.NoError(t, err)

	assert.NoError(t, schema.ValidateDocument(data))
}

func TestMasterSchema_Indexes(t *testing.T) {
	index, err := schema.Load(filepath.Join(".", "succession.schema.json"))
	require.NoError(t, err)

	assert.Greater(t, index.LeafCount(), 100, "schema should expose a rich leaf surface")
	assert.True(t, index.IsPathAllowed(schema.Path{"famille", "defunt", "nom"}))
	assert.True(t, index.IsPathAllowed(schema.Path{"assurance_vie", "contrats", types.Wildcard, "assure_nom"}))
	assert.False(t, index.IsPathAllowed(schema.Path{"famille", "defunt", "inconnu"}))
}
