package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/types"
)

const miniSchema = `{
  "famille": {
    "defunt": {
      "nom": {"description": "nom complet", "type": "string"},
      "statut_matrimonial": {"description": "statut", "enum": ["MARIE", "VEUF"]},
      "age_au_deces": {"description": "âge", "type": "number"}
    },
    "descendants": {
      "enfants": [
        {
          "nom": {"description": "nom de l'enfant", "type": "string"},
          "est_mineur": {"description": "minorité", "type": "boolean"}
        }
      ]
    }
  }
}`

func miniIndex(t *testing.T) *Index {
	t.Helper()
	root, err := types.ParseJSON([]byte(miniSchema))
	require.NoError(t, err)
	index, err := Build(root)
	require.NoError(t, err)
	return index
}

func TestBuildIndexesLeavesAndStructure(t *testing.T) {
	index := miniIndex(t)

	assert.Equal(t, 5, index.LeafCount())
	assert.True(t, index.IsPathAllowed(Path{"famille"}))
	assert.True(t, index.IsPathAllowed(Path{"famille", "descendants", "enfants"}))
	assert.True(t, index.IsPathAllowed(Path{"famille", "descendants", "enfants", types.Wildcard}))
	assert.False(t, index.IsPathAllowed(Path{"famille", "inconnu"}))

	spec, ok := index.LeafSpec(Path{"famille", "defunt", "statut_matrimonial"})
	require.True(t, ok)
	assert.Equal(t, []string{"MARIE", "VEUF"}, spec.Enum)
	assert.Equal(t, "string", spec.ExpectedType())

	spec, ok = index.LeafSpec(Path{"famille", "defunt", "age_au_deces"})
	require.True(t, ok)
	assert.Equal(t, "number", spec.ExpectedType())

	_, ok = index.LeafSpec(Path{"famille", "defunt"})
	assert.False(t, ok, "structural node is not a leaf")
}

func TestBuildRejectsNonObjectRoot(t *testing.T) {
	_, err := Build(types.String("pas un objet"))
	assert.Error(t, err)

	_, err = Build(nil)
	assert.Error(t, err)
}

func TestBuildRejectsEmptySchema(t *testing.T) {
	_, err := Build(types.Object())
	assert.Error(t, err)
}

func TestLeafPathsAreOrdered(t *testing.T) {
	index := miniIndex(t)
	paths := index.LeafPaths()
	require.Len(t, paths, 5)
	for i := 1; i < len(paths); i++ {
		assert.Less(t, pathKey(paths[i-1]), pathKey(paths[i]))
	}
}

func TestPathHelpers(t *testing.T) {
	p := Path{"famille", "descendants", "enfants", types.Wildcard}
	assert.Equal(t, "famille.descendants.enfants.*", p.String())
	assert.Equal(t, "enfants", p.LeafKey())
	assert.True(t, p.HasPrefix(Path{"famille", "descendants"}))
	assert.False(t, p.HasPrefix(Path{"famille", "defunt"}))
	assert.True(t, p.Contains("enfants"))
	assert.False(t, p.Contains("defunt"))

	child := p.Child("nom")
	assert.Equal(t, "nom", child.LeafKey())
	assert.Len(t, p, 4, "Child must not mutate the receiver")
}

func TestLoadMasterSchemaFile(t *testing.T) {
	path := ResolvePath(filepath.Join("schemas", "succession.schema.json"))
	require.NotEmpty(t, path)

	index, err := Load(path)
	require.NoError(t, err)
	assert.Greater(t, index.LeafCount(), 100)
	assert.True(t, index.IsPathAllowed(Path{"famille", "defunt", "nom"}))
}

func TestValidateDocumentRejectsBadLeaf(t *testing.T) {
	bad := []byte(`{"famille": {"defunt": {"nom": {"type": 12}}}}`)
	err := ValidateDocument(bad)
	var metaErr *MetaValidationError
	assert.ErrorAs(t, err, &metaErr)
}

func TestLeafSpecExpectedTypeDefaultsToString(t *testing.T) {
	assert.Equal(t, "string", LeafSpec{}.ExpectedType())
	assert.Equal(t, "string", LeafSpec{Type: "date"}.ExpectedType())
	assert.Equal(t, "boolean", LeafSpec{Type: "boolean"}.ExpectedType())
}
