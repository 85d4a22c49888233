package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/caseforge/internal/types"
)

func TestNormalize(t *testing.T) {
	out, err := Normalize("a: 1  \r\nb: 2\t\n\n")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2", out)

	_, err = Normalize("   \n\t\n")
	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestJSONCodecRoundTrip(t *testing.T) {
	payload := types.Object()
	defunt := types.Object()
	defunt.Set("nom", types.String("Marc Lefevre"))
	defunt.Set("age", types.Int(71))
	famille := types.Object()
	famille.Set("defunt", defunt)
	payload.Set("famille", famille)

	c := NewJSON()
	encoded, err := c.Encode(context.Background(), payload)
	require.NoError(t, err)

	decoded, err := c.Decode(context.Background(), encoded)
	require.NoError(t, err)
	assert.True(t, payload.Equal(decoded))

	again, err := c.Encode(context.Background(), decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, again)
}

func TestJSONCodecRejectsNonObjectRoot(t *testing.T) {
	c := NewJSON()
	_, err := c.Encode(context.Background(), types.String("pas un objet"))
	assert.Error(t, err)

	_, err = c.Decode(context.Background(), `[1, 2, 3]`)
	assert.Error(t, err)

	_, err = c.Decode(context.Background(), "{pas du json")
	assert.Error(t, err)
}

func TestNewCLIRequiresCommand(t *testing.T) {
	_, err := NewCLI(nil)
	assert.Error(t, err)
}
