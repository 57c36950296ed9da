package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abcdef1!")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hash, "hash must never equal the plaintext")

	assert.True(t, Verify("Abcdef1!", hash))
	assert.False(t, Verify("Abcdef1?", hash))
	assert.False(t, Verify("", hash))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("Abcdef1!")
	require.NoError(t, err)
	h2, err := Hash("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("tok"), HashToken("tok"))
	assert.NotEqual(t, HashToken("tok"), HashToken("tok2"))
	assert.Len(t, HashToken("tok"), 64)
}
