package issuer

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureMapAddAndGet(t *testing.T) {
	m := NewSignatureMap()
	defer m.Stop()

	hash := [32]byte{1, 2, 3}
	_, ok := m.GetSignature(hash)
	assert.False(t, ok)

	m.AddSignature(hash, []byte("sig-bytes"))
	sig, ok := m.GetSignature(hash)
	require.True(t, ok)
	assert.Equal(t, []byte("sig-bytes"), sig)
}

func TestSignatureMapGetAsCBOR(t *testing.T) {
	m := NewSignatureMap()
	defer m.Stop()

	hash := [32]byte{4, 5, 6}
	_, ok, err := m.GetSignatureAsCBOR(hash)
	require.NoError(t, err)
	assert.False(t, ok)

	m.AddSignature(hash, []byte("sig-bytes"))
	encoded, ok, err := m.GetSignatureAsCBOR(hash)
	require.NoError(t, err)
	require.True(t, ok)

	var decoded []byte
	require.NoError(t, cbor.Unmarshal(encoded, &decoded))
	assert.Equal(t, []byte("sig-bytes"), decoded)
}
