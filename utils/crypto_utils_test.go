package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureAndVerify(t *testing.T) {
	sk, pk, err := GenerateKeyPair()
	require.NoError(t, err)

	digest := SHA256([]byte("Hello World!"))
	sig := Sign(digest, sk)
	assert.True(t, Verify(digest, pk, sig))

	other := SHA256([]byte("Hello World?"))
	assert.False(t, Verify(other, pk, sig))
	assert.False(t, Verify(digest, pk, []byte{0x30, 0x01}))
}

func TestPublicKeyHexRoundTrip(t *testing.T) {
	sk, pk, err := GenerateKeyPair()
	require.NoError(t, err)

	address := PublicKeyOf(sk)
	assert.Equal(t, PublicKeyToHex(pk), address)
	// Uncompressed keys are 65 bytes and start with 0x04.
	assert.Len(t, address, 130)
	assert.Equal(t, "04", address[:2])

	back, err := HexToPublicKey(address)
	require.NoError(t, err)
	assert.True(t, back.IsEqual(pk))

	_, err = HexToPublicKey("not hex")
	assert.Error(t, err)
	_, err = HexToPublicKey("0400")
	assert.Error(t, err)
}

func TestPrivateKeyBytes(t *testing.T) {
	sk, _, err := GenerateKeyPair()
	require.NoError(t, err)

	back, err := BytesToPrivateKey(PrivateKeyToBytes(sk))
	require.NoError(t, err)
	assert.Equal(t, PublicKeyOf(sk), PublicKeyOf(back))

	_, err = BytesToPrivateKey([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
}
