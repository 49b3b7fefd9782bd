package utils

import (
	"testing"

	"github.com/Luismorlan/chain_in_go/model"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignedTransfer(t *testing.T, to string, amount float64) (*model.Transaction, *secp256k1.PrivateKey) {
	sk, _, err := GenerateKeyPair()
	require.NoError(t, err)
	tx := model.NewTransfer(PublicKeyOf(sk), to, amount)
	require.NoError(t, SignTransaction(tx, sk))
	return tx, sk
}

func TestCreateRewardTx(t *testing.T) {
	cb := CreateRewardTx(50, "miner")
	assert.True(t, cb.IsIssued())
	assert.Equal(t, "miner", cb.To)
	assert.Equal(t, 50.0, cb.Amount)

	valid, err := IsValidTransaction(cb)
	assert.NoError(t, err)
	assert.True(t, valid)

	// Issued transactions skip verification whatever they carry.
	cb.Signature = "garbage"
	valid, err = IsValidTransaction(cb)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestHashTransactionIsDeterministic(t *testing.T) {
	tx := &model.Transaction{From: model.Transferred{Address: "aa"}, To: "bb", Amount: 10, Timestamp: 1000}
	assert.Equal(t, "aabb101000", string(GetTransactionBytes(tx)))
	assert.Equal(t, HashTransaction(tx), HashTransaction(tx))
	assert.Equal(t, SHA256Hex([]byte("aabb101000")), HashTransaction(tx))

	// The signature is not part of the digest.
	signed := *tx
	signed.Signature = "3045"
	assert.Equal(t, HashTransaction(tx), HashTransaction(&signed))

	changed := *tx
	changed.Amount = 11
	assert.NotEqual(t, HashTransaction(tx), HashTransaction(&changed))
}

func TestHashIssuedTransaction(t *testing.T) {
	tx := &model.Transaction{From: model.Issued{}, To: "bb", Amount: 50, Timestamp: 1000}
	assert.Equal(t, "nullbb501000", string(GetTransactionBytes(tx)))
	assert.Equal(t, SHA256Hex([]byte("nullbb501000")), HashTransaction(tx))
}

func TestSignAndValidateTransaction(t *testing.T) {
	tx, _ := newSignedTransfer(t, "bob", 10)
	assert.NotEmpty(t, tx.Signature)

	valid, err := IsValidTransaction(tx)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestFlippedSignatureByteInvalidates(t *testing.T) {
	tx, _ := newSignedTransfer(t, "bob", 10)
	sig, err := HexToBytes(tx.Signature)
	require.NoError(t, err)

	for i := range sig {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		flipped[i] ^= 0xff

		tampered := *tx
		tampered.Signature = BytesToHex(flipped)
		valid, err := IsValidTransaction(&tampered)
		assert.NoError(t, err)
		assert.False(t, valid, "byte %d flipped", i)
	}
}

func TestTamperedFieldsInvalidate(t *testing.T) {
	tx, _ := newSignedTransfer(t, "bob", 10)
	tampered := *tx
	tampered.Amount = 1000
	valid, err := IsValidTransaction(&tampered)
	assert.NoError(t, err)
	assert.False(t, valid)

	tampered = *tx
	tampered.To = "mallory"
	valid, err = IsValidTransaction(&tampered)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestSignForOtherWalletFails(t *testing.T) {
	owner, _, err := GenerateKeyPair()
	require.NoError(t, err)
	thief, _, err := GenerateKeyPair()
	require.NoError(t, err)

	tx := model.NewTransfer(PublicKeyOf(owner), "bob", 10)
	assert.ErrorIs(t, SignTransaction(tx, thief), model.ErrAuthorization)
	assert.Empty(t, tx.Signature)

	reward := CreateRewardTx(50, PublicKeyOf(owner))
	assert.ErrorIs(t, SignTransaction(reward, owner), model.ErrAuthorization)
}

func TestResignOverwrites(t *testing.T) {
	tx, sk := newSignedTransfer(t, "bob", 10)
	first := tx.Signature
	require.NoError(t, SignTransaction(tx, sk))
	// ECDSA signing here is deterministic (RFC 6979).
	assert.Equal(t, first, tx.Signature)

	valid, err := IsValidTransaction(tx)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestMissingSignature(t *testing.T) {
	sk, _, err := GenerateKeyPair()
	require.NoError(t, err)
	tx := model.NewTransfer(PublicKeyOf(sk), "bob", 10)

	valid, err := IsValidTransaction(tx)
	assert.ErrorIs(t, err, model.ErrMissingSignature)
	assert.False(t, valid)
}

func TestUnparseableSenderIsInvalid(t *testing.T) {
	tx := model.NewTransfer("zz-not-a-key", "bob", 10)
	tx.Signature = "3006020101020101"
	valid, err := IsValidTransaction(tx)
	assert.NoError(t, err)
	assert.False(t, valid)
}
