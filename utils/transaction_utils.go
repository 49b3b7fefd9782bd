package utils

import (
	"fmt"

	"github.com/Luismorlan/chain_in_go/model"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const issuedSender = "null"

// GetTransactionBytes concatenates from, to, amount and timestamp, in that
// order. Issued transactions contribute the literal "null" as sender. The
// signature is never part of it.
func GetTransactionBytes(t *model.Transaction) []byte {
	from, ok := t.Sender()
	if !ok {
		from = issuedSender
	}
	return []byte(from + t.To + FormatAmount(t.Amount) + Int64ToString(t.Timestamp))
}

// HashTransaction returns the hex digest that gets signed.
func HashTransaction(t *model.Transaction) string {
	return SHA256Hex(GetTransactionBytes(t))
}

// SignTransaction signs the transaction digest and stores the hex signature.
// Only the owner of the sender address may sign; signing again overwrites.
func SignTransaction(t *model.Transaction, sk *secp256k1.PrivateKey) error {
	from, ok := t.Sender()
	if !ok || PublicKeyOf(sk) != from {
		return model.ErrAuthorization
	}
	digest, err := HexToBytes(HashTransaction(t))
	if err != nil {
		return err
	}
	t.Signature = BytesToHex(Sign(digest, sk))
	return nil
}

// IsValidTransaction checks the signature of a transaction:
// 0. Issued transactions are always valid.
// 1. Transferred ones must carry a signature.
// 2. The signature must verify against the sender's public key.
// A key or signature that does not parse is reported as invalid, not as an error.
func IsValidTransaction(t *model.Transaction) (bool, error) {
	from, ok := t.Sender()
	if !ok {
		return true, nil
	}
	if len(t.Signature) == 0 {
		return false, fmt.Errorf("%w: from %s", model.ErrMissingSignature, from)
	}
	pk, err := HexToPublicKey(from)
	if err != nil {
		return false, nil
	}
	sig, err := HexToBytes(t.Signature)
	if err != nil {
		return false, nil
	}
	digest, err := HexToBytes(HashTransaction(t))
	if err != nil {
		return false, nil
	}
	return Verify(digest, pk, sig), nil
}

// CreateRewardTx issues the mining reward to the given address.
func CreateRewardTx(reward float64, address string) *model.Transaction {
	return model.NewReward(address, reward)
}
