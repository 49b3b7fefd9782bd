package utils

import (
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// GenerateKeyPair generates a new secp256k1 key pair.
func GenerateKeyPair() (*secp256k1.PrivateKey, *secp256k1.PublicKey, error) {
	privkey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, err
	}
	return privkey, privkey.PubKey(), nil
}

// PrivateKeyToBytes private key to its 32 byte scalar.
func PrivateKeyToBytes(priv *secp256k1.PrivateKey) []byte {
	return priv.Serialize()
}

// BytesToPrivateKey bytes to private key
func BytesToPrivateKey(priv []byte) (*secp256k1.PrivateKey, error) {
	if len(priv) != secp256k1.PrivKeyBytesLen {
		return nil, errors.New("private key must be 32 bytes")
	}
	return secp256k1.PrivKeyFromBytes(priv), nil
}

// PublicKeyToHex encodes the uncompressed public key. This is the address
// format used throughout the ledger.
func PublicKeyToHex(pub *secp256k1.PublicKey) string {
	return BytesToHex(pub.SerializeUncompressed())
}

// HexToPublicKey parses an address back into a public key.
func HexToPublicKey(address string) (*secp256k1.PublicKey, error) {
	raw, err := HexToBytes(address)
	if err != nil {
		return nil, err
	}
	return secp256k1.ParsePubKey(raw)
}

// PublicKeyOf returns the address owned by the private key.
func PublicKeyOf(priv *secp256k1.PrivateKey) string {
	return PublicKeyToHex(priv.PubKey())
}

// Hash message using SHA256
func SHA256(msg []byte) []byte {
	digest := sha256.Sum256(msg)
	return digest[:]
}

// SHA256Hex hashes msg and returns the hex digest.
func SHA256Hex(msg []byte) string {
	return BytesToHex(SHA256(msg))
}

// Sign a digest with the provided private key. The result is DER encoded.
func Sign(digest []byte, sk *secp256k1.PrivateKey) []byte {
	return ecdsa.Sign(sk, digest).Serialize()
}

// Verify the given DER signature matches the digest. Malformed signatures
// simply do not verify.
func Verify(digest []byte, pk *secp256k1.PublicKey, signature []byte) bool {
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(digest, pk)
}
