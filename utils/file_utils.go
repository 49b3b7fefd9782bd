package utils

import (
	"encoding/pem"
	"errors"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const pemKeyType = "SECP256K1 PRIVATE KEY"

// ParseKeyFile reads the private key at fPath, or generates and saves a new
// one there when createNewKey is set.
func ParseKeyFile(fPath string, createNewKey bool) (*secp256k1.PrivateKey, error) {
	if fPath == "" {
		return nil, errors.New("file path is missing")
	}
	if createNewKey {
		userKey, _, err := GenerateKeyPair()
		if err != nil {
			return nil, err
		}
		if err := SavePrivateKeyToFile(userKey, fPath); err != nil {
			return nil, err
		}
		return userKey, nil
	}
	return ReadKeyFromFPath(fPath)
}

// SavePrivateKeyToFile writes the key as a PEM block readable only by the owner.
func SavePrivateKeyToFile(privkey *secp256k1.PrivateKey, fpath string) error {
	data := pem.EncodeToMemory(&pem.Block{
		Type:  pemKeyType,
		Bytes: PrivateKeyToBytes(privkey),
	})
	return os.WriteFile(fpath, data, 0600)
}

func ReadKeyFromFPath(fPath string) (*secp256k1.PrivateKey, error) {
	fileContent, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	if len(fileContent) == 0 {
		return nil, errors.New("key file is empty, please check filepath")
	}
	block, _ := pem.Decode(fileContent)
	if block == nil || block.Type != pemKeyType {
		return nil, errors.New("key file does not hold a secp256k1 private key")
	}
	return BytesToPrivateKey(block.Bytes)
}
