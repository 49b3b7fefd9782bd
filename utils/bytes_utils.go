package utils

import (
	"encoding/hex"
	"strconv"
)

func BytesToHex(bytes []byte) string {
	return hex.EncodeToString(bytes)
}

func HexToBytes(str string) ([]byte, error) {
	bytes, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

func Int64ToString(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatAmount renders an amount in its shortest exact decimal form, so 10
// is "10" and 0.5 is "0.5".
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
