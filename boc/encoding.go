package boc

import (
	"encoding/base64"
	"encoding/hex"
)

// ParseHex decodes a hex-encoded BagOfCells.
func ParseHex(s string) (*BagOfCells, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Deserialize(b)
}

// ParseBase64 decodes a standard-base64-encoded BagOfCells.
func ParseBase64(s string) (*BagOfCells, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Deserialize(b)
}

// AppendHex serializes the bag and returns it hex-encoded.
func (b *BagOfCells) AppendHex(opts SerializeOptions) (string, error) {
	raw, err := b.Serialize(opts)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// AppendBase64 serializes the bag and returns it standard-base64-encoded.
func (b *BagOfCells) AppendBase64(opts SerializeOptions) (string, error) {
	raw, err := b.Serialize(opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
