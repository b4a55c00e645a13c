package keycodec

import (
	"encoding/base64"
	"fmt"
)

// NewBase64KeyCodec creates a new key codec using unpadded URL-safe base64.
// This is the default codec: it handles arbitrary byte content (including
// path separators and NUL bytes) and produces names from the alphabet
// [A-Za-z0-9-_] only.
func NewBase64KeyCodec() IKeyCodec {
	return &base64KeyCodecImpl{}
}

// base64KeyCodecImpl implements the IKeyCodec interface using base64 encoding
type base64KeyCodecImpl struct {
}

// strict decoding rejects non-canonical encodings, keeping Decode the exact
// inverse of Encode
var base64Encoding = base64.RawURLEncoding.Strict()

// --------------------------------------------------------------------------
// Interface Methods (docu see keycodec.IKeyCodec)
// --------------------------------------------------------------------------

func (c base64KeyCodecImpl) Encode(key string) string {
	return base64Encoding.EncodeToString([]byte(key))
}

func (c base64KeyCodecImpl) Decode(name string) (string, error) {
	raw, err := base64Encoding.DecodeString(name)
	if err != nil {
		return "", fmt.Errorf("invalid base64 key encoding %q: %w", name, err)
	}
	return string(raw), nil
}
