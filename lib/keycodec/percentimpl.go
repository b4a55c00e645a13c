package keycodec

import (
	"fmt"
	"strings"
)

// NewPercentKeyCodec creates a new key codec using percent encoding.
// Bytes from the safe set [A-Za-z0-9.-_] pass through unchanged, every
// other byte is encoded as "%XX" with uppercase hex digits. This keeps
// mostly-alphanumeric keys readable in directory listings.
//
// A leading '.' is always escaped, so an encoded name can never be the
// reserved path component "." or "..", nor a hidden file.
func NewPercentKeyCodec() IKeyCodec {
	return &percentKeyCodecImpl{}
}

// percentKeyCodecImpl implements the IKeyCodec interface using percent encoding
type percentKeyCodecImpl struct {
}

const upperHex = "0123456789ABCDEF"

// isSafeByte reports whether b may appear unencoded in a name
func isSafeByte(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '.' || b == '-' || b == '_'
}

// --------------------------------------------------------------------------
// Interface Methods (docu see keycodec.IKeyCodec)
// --------------------------------------------------------------------------

func (c percentKeyCodecImpl) Encode(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))

	for i := 0; i < len(key); i++ {
		b := key[i]
		if isSafeByte(b) && !(i == 0 && b == '.') {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperHex[b>>4])
			sb.WriteByte(upperHex[b&0x0f])
		}
	}

	return sb.String()
}

func (c percentKeyCodecImpl) Decode(name string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(name))

	for i := 0; i < len(name); i++ {
		b := name[i]

		switch {
		case b == '%':
			if i+2 >= len(name) {
				return "", fmt.Errorf("invalid percent key encoding %q: truncated escape", name)
			}
			hi := strings.IndexByte(upperHex, name[i+1])
			lo := strings.IndexByte(upperHex, name[i+2])
			if hi < 0 || lo < 0 {
				return "", fmt.Errorf("invalid percent key encoding %q: bad escape %q", name, name[i:i+3])
			}
			sb.WriteByte(byte(hi<<4 | lo))
			i += 2
		case isSafeByte(b):
			if i == 0 && b == '.' {
				return "", fmt.Errorf("invalid percent key encoding %q: unescaped leading dot", name)
			}
			sb.WriteByte(b)
		default:
			return "", fmt.Errorf("invalid percent key encoding %q: unsafe byte 0x%02x", name, b)
		}
	}

	return sb.String(), nil
}
