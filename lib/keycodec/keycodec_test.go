package keycodec

import (
	"strings"
	"testing"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() IKeyCodec{
	"Base64":  NewBase64KeyCodec,
	"Percent": NewPercentKeyCodec,
}

// testKeys returns keys covering the interesting character classes
func testKeys() []string {
	return []string{
		"",
		"Counter",
		"simple-key_01.json",
		"with space",
		"path/like/key",
		".",
		"..",
		".hidden",
		"%41already%20escaped",
		"unicode-äöü-键",
		string([]byte{0x00, 0xff, 0x7f, '/', '\\'}),
		strings.Repeat("x", 100),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			codec := factory()

			for _, key := range testKeys() {
				encoded := codec.Encode(key)

				decoded, err := codec.Decode(encoded)
				if err != nil {
					t.Errorf("Failed to decode %q (encoded from %q): %v", encoded, key, err)
					continue
				}

				if decoded != key {
					t.Errorf("Key doesn't match after round trip: got %q, want %q", decoded, key)
				}
			}
		})
	}
}

func TestEncodedNamesAreSafe(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			codec := factory()

			for _, key := range testKeys() {
				encoded := codec.Encode(key)

				if strings.ContainsAny(encoded, "/\\") {
					t.Errorf("Encoded name %q contains a path separator", encoded)
				}
				if encoded == "." || encoded == ".." {
					t.Errorf("Encoded name %q is a reserved path component", encoded)
				}
			}
		})
	}
}

func TestInjectivity(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			codec := factory()

			seen := make(map[string]string)
			for _, key := range testKeys() {
				encoded := codec.Encode(key)
				if prev, ok := seen[encoded]; ok {
					t.Errorf("Keys %q and %q both encode to %q", prev, key, encoded)
				}
				seen[encoded] = key
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	invalid := map[string][]string{
		"Base64": {
			"a",         // invalid length
			"ab==",      // padded
			"a+b",       // standard alphabet, not URL-safe
			"foo/bar",   // path separator
			"foo\nbar",  // control character
			"%%%",       // not base64 alphabet
			"with space", // space is not in the alphabet
		},
		"Percent": {
			"%",         // truncated escape
			"%2",        // truncated escape
			"%2f",       // lowercase hex is never produced by Encode
			"%ZZ",       // bad hex digits
			"with space", // unsafe byte outside an escape
			"foo/bar",   // path separator
			".hidden",   // leading dot is never produced by Encode
			"..",        // reserved path component
		},
	}

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			codec := factory()

			for _, bad := range invalid[name] {
				if decoded, err := codec.Decode(bad); err == nil {
					t.Errorf("Expected error decoding %q, got %q", bad, decoded)
				}
			}
		})
	}
}

func TestPercentEscapesLeadingDot(t *testing.T) {
	codec := NewPercentKeyCodec()

	expected := map[string]string{
		".":        "%2E",
		"..":       "%2E.",
		".hidden":  "%2Ehidden",
		"not.left": "not.left",
	}

	for key, want := range expected {
		encoded := codec.Encode(key)
		if encoded != want {
			t.Errorf("Expected %q to encode to %q, got %q", key, want, encoded)
		}

		decoded, err := codec.Decode(encoded)
		if err != nil {
			t.Errorf("Failed to decode %q: %v", encoded, err)
		} else if decoded != key {
			t.Errorf("Key doesn't match after round trip: got %q, want %q", decoded, key)
		}
	}
}

func TestPercentKeepsSafeKeysReadable(t *testing.T) {
	codec := NewPercentKeyCodec()

	for _, key := range []string{"Counter", "user.settings", "a-b_c.d"} {
		if encoded := codec.Encode(key); encoded != key {
			t.Errorf("Expected safe key %q to encode to itself, got %q", key, encoded)
		}
	}
}
