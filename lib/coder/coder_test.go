package coder

import (
	"reflect"
	"testing"
)

// testCoders is a map of coder name to factory function
var testCoders = map[string]func() ICoder{
	"JSON": NewJSONCoder,
	"GOB":  NewGOBCoder,
}

type testValue struct {
	Name    string
	Count   int64
	Tags    []string
	Nested  map[string]int
	Enabled bool
}

func TestCoderRoundTrip(t *testing.T) {
	original := testValue{
		Name:    "test-value",
		Count:   42,
		Tags:    []string{"a", "b", "c"},
		Nested:  map[string]int{"x": 1, "y": 2},
		Enabled: true,
	}

	for name, factory := range testCoders {
		t.Run(name, func(t *testing.T) {
			coder := factory()

			data, err := coder.Encode(&original)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}

			var result testValue
			if err := coder.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}

			if !reflect.DeepEqual(original, result) {
				t.Errorf("Value doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
					original, result)
			}
		})
	}
}

func TestCoderScalarRoundTrip(t *testing.T) {
	for name, factory := range testCoders {
		t.Run(name, func(t *testing.T) {
			coder := factory()

			original := int64(512)
			data, err := coder.Encode(&original)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}

			var result int64
			if err := coder.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}

			if result != original {
				t.Errorf("Expected %d, got %d", original, result)
			}
		})
	}
}

func TestCoderDecodeCorrupt(t *testing.T) {
	for name, factory := range testCoders {
		t.Run(name, func(t *testing.T) {
			coder := factory()

			var result testValue
			if err := coder.Decode([]byte{0x00, 0x01, 0x02}, &result); err == nil {
				t.Error("Expected error decoding corrupt bytes, got none")
			}
		})
	}
}
