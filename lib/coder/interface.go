package coder

// ICoder is the interface for all value coders. A coder turns one logical
// value into the raw bytes stored under its key and back.
type ICoder interface {
	// Encode serializes a value into a byte array
	// It returns the serialized byte array and an error if any
	Encode(value interface{}) ([]byte, error)
	// Decode deserializes a byte array into a value
	// It takes a byte array and a pointer to the target value as parameters
	// It returns an error if any
	Decode(b []byte, value interface{}) error
}
