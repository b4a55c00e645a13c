package coder

import (
	"encoding/json"
)

// NewJSONCoder creates a new coder using json encoding.
// This is the default coder: stored entries stay human-readable and can be
// inspected or edited with standard tools.
func NewJSONCoder() ICoder {
	return &jsonCoderImpl{}
}

// jsonCoderImpl implements the ICoder interface using json encoding
type jsonCoderImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see coder.ICoder)
// --------------------------------------------------------------------------

func (c jsonCoderImpl) Encode(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonCoderImpl) Decode(b []byte, value interface{}) error {
	return json.Unmarshal(b, value)
}
