package coder

import (
	"bytes"
	"encoding/gob"
)

// NewGOBCoder creates a new coder using Go's binary gob format.
// Gob handles Go types that json cannot represent (e.g. maps with struct
// keys) but the stored bytes are not readable outside of Go.
func NewGOBCoder() ICoder {
	return &gobCoderImpl{}
}

// gobCoderImpl implements the ICoder interface using gob encoding
type gobCoderImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see coder.ICoder)
// --------------------------------------------------------------------------

func (c gobCoderImpl) Encode(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c gobCoderImpl) Decode(b []byte, value interface{}) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(value)
}
