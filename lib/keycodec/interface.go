package keycodec

// IKeyCodec is the interface for all key codecs. A key codec maps an
// arbitrary key to a string that is safe to use as a single filesystem
// path component, and back.
//
// Every implementation must be deterministic and injective: two distinct
// keys never encode to the same name, and Decode is the exact inverse of
// Encode restricted to its image. Decoding a name that was not produced
// by Encode must return an error instead of silently returning a
// truncated or wrong key.
//
// Note that encoding expands the key size. Keys longer than roughly
// 150-200 bytes may exceed common filename length limits after encoding.
type IKeyCodec interface {
	// Encode encodes a key into a filesystem-safe name
	Encode(key string) string
	// Decode decodes a name back into the original key
	// It returns an error if the name is not a valid encoding
	Decode(name string) (string, error)
}
