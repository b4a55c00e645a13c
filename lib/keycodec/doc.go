// Package keycodec provides codecs that map arbitrary store keys to
// filesystem-safe filename components and back.
//
// The package focuses on:
//   - A consistent interface (IKeyCodec) for different encoding schemes
//   - Injective, exactly reversible encodings so that no two keys can
//     ever collide on disk and every on-disk name identifies one key
//   - Strict decoding: names that were not produced by the codec are
//     rejected with an error instead of being silently misread
//
// Two implementations are provided:
//
//   - base64KeyCodecImpl: Unpadded URL-safe base64 over the raw key bytes.
//     This is the default. It accepts any key content and produces the
//     most compact names for binary keys.
//
//   - percentKeyCodecImpl: Percent encoding over the safe set
//     [A-Za-z0-9.-_], with a leading dot always escaped so no name is
//     ever "." or "..". Keys that consist mostly of safe characters stay
//     human-readable in a directory listing, at the price of a 3x
//     expansion for every unsafe byte.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use.
package keycodec
