// Package fingerprint derives stable identifiers for failures from their
// content, so that the same failure seen twice can be recognized without
// mutating the failure value itself.
//
// A fingerprint is the first 16 bytes of a SHA-256 digest over the failure
// message and its (already truncated) stack text, hex-encoded into a
// 32-character string.
//
// # Usage
//
//	key := fingerprint.Of(rec.Message, rec.Stack)
//	first, err := store.Claim(ctx, key)
package fingerprint
