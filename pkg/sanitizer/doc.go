// Package sanitizer normalizes user-supplied marketplace data before it is
// validated and stored.
//
// All functions are idempotent and never fail: unusable input degrades to an
// empty string or is passed through trimmed.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trimmed and lower-cased, so uniqueness is case-insensitive
//   - Phones: E.164 when parseable for a supported region, otherwise kept as typed
//   - Perks: trimmed, lower-cased, duplicates and blanks removed
//   - Photo references: reduced to their final path segment, duplicates removed
package sanitizer
