// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent and never fail: input that normalizes to
// nothing comes back as the empty string.
package sanitizer
