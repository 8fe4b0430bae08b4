// Package errors defines error types for the webview bridge.
//
// This package provides sentinel errors for the conditions callers branch on
// and structured error types for failures that carry a {code, reason} shape
// or the raw data that caused them. All error types support unwrapping and
// can be checked using errors.Is, errors.As, and errors.AsType.
package errors
