// Package gemini provides an implementation of the generation.Generator
// interface backed by Google's Gemini API.
//
// Prompts are rendered from embedded text templates and the model is asked
// for JSON output, which is parsed and checked before it is returned.
// Transient API failures are retried with exponential backoff and jitter.
// Safety blocks and malformed responses are permanent and returned at once,
// mapped to the generation package's sentinel errors.
package gemini
