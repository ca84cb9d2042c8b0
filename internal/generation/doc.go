// Package generation defines the boundary to AI content generation for a
// wordlist: example sentences for each word and short quizzes. Only the
// first MaxCards cards of a wordlist are sent to a Generator.
//
// StubGenerator produces deterministic placeholder content and is used when
// no LLM is configured. The Gemini-backed implementation lives in
// internal/platform/gemini.
package generation
