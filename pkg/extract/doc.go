// Package extract finds and repairs a JSON object embedded in free text.
//
// Language-model output often wraps the diagram object in prose or a fenced
// block, and is sometimes cut off mid-object. [Extract] locates the candidate
// object, decodes it, and on failure applies exactly one [Repair] pass before
// a single retry. It never panics; an undecodable candidate yields a
// MALFORMED_JSON error carrying the first 200 characters of the text.
//
// # Candidate Selection
//
//  1. A fenced block (```json ... ```) wins when present; an unterminated
//     fence runs to the end of the text.
//  2. If the candidate holds both '{' and '}', it is sliced from the first
//     '{' to the last '}'. With '{' but no '}', it runs from '{' to the end.
//
// # Repair
//
// The repair pass is string-aware: brackets inside string literals are not
// counted. It closes an unterminated string, fills a dangling key with "",
// drops a trailing comma and appends the missing closers innermost first.
// The balanced text is then handed to github.com/kaptinlin/jsonrepair for
// residual syntax problems.
package extract
