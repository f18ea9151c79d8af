// Package diag defines the diagnostic model shared by the lexer, the parser
// and the declaration splitter.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the pipeline phases.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX1001).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
package diag
