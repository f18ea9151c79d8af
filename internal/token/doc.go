// Package token defines lexical tokens and the doubly-linked token chain
// that carries the literal text of a program.
// Invariants:
//   - Every byte of the source belongs to exactly one token; whitespace,
//     line breaks and comments are tokens in the chain, not side tables.
//   - For any token t with t.Next == u, u.Prev == t. Mutating helpers keep
//     this true after every call, not only at quiescence.
//   - A token sits in exactly one position of exactly one chain.
//   - Token.Root is a lookup back-reference to the owning program; it never
//     decides ownership or lifetime.
//   - Synthesized tokens carry a zero Span.
package token
