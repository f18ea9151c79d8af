package token

import "fmt"

// Clone returns a detached copy of t with the same kind, text and root.
func Clone(t *Token) *Token {
	if t == nil {
		return nil
	}
	return &Token{
		Kind: t.Kind,
		Text: t.Text,
		Span: t.Span,
		Root: t.Root,
	}
}

// CloneChain clones tokens and links the clones to each other in order.
// The first clone's Prev and the last clone's Next stay nil; the caller
// attaches the ends.
func CloneChain(tokens []*Token) []*Token {
	out := make([]*Token, len(tokens))
	for i, t := range tokens {
		out[i] = Clone(t)
	}
	LinkRun(out)
	return out
}

// FindForward follows Next from start (inclusive) until pred holds.
func FindForward(start *Token, pred Predicate) *Token {
	for t, steps := start, 0; t != nil && steps < MaxScan; t, steps = t.Next, steps+1 {
		if pred(t) {
			return t
		}
	}
	return nil
}

// FindBackward follows Prev from start (inclusive) until pred holds.
func FindBackward(start *Token, pred Predicate) *Token {
	for t, steps := start, 0; t != nil && steps < MaxScan; t, steps = t.Prev, steps+1 {
		if pred(t) {
			return t
		}
	}
	return nil
}

// CollectBetween returns from..to inclusive by following Next.
// It fails with ErrRange when to is not reachable from from.
func CollectBetween(from, to *Token) ([]*Token, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: nil bound (from=%s, to=%s)", ErrRange, from, to)
	}
	var out []*Token
	for t, steps := from, 0; t != nil && steps < MaxScan; t, steps = t.Next, steps+1 {
		out = append(out, t)
		if t == to {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not reachable from %s", ErrRange, to, from)
}

// Reachable reports whether to can be reached from from by following Next.
func Reachable(from, to *Token) bool {
	_, err := CollectBetween(from, to)
	return err == nil
}

// NextSignificant returns the first non-trivia token after t.
func NextSignificant(t *Token) *Token {
	if t == nil {
		return nil
	}
	return FindForward(t.Next, IsSignificant)
}

// PrevSignificant returns the first non-trivia token before t.
func PrevSignificant(t *Token) *Token {
	if t == nil {
		return nil
	}
	return FindBackward(t.Prev, IsSignificant)
}
