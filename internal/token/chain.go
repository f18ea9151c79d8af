package token

import (
	"errors"
	"fmt"
	"strings"
)

// MaxScan bounds every walk over a chain. A well-formed chain of a real file
// never gets close; hitting it means the links form a cycle.
const MaxScan = 1 << 22

var (
	// ErrRange is returned when a forward scan cannot reach its target.
	ErrRange = errors.New("token: target not reachable")
	// ErrBrokenChain is returned by Validate when links disagree.
	ErrBrokenChain = errors.New("token: inconsistent chain links")
)

// Chain builds a linked run of tokens in order.
type Chain struct {
	first *Token
	last  *Token
	n     int
}

// Append links t after the current tail.
func (c *Chain) Append(t *Token) {
	if t == nil {
		return
	}
	Link(c.last, t)
	if c.first == nil {
		c.first = t
	}
	c.last = t
	c.n++
}

// First returns the head of the chain.
func (c *Chain) First() *Token { return c.first }

// Last returns the tail of the chain.
func (c *Chain) Last() *Token { return c.last }

// Len returns the number of appended tokens.
func (c *Chain) Len() int { return c.n }

// Link makes b follow a. Either side may be nil, which detaches the other end.
func Link(a, b *Token) {
	if a != nil {
		a.Next = b
	}
	if b != nil {
		b.Prev = a
	}
}

// LinkRun links tokens to each other in order and returns the ends.
// The outer ends are left untouched.
func LinkRun(tokens []*Token) (first, last *Token) {
	if len(tokens) == 0 {
		return nil, nil
	}
	for i := 1; i < len(tokens); i++ {
		Link(tokens[i-1], tokens[i])
	}
	return tokens[0], tokens[len(tokens)-1]
}

// Slice walks from first through last inclusive. A nil last walks to the end.
func Slice(first, last *Token) []*Token {
	var out []*Token
	for t, steps := first, 0; t != nil && steps < MaxScan; t, steps = t.Next, steps+1 {
		out = append(out, t)
		if t == last {
			break
		}
	}
	return out
}

// Render concatenates token text from first through last inclusive.
// A nil last renders to the end of the chain.
func Render(first, last *Token) string {
	var sb strings.Builder
	for t, steps := first, 0; t != nil && steps < MaxScan; t, steps = t.Next, steps+1 {
		sb.WriteString(t.Text)
		if t == last {
			break
		}
	}
	return sb.String()
}

// Validate checks bidirectional consistency of the chain starting at first:
// first.Prev is nil and every t.Next.Prev == t. It returns the tail.
func Validate(first *Token) (*Token, error) {
	if first == nil {
		return nil, nil
	}
	if first.Prev != nil {
		return nil, fmt.Errorf("%w: head %s has a predecessor %s", ErrBrokenChain, first, first.Prev)
	}
	t := first
	for steps := 0; ; steps++ {
		if steps >= MaxScan {
			return nil, fmt.Errorf("%w: chain does not terminate", ErrBrokenChain)
		}
		if t.Next == nil {
			return t, nil
		}
		if t.Next.Prev != t {
			return nil, fmt.Errorf("%w: %s -> %s but back link is %s", ErrBrokenChain, t, t.Next, t.Next.Prev)
		}
		t = t.Next
	}
}
