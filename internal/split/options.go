package split

// Revision changes whenever the rewrite produces different output for the
// same input. Result caches mix it into their keys.
const Revision = 2

// Options configure a Splitter.
type Options struct {
	// LineBreak is inserted between output statements when the source has no
	// break to reuse. Empty means "\n".
	LineBreak string
}

func (o Options) lineBreak() string {
	if o.LineBreak == "" {
		return "\n"
	}
	return o.LineBreak
}
