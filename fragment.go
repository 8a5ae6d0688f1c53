package ooba

// ChatFragment is one decoded delta of a streamed chat completion.
// Streams only return fragments with non-empty Content; deltas that only
// open the assistant turn (Role set, no Content) are not returned.
type ChatFragment struct {
	Role         Role   // set on the first delta of a turn, empty otherwise
	Content      string // incremental text
	FinishReason string // set on the delta that ends generation, if any
}

// Concat joins the Content of fragments in order.
func Concat(fragments []ChatFragment) string {
	n := 0
	for _, f := range fragments {
		n += len(f.Content)
	}
	b := make([]byte, 0, n)
	for _, f := range fragments {
		b = append(b, f.Content...)
	}
	return string(b)
}
