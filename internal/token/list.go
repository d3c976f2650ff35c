package token

// List is the ordered sequence of finalized tokens produced by one
// tokenization pass. It is append-only: tokens are added during scanning
// and read back by index during counting.
type List struct {
	words []string
}

// NewList creates a list with room for the given number of tokens.
func NewList(capacity int) *List {
	return &List{words: make([]string, 0, capacity)}
}

// Push copies the buffer's current contents into the list as a new token,
// sized exactly to the token's length.
func (l *List) Push(b *Buffer) {
	l.words = append(l.words, b.String())
}

// At returns the token at the given index.
func (l *List) At(i int) string {
	return l.words[i]
}

// Len returns the number of tokens in the list.
func (l *List) Len() int {
	return len(l.words)
}

// Words returns the underlying token slice, read-only by convention.
func (l *List) Words() []string {
	return l.words
}
