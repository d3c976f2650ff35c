// Package token turns a byte stream into word tokens.
//
// The tokenizer is a three-state machine over ASCII character classes: it
// assembles the current word in a Buffer and flushes completed words into a
// List. In-word symbols (apostrophe, hyphen, ...) are kept tentatively and
// a trailing run of them is revoked when the word ends without another
// alphanumeric following.
package token

// Buffer is the scratch word under assembly. It grows by doubling and is
// re-cleared after every flushed word; it is never shared outside the
// tokenizer that owns it.
type Buffer struct {
	letters []byte
	cur     int
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 2 {
		capacity = 2
	}
	return &Buffer{letters: make([]byte, capacity)}
}

// PushChar appends one character, doubling the buffer when it is full.
func (b *Buffer) PushChar(c byte) {
	if b.cur >= len(b.letters) {
		grown := make([]byte, len(b.letters)*2)
		copy(grown, b.letters)
		b.letters = grown
	}
	b.letters[b.cur] = c
	b.cur++
}

// Backspace removes the last character, if any.
func (b *Buffer) Backspace() {
	if b.cur >= 1 {
		b.cur--
	}
}

// Clear resets the buffer to empty without shrinking its storage.
func (b *Buffer) Clear() {
	b.cur = 0
}

// Len returns the number of characters currently in the buffer.
func (b *Buffer) Len() int {
	return b.cur
}

// Bytes returns the current contents. The slice aliases the buffer and is
// invalidated by the next PushChar or Clear.
func (b *Buffer) Bytes() []byte {
	return b.letters[:b.cur]
}

// String returns a copy of the current contents.
func (b *Buffer) String() string {
	return string(b.letters[:b.cur])
}
