package token

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

// charClass categorizes one input byte for the state machine.
type charClass int

const (
	// classLetter is an ASCII Latin letter, case-folded on ingestion.
	classLetter charClass = iota
	// classNumber is an ASCII digit.
	classNumber
	// classInWordSymbol may appear inside a word but not at its edges.
	classInWordSymbol
	// classOther ends a word; this includes whitespace and all non-ASCII bytes.
	classOther
)

// state is the position of the scanning cursor relative to the current word.
type state int

const (
	betweenWords state = iota
	inWordAfterAlnum
	inWordAfterSymbol
)

const initialBufferLen = 16

func toLowercase(c byte) byte {
	return c | 0x20
}

func isLetter(c byte) bool {
	low := toLowercase(c)
	return low >= 'a' && low <= 'z'
}

func isNumber(c byte) bool {
	return c >= '0' && c <= '9'
}

func isInWordSymbol(c byte) bool {
	switch c {
	case '-', '\'', '%', ',', '.', '@':
		return true
	}
	return false
}

func classify(c byte) charClass {
	switch {
	case isLetter(c):
		return classLetter
	case isNumber(c):
		return classNumber
	case isInWordSymbol(c):
		return classInWordSymbol
	default:
		return classOther
	}
}

// trimTrailingSymbols revokes the in-word symbols left dangling at the end
// of the buffered word before it is flushed.
func trimTrailingSymbols(b *Buffer) {
	for b.cur > 0 && isInWordSymbol(b.letters[b.cur-1]) {
		b.Backspace()
	}
}

// Scan consumes r to end-of-stream and returns the tokens found, in input
// order. Letters are folded to lowercase; a word starts with a letter or
// digit, may contain runs of in-word symbols between alphanumerics, and
// any symbols trailing the last alphanumeric are dropped before the word
// is flushed.
func Scan(r io.Reader, listCapacity int) (*List, error) {
	buf := NewBuffer(initialBufferLen)
	list := NewList(listCapacity)

	br := bufio.NewReader(r)
	st := betweenWords
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tokenize: reading input: %w", err)
		}

		switch st {
		case betweenWords:
			// only alphanumerics can start a word
			switch classify(c) {
			case classLetter:
				buf.PushChar(toLowercase(c))
				st = inWordAfterAlnum
			case classNumber:
				buf.PushChar(c)
				st = inWordAfterAlnum
			}

		case inWordAfterAlnum:
			switch classify(c) {
			case classLetter:
				buf.PushChar(toLowercase(c))
			case classNumber:
				buf.PushChar(c)
			case classInWordSymbol:
				// tentatively part of the word; revoked if not followed
				// by another alphanumeric
				buf.PushChar(c)
				st = inWordAfterSymbol
			case classOther:
				list.Push(buf)
				buf.Clear()
				st = betweenWords
			}

		case inWordAfterSymbol:
			switch classify(c) {
			case classLetter:
				buf.PushChar(toLowercase(c))
				st = inWordAfterAlnum
			case classNumber:
				buf.PushChar(c)
				st = inWordAfterAlnum
			case classInWordSymbol:
				// still tentative; the whole run is revoked unless an
				// alphanumeric follows
				buf.PushChar(c)
			case classOther:
				// the word ended at its last alphanumeric; the pending
				// symbols are revoked before the flush
				trimTrailingSymbols(buf)
				list.Push(buf)
				buf.Clear()
				st = betweenWords
			}
		}
	}

	// a word pending at end-of-stream is flushed, minus any trailing symbols
	switch st {
	case inWordAfterAlnum:
		list.Push(buf)
	case inWordAfterSymbol:
		trimTrailingSymbols(buf)
		list.Push(buf)
	}

	slog.Debug("Tokenization complete", "tokens", list.Len())
	return list, nil
}
