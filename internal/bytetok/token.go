// Package bytetok implements the byte-sequence primitive the request pipeline is built on.
// A Token owns its bytes and carries its length explicitly; no terminator is ever implied.
package bytetok

import (
	"github.com/indigo-web/utils/uf"
)

// Token is an owned byte sequence. The nil Token is the empty token.
type Token []byte

// Create copies src into a new Token, silently dropping every zero byte. Therefore, the
// resulting token may be shorter than the input. Empty input results in nil.
func Create(src []byte) Token {
	if len(src) == 0 {
		return nil
	}

	t := make(Token, 0, len(src))
	for _, c := range src {
		if c != 0 {
			t = append(t, c)
		}
	}

	return t
}

// Compare compares the first n bytes of the token with the literal. Returns 0 if they are
// equal, otherwise the difference of the first mismatching pair. Both sides must be at
// least n bytes long.
func Compare(t Token, literal string, n int) int {
	for i := 0; i < n; i++ {
		if t[i] != literal[i] {
			return int(t[i]) - int(literal[i])
		}
	}

	return 0
}

// Concat appends raw bytes to the token, growing its storage.
func (t *Token) Concat(b []byte) {
	if len(b) == 0 {
		return
	}

	*t = append(*t, b...)
}

// Clone returns a copy of the token that doesn't share memory with the original.
func (t Token) Clone() Token {
	if t == nil {
		return nil
	}

	return append(make(Token, 0, len(t)), t...)
}

// Equal reports whether the token consists exactly of the literal.
func (t Token) Equal(literal string) bool {
	return uf.B2S(t) == literal
}

func (t Token) String() string {
	return string(t)
}

// Release drops the backing storage. It's safe to call on a nil pointer or an empty token.
func (t *Token) Release() {
	if t != nil {
		*t = nil
	}
}
