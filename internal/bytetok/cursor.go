package bytetok

// Cursor walks an immutable token, yielding sub-tokens on every call. It's the resumable
// tokenizer: the first call and every following one share the same state, which is just
// an offset into the backing buffer. Tokens returned are views into that buffer, so they
// must be cloned in case they outlive it.
type Cursor struct {
	buf Token
	pos int
}

func NewCursor(t Token) *Cursor {
	return &Cursor{buf: t}
}

// NextDelim returns the next run of bytes not contained in the delimiter set. Leading
// delimiters are skipped, trailing ones are consumed. The end of input terminates a run.
func (c *Cursor) NextDelim(set Token) (Token, bool) {
	buf, i := c.buf, c.pos

	for i < len(buf) && isDelim(buf[i], set) {
		i++
	}

	if i == len(buf) {
		c.pos = i
		return nil, false
	}

	start := i
	for i < len(buf) && !isDelim(buf[i], set) {
		i++
	}

	token := buf[start:i:i]

	for i < len(buf) && isDelim(buf[i], set) {
		i++
	}

	c.pos = i

	return token, true
}

// NextPattern returns bytes up to the next occurrence of the pattern. Leading and trailing
// repetitions of the pattern are consumed. Unlike NextDelim, a tail that isn't followed by
// the pattern is not a token: it stays unconsumed and no token is returned.
func (c *Cursor) NextPattern(pattern Token) (Token, bool) {
	if len(pattern) == 0 {
		rest := c.Rest()
		c.pos = len(c.buf)
		return rest, len(rest) > 0
	}

	buf, i := c.buf, c.pos

	for i < len(buf) && hasPrefixAt(buf, i, pattern) {
		i += len(pattern)
	}

	if i == len(buf) {
		c.pos = i
		return nil, false
	}

	n := Index(buf[i:], pattern)
	if n == -1 {
		return nil, false
	}

	start, end := i, i+n
	token := buf[start:end:end]

	for i = end; i < len(buf) && hasPrefixAt(buf, i, pattern); {
		i += len(pattern)
	}

	c.pos = i

	return token, true
}

// Rest returns the unconsumed remainder.
func (c *Cursor) Rest() Token {
	return c.buf[c.pos:]
}

// Release drops the reference to the backing buffer. Following calls yield no tokens.
func (c *Cursor) Release() {
	c.buf, c.pos = nil, 0
}

func isDelim(b byte, set Token) bool {
	for _, d := range set {
		if b == d {
			return true
		}
	}

	return false
}
