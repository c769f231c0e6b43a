package bytetok

import "bytes"

// FindByte returns the suffix of the token starting at the first occurrence of c. The
// suffix shares memory with the token.
func FindByte(t Token, c byte) (Token, bool) {
	i := bytes.IndexByte(t, c)
	if i == -1 {
		return nil, false
	}

	return t[i:], true
}

// Find returns the suffix of haystack starting at the first occurrence of needle. The
// suffix shares memory with haystack.
func Find(haystack, needle Token) (Token, bool) {
	i := Index(haystack, needle)
	if i == -1 {
		return nil, false
	}

	return haystack[i:], true
}

// Index returns the offset of the first occurrence of needle in haystack, or -1. Every
// window is compared right-to-left; on mismatch the window is shifted by the distance
// from the last occurrence of the window's final byte in the needle (Horspool).
func Index(haystack, needle Token) int {
	n, m := len(haystack), len(needle)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return bytes.IndexByte(haystack, needle[0])
	}

	var shift [256]int
	for i := range shift {
		shift[i] = m
	}

	for i := 0; i < m-1; i++ {
		shift[needle[i]] = m - 1 - i
	}

	for i := 0; i <= n-m; {
		j := m - 1
		for j >= 0 && haystack[i+j] == needle[j] {
			j--
		}

		if j < 0 {
			return i
		}

		i += shift[haystack[i+m-1]]
	}

	return -1
}

// hasPrefixAt reports whether pattern occurs in t exactly at the offset.
func hasPrefixAt(t Token, offset int, pattern Token) bool {
	return len(t)-offset >= len(pattern) && bytes.Equal(t[offset:offset+len(pattern)], pattern)
}
