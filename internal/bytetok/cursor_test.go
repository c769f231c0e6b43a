package bytetok

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectDelim(c *Cursor, set string) (tokens []string) {
	for {
		token, ok := c.NextDelim(Token(set))
		if !ok {
			return tokens
		}

		tokens = append(tokens, token.String())
	}
}

func collectPattern(c *Cursor, pattern string) (tokens []string) {
	for {
		token, ok := c.NextPattern(Token(pattern))
		if !ok {
			return tokens
		}

		tokens = append(tokens, token.String())
	}
}

func TestCursor_NextDelim(t *testing.T) {
	t.Run("request line", func(t *testing.T) {
		c := NewCursor(Token("GET /index.html HTTP/1.1"))
		require.Equal(t, []string{"GET", "/index.html", "HTTP/1.1"}, collectDelim(c, " "))

		_, ok := c.NextDelim(Token(" "))
		require.False(t, ok)
	})

	t.Run("delimiter runs", func(t *testing.T) {
		c := NewCursor(Token("  Hello   World!  "))
		require.Equal(t, []string{"Hello", "World!"}, collectDelim(c, " "))
	})

	t.Run("delimiter set", func(t *testing.T) {
		c := NewCursor(Token("a,b;;c, ;d"))
		require.Equal(t, []string{"a", "b", "c", "d"}, collectDelim(c, ",; "))
	})

	t.Run("only delimiters", func(t *testing.T) {
		c := NewCursor(Token("    "))
		require.Empty(t, collectDelim(c, " "))
		require.Empty(t, c.Rest())
	})

	t.Run("switching delimiters", func(t *testing.T) {
		c := NewCursor(Token("Host:  example.com  trailing"))
		key, ok := c.NextDelim(Token(":"))
		require.True(t, ok)
		require.Equal(t, "Host", key.String())
		value, ok := c.NextDelim(Token(" "))
		require.True(t, ok)
		require.Equal(t, "example.com", value.String())
		require.Equal(t, "trailing", c.Rest().String())
	})

	t.Run("views are capped", func(t *testing.T) {
		c := NewCursor(Token("ab cd"))
		token, ok := c.NextDelim(Token(" "))
		require.True(t, ok)
		token.Concat([]byte("!"))
		require.Equal(t, "ab!", token.String())
		require.Equal(t, "cd", c.Rest().String())
	})
}

func TestCursor_NextPattern(t *testing.T) {
	t.Run("request", func(t *testing.T) {
		c := NewCursor(Token("GET / HTTP/1.1\r\nHost: a\r\nAccept: */*\r\n\r\n"))
		require.Equal(t, []string{"GET / HTTP/1.1", "Host: a", "Accept: */*"}, collectPattern(c, "\r\n"))
	})

	t.Run("leading patterns", func(t *testing.T) {
		c := NewCursor(Token("\r\n\r\nline\r\n"))
		require.Equal(t, []string{"line"}, collectPattern(c, "\r\n"))
	})

	t.Run("unterminated tail", func(t *testing.T) {
		c := NewCursor(Token("first\r\nsecond"))
		require.Equal(t, []string{"first"}, collectPattern(c, "\r\n"))
		require.Equal(t, "second", c.Rest().String())
	})

	t.Run("no pattern at all", func(t *testing.T) {
		c := NewCursor(Token("GET / HTTP/1.1"))
		_, ok := c.NextPattern(Token("\r\n"))
		require.False(t, ok)
	})

	t.Run("lone CR is data", func(t *testing.T) {
		c := NewCursor(Token("a\rb\r\n"))
		require.Equal(t, []string{"a\rb"}, collectPattern(c, "\r\n"))
	})

	t.Run("empty pattern", func(t *testing.T) {
		c := NewCursor(Token("whole"))
		require.Equal(t, []string{"whole"}, collectPattern(c, ""))
	})

	t.Run("released", func(t *testing.T) {
		c := NewCursor(Token("a\r\nb\r\n"))
		c.Release()
		require.Empty(t, collectPattern(c, "\r\n"))
	})
}
