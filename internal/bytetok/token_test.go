package bytetok

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for i := 1; i < 64; i++ {
			src := []byte(uniuri.NewLen(i))
			token := Create(src)
			require.Equal(t, len(src), len(token))
			require.Equal(t, string(src), token.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		require.Nil(t, Create(nil))
		require.Nil(t, Create([]byte{}))
	})

	t.Run("zero bytes are dropped", func(t *testing.T) {
		src := []byte("\x00ab\x00\x00c\x00")
		token := Create(src)
		require.Equal(t, len(src)-4, len(token))
		require.Equal(t, "abc", token.String())
	})

	t.Run("only zero bytes", func(t *testing.T) {
		require.Empty(t, Create([]byte{0, 0, 0}))
	})

	t.Run("copies", func(t *testing.T) {
		src := []byte("hello")
		token := Create(src)
		src[0] = 'j'
		require.Equal(t, "hello", token.String())
	})
}

func TestCompare(t *testing.T) {
	token := Create([]byte("GET /"))
	require.Zero(t, Compare(token, "GET", 3))
	require.Zero(t, Compare(token, "GEX", 2))
	require.Zero(t, Compare(token, "anything", 0))
	require.Equal(t, int('T')-int('X'), Compare(token, "GEX", 3))
	require.Positive(t, Compare(token, "GEA", 3))
	require.Negative(t, Compare(token, "HEAD", 4))
}

func TestConcat(t *testing.T) {
	token := Create([]byte("Hello"))
	token.Concat(nil)
	require.Equal(t, "Hello", token.String())
	token.Concat([]byte(", world"))
	require.Equal(t, "Hello, world", token.String())
	require.Equal(t, 12, len(token))

	var empty Token
	empty.Concat([]byte("x"))
	require.Equal(t, "x", empty.String())
}

func TestRelease(t *testing.T) {
	token := Create([]byte("abc"))
	token.Release()
	require.Nil(t, token)

	var nilptr *Token
	require.NotPanics(t, func() {
		nilptr.Release()
	})
}

func TestClone(t *testing.T) {
	buff := Token("Hello, world")
	view := buff[:5]
	clone := view.Clone()
	buff[0] = 'J'
	require.Equal(t, "Jello", view.String())
	require.Equal(t, "Hello", clone.String())
	require.Nil(t, Token(nil).Clone())
}

func TestFindByte(t *testing.T) {
	token := Token("Host: example")
	suffix, found := FindByte(token, ':')
	require.True(t, found)
	require.Equal(t, ": example", suffix.String())

	_, found = FindByte(token, '\n')
	require.False(t, found)
}

func TestFind(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		suffix, found := Find(Token("GET / HTTP/1.1\r\nHost: a\r\n\r\n"), Token("\r\n\r\n"))
		require.True(t, found)
		require.Equal(t, "\r\n\r\n", suffix.String())
	})

	t.Run("first occurrence", func(t *testing.T) {
		suffix, found := Find(Token("abcabcabd"), Token("abd"))
		require.True(t, found)
		require.Equal(t, "abd", suffix.String())

		suffix, found = Find(Token("xxabcab"), Token("ab"))
		require.True(t, found)
		require.Equal(t, "abcab", suffix.String())
	})

	t.Run("not found", func(t *testing.T) {
		_, found := Find(Token("aaaaaaaa"), Token("aab "))
		require.False(t, found)
		_, found = Find(Token("ab"), Token("abc"))
		require.False(t, found)
		_, found = Find(nil, Token("a"))
		require.False(t, found)
	})

	t.Run("empty needle", func(t *testing.T) {
		suffix, found := Find(Token("abc"), nil)
		require.True(t, found)
		require.Equal(t, "abc", suffix.String())
	})

	t.Run("agrees with bytes.Index", func(t *testing.T) {
		haystack := Token(strings.Repeat(uniuri.NewLenChars(200, []byte("abc")), 3))
		for n := 1; n < 8; n++ {
			for i := 0; i+n <= 60; i++ {
				needle := haystack[i : i+n]
				require.Equal(t, bytes.Index(haystack, needle), Index(haystack, needle))
			}

			missing := Token(strings.Repeat("d", n))
			require.Equal(t, -1, Index(haystack, missing))
		}
	})
}

func BenchmarkIndex(b *testing.B) {
	haystack := Token(strings.Repeat("a", 4096) + "\r\n\r\n")
	needle := Token("\r\n\r\n")
	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()

	for range b.N {
		_ = Index(haystack, needle)
	}
}
