package fixture

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveStatic(t *testing.T, c *Catalog, path string) Scenario {
	s, ok := c.Resolve(path, "")
	require.True(t, ok, "no route for %s", path)
	return s
}

func headerValue(s Scenario, name string) (string, bool) {
	for _, h := range s.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

func TestSmallChunkedMatchesOriginalWireBytes(t *testing.T) {
	s := resolveStatic(t, NewCatalog(), PathSmallChunked)
	expected := "2\r\nIt\r\n" +
		"3\r\n is\r\n" +
		"1\r\n \r\n" +
		"2\r\nwo\r\n" +
		"2\r\nrk\r\n" +
		"3\r\ning\r\n" +
		"1\r\n.\r\n" +
		"0\r\n\r\n"
	assert.Equal(t, expected, string(s.Body))
}

func TestChunkedScenariosReconstructPlainBodies(t *testing.T) {
	c := NewCatalog()

	small := resolveStatic(t, c, PathSmallChunked)
	payload, sizes, err := DecodeChunked(small.Body)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1, 2, 2, 3, 1}, sizes)
	assert.Equal(t, WithLengthBody, string(payload),
		"small chunked payload must equal the with-length body")

	large := resolveStatic(t, c, PathLargeChunked)
	payload, sizes, err = DecodeChunked(large.Body)
	require.NoError(t, err)
	assert.Equal(t, []int{15, 36}, sizes)
	assert.Equal(t, LargeChunkedText, string(payload))
}

func TestFramingInvariants(t *testing.T) {
	c := NewCatalog()
	paths := []string{PathNoLength, PathWithLength, PathSmallChunked, PathLargeChunked, PathE500, PathLoremIpsum}

	for _, path := range paths {
		s := resolveStatic(t, c, path)
		t.Run(s.Name, func(t *testing.T) {
			cl, hasCL := headerValue(s, "Content-Length")
			_, hasTE := headerValue(s, "Transfer-Encoding")

			switch s.Framing {
			case FramingContentLength:
				require.True(t, hasCL)
				assert.Equal(t, strconv.Itoa(len(s.Body)), cl)
				assert.False(t, hasTE)
			case FramingChunked:
				assert.True(t, hasTE)
				assert.False(t, hasCL)
			case FramingNone:
				assert.False(t, hasCL, "no-length scenario must not declare a length")
				assert.False(t, hasTE)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "with_length", NormalizePath("/with-length"))
	assert.Equal(t, "with_length", NormalizePath("/With-Length"))
	assert.Equal(t, "with_length", NormalizePath("/with_length"))
	assert.Equal(t, "a_b_c", NormalizePath("/a/b-c"))
	assert.Equal(t, "", NormalizePath("/"))
}

func TestRedirectCountDown(t *testing.T) {
	c := NewCatalog()

	s, ok := c.Resolve(PathRedirectCountDown, "3")
	require.True(t, ok)
	assert.Equal(t, "302 Found", s.StatusLine)
	loc, _ := headerValue(s, "Location")
	assert.Equal(t, PathRedirectCountDown+"?2", loc)

	s, _ = c.Resolve(PathRedirectCountDown, "0")
	loc, _ = headerValue(s, "Location")
	assert.Equal(t, PathWithLength, loc, "terminal hop must point at the fixed-content route")

	// a missing or malformed counter behaves like 0
	s, _ = c.Resolve(PathRedirectCountDown, "")
	loc, _ = headerValue(s, "Location")
	assert.Equal(t, PathWithLength, loc)

	cl, hasCL := headerValue(s, "Content-Length")
	require.True(t, hasCL)
	assert.Equal(t, "0", cl)
}

func TestRedirectChainLength(t *testing.T) {
	c := NewCatalog()
	query := "3"
	hops := 0
	for {
		s, ok := c.Resolve(PathRedirectCountDown, query)
		require.True(t, ok)
		hops++
		require.Less(t, hops, 10, "chain does not terminate")
		loc, _ := headerValue(s, "Location")
		if loc == PathWithLength {
			break
		}
		require.Equal(t, PathRedirectCountDown+"?", loc[:len(PathRedirectCountDown)+1])
		query = loc[len(PathRedirectCountDown)+1:]
	}
	assert.Equal(t, 4, hops)
}

func TestResolveUnknownPath(t *testing.T) {
	c := NewCatalog()
	_, ok := c.Resolve("/no-such-scenario", "")
	assert.False(t, ok)
	assert.Equal(t, "404 Not Found", c.NotFound().StatusLine)
}

func TestDecodeChunkedRejectsBadFraming(t *testing.T) {
	for _, bad := range []string{
		"",
		"5\r\nab\r\n0\r\n\r\n",     // truncated data
		"2\r\nab",                  // missing CRLF after data
		"zz\r\nab\r\n0\r\n\r\n",    // bad size
		"2\r\nab\r\n0\r\n\r\nmore", // trailing garbage
	} {
		_, _, err := DecodeChunked([]byte(bad))
		assert.Error(t, err, "expected decode failure for %q", bad)
	}
}
