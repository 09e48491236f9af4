package scenariotests

import (
	"strconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabot-http/conformance-tests/fixture"
)

func DoFramingTests(t *T) {
	t.Run("content length", func(t *T) {
		raw := t.FetchRaw(fixture.PathWithLength)
		assert.Equal(t, "200 OK", raw.Status)
		assert.Equal(t, strconv.Itoa(len(fixture.WithLengthBody)), raw.Header.Get("Content-Length"))
		assert.Equal(t, fixture.WithLengthBody, string(raw.Body))
	})

	t.Run("byte-exact response", func(t *T) {
		// the full wire bytes, not just the parsed pieces
		raw := t.FetchRaw(fixture.PathWithLength)
		expected := "HTTP/1.1 200 OK\r\n" +
			"Date: Mon, 17 Feb 2020 21:11:21 GMT\r\n" +
			"Content-type: text/plain; charset=utf-8\r\n" +
			"Content-Length: 14\r\n" +
			"\r\n" +
			"It is working."
		assert.Equal(t, expected, string(raw.Raw))
	})

	t.Run("no length header", func(t *T) {
		raw := t.FetchRaw(fixture.PathNoLength)
		assert.Equal(t, "200 OK", raw.Status)
		assert.Empty(t, raw.Header.Values("Content-Length"),
			"no-length scenario must not carry a Content-Length header")
		assert.Empty(t, raw.Header.Values("Transfer-Encoding"),
			"no-length scenario must not carry a Transfer-Encoding header")
		// end-of-body is signaled only by connection closure, which is what
		// let FetchRaw read to EOF above
		assert.Equal(t, fixture.NoLengthBody, string(raw.Body))
	})

	t.Run("small chunked", func(t *T) {
		raw := t.FetchRaw(fixture.PathSmallChunked)
		assert.Equal(t, "200 OK", raw.Status)
		assert.Equal(t, "chunked", raw.Header.Get("Transfer-Encoding"))

		payload, sizes, err := fixture.DecodeChunked(raw.Body)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 1, 2, 2, 3, 1}, sizes)
		assert.Equal(t, fixture.WithLengthBody, string(payload),
			"small chunked payload must reconstruct the with-length body")
	})

	t.Run("large chunked", func(t *T) {
		raw := t.FetchRaw(fixture.PathLargeChunked)
		assert.Equal(t, "200 OK", raw.Status)
		assert.Equal(t, "chunked", raw.Header.Get("Transfer-Encoding"))

		payload, sizes, err := fixture.DecodeChunked(raw.Body)
		require.NoError(t, err)
		assert.Equal(t, []int{15, 36}, sizes)
		assert.Equal(t, fixture.LargeChunkedText, string(payload))
	})

	t.Run("lorem ipsum", func(t *T) {
		raw := t.FetchRaw(fixture.PathLoremIpsum)
		assert.Equal(t, "200 OK", raw.Status)
		assert.Equal(t, strconv.Itoa(len(fixture.LoremIpsumBody)), raw.Header.Get("Content-Length"))
		assert.Equal(t, fixture.LoremIpsumBody, string(raw.Body))
	})

	t.Run("client under test", func(t *T) {
		t.Run("reads close-terminated body", func(t *T) {
			out := t.RunClient(fixture.PathNoLength)
			assert.Equal(t, fixture.NoLengthBody, string(out))
		})

		t.Run("reads content-length body", func(t *T) {
			out := t.RunClient(fixture.PathWithLength)
			assert.Equal(t, fixture.WithLengthBody, string(out))
		})

		t.Run("decodes small chunks", func(t *T) {
			out := t.RunClient(fixture.PathSmallChunked)
			assert.Equal(t, fixture.WithLengthBody, string(out))
		})

		t.Run("decodes chunks larger than its buffer", func(t *T) {
			out := t.RunClient(fixture.PathLargeChunked)
			assert.Equal(t, fixture.LargeChunkedText, string(out))
		})

		t.Run("reads body larger than one buffer fill", func(t *T) {
			out := t.RunClient(fixture.PathLoremIpsum)
			assert.Equal(t, fixture.LoremIpsumBody, string(out))
		})
	})
}
