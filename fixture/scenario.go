package fixture

import (
	"fmt"
	"strconv"
)

// Framing describes how a scenario's response signals the end of its body.
type Framing int

const (
	// FramingNone means no length-indicating header is emitted; the server
	// signals end-of-body only by closing the connection.
	FramingNone Framing = iota
	// FramingContentLength means a Content-Length header matching the exact
	// body length is emitted.
	FramingContentLength
	// FramingChunked means the body bytes are already chunk-encoded and a
	// Transfer-Encoding header is emitted.
	FramingChunked
)

func (f Framing) String() string {
	switch f {
	case FramingContentLength:
		return "content-length"
	case FramingChunked:
		return "chunked"
	default:
		return "none"
	}
}

// Header is a single response header. Scenarios keep headers as an ordered
// list rather than a map so the response bytes are fully deterministic.
type Header struct {
	Name  string
	Value string
}

// Scenario is one canned HTTP response. The server writes exactly the status
// line, headers, and body given here; it never injects framing headers on its
// own.
type Scenario struct {
	Name       string
	StatusLine string // status code and reason, e.g. "200 OK"
	Headers    []Header
	Body       []byte
	Framing    Framing
}

// fixedDate keeps every scenario byte-identical from one run to the next.
const fixedDate = "Mon, 17 Feb 2020 21:11:21 GMT"

const textPlain = "text/plain; charset=utf-8"

func textScenario(name, statusLine string, body []byte, framing Framing, extra ...Header) Scenario {
	// the lowercase t in Content-type is part of the canonical scenario bytes
	headers := []Header{
		{"Date", fixedDate},
		{"Content-type", textPlain},
	}
	switch framing {
	case FramingContentLength:
		headers = append(headers, Header{"Content-Length", strconv.Itoa(len(body))})
	case FramingChunked:
		headers = append(headers, Header{"Transfer-Encoding", "chunked"})
	}
	headers = append(headers, extra...)
	return Scenario{
		Name:       name,
		StatusLine: statusLine,
		Headers:    headers,
		Body:       body,
		Framing:    framing,
	}
}

// encodeChunks produces a canonical chunked body: each piece prefixed by its
// hex size and CRLF, terminated by a zero-size chunk and trailing CRLF.
func encodeChunks(pieces ...string) []byte {
	var out []byte
	for _, p := range pieces {
		out = append(out, fmt.Sprintf("%X\r\n%s\r\n", len(p), p)...)
	}
	out = append(out, "0\r\n\r\n"...)
	return out
}
