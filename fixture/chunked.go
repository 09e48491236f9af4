package fixture

import (
	"bytes"
	"fmt"
	"strconv"
)

// DecodeChunked parses a canonically chunk-encoded body and returns the
// concatenated chunk payloads along with the size of each chunk in emission
// order. It rejects anything that is not exact <hex-size>\r\n<data>\r\n
// framing terminated by a zero-size chunk.
func DecodeChunked(body []byte) (payload []byte, sizes []int, err error) {
	rest := body
	for {
		eol := bytes.Index(rest, []byte("\r\n"))
		if eol < 0 {
			return nil, nil, fmt.Errorf("missing CRLF after chunk size in %q", rest)
		}
		size, err := strconv.ParseInt(string(rest[:eol]), 16, 32)
		if err != nil {
			return nil, nil, fmt.Errorf("bad chunk size %q: %w", rest[:eol], err)
		}
		rest = rest[eol+2:]
		if size == 0 {
			if !bytes.Equal(rest, []byte("\r\n")) {
				return nil, nil, fmt.Errorf("unexpected bytes after terminal chunk: %q", rest)
			}
			return payload, sizes, nil
		}
		if int64(len(rest)) < size+2 {
			return nil, nil, fmt.Errorf("chunk of size %d truncated", size)
		}
		if !bytes.Equal(rest[size:size+2], []byte("\r\n")) {
			return nil, nil, fmt.Errorf("missing CRLF after chunk data")
		}
		payload = append(payload, rest[:size]...)
		sizes = append(sizes, int(size))
		rest = rest[size+2:]
	}
}
