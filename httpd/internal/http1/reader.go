package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultBufSize is the read chunk size used when Reader.BufSize is unset.
const DefaultBufSize = 8192

var headerEnd = []byte("\r\n\r\n")

var (
	// ErrMalformedRequest reports a request that cannot be parsed: an
	// unusable start line, a header line with no colon, a bad
	// content-length, or a header block that never terminates.
	ErrMalformedRequest = errors.New("http1: malformed request")
	// ErrBodyEncoding reports a request body that is not valid UTF-8.
	// Binary request bodies are not supported.
	ErrBodyEncoding = errors.New("http1: request body is not valid UTF-8")
)

// ParsedRequest is a minimal representation parsed from the wire.
// Header keys are lower-cased; a repeated header keeps its last value.
type ParsedRequest struct {
	Method string
	Target string
	Header map[string]string
	Body   string
}

// Reader frames exactly one request message from a raw byte stream.
//
// It reads BufSize-byte chunks until the accumulated bytes contain the
// CRLFCRLF header terminator, then completes the body using the declared
// content-length, or by reading until the peer closes when body bytes
// arrived with no declared length. Connections are not persistent, so
// any bytes past the framed message are never consumed.
type Reader struct {
	Src     io.Reader
	BufSize int
}

func (r *Reader) bufSize() int {
	if r.BufSize <= 0 {
		return DefaultBufSize
	}
	return r.BufSize
}

// ReadRequest reads one complete request message from Src.
//
// It returns io.EOF when the stream closes before any byte arrives, and
// an error wrapping ErrMalformedRequest for unparseable input.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	acc, end, err := r.readUntilTerminator()
	if err != nil {
		return nil, err
	}
	headerRaw := acc[:end]
	// Bytes past the terminator in the same chunk are body content the
	// client sent ahead of time.
	body := append([]byte(nil), acc[end+len(headerEnd):]...)

	startLine, hdr, err := parseHeaderBlock(headerRaw)
	if err != nil {
		return nil, err
	}
	body, err = r.completeBody(body, hdr)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(body) {
		return nil, ErrBodyEncoding
	}

	fields := strings.Fields(startLine)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: start line %q", ErrMalformedRequest, startLine)
	}
	return &ParsedRequest{
		Method: fields[0],
		Target: fields[1],
		Header: hdr,
		Body:   string(body),
	}, nil
}

// readUntilTerminator accumulates chunk reads until CRLFCRLF appears and
// returns the accumulated bytes with the terminator's index.
func (r *Reader) readUntilTerminator() ([]byte, int, error) {
	buf := make([]byte, r.bufSize())
	var acc []byte
	for {
		n, err := r.Src.Read(buf)
		if n > 0 {
			acc = append(acc, buf[:n]...)
			if i := bytes.Index(acc, headerEnd); i >= 0 {
				return acc, i, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				if len(acc) == 0 {
					return nil, 0, io.EOF
				}
				return nil, 0, fmt.Errorf("%w: header block not terminated", ErrMalformedRequest)
			}
			return nil, 0, err
		}
	}
}

func parseHeaderBlock(raw []byte) (string, map[string]string, error) {
	if !utf8.Valid(raw) {
		return "", nil, fmt.Errorf("%w: header block is not valid UTF-8", ErrMalformedRequest)
	}
	lines := strings.Split(string(raw), "\r\n")
	hdr := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return "", nil, fmt.Errorf("%w: header line %q", ErrMalformedRequest, line)
		}
		// The value is the entire remainder of the line, embedded
		// colons included. OWS around it is stripped. A repeated key
		// overwrites the earlier value.
		hdr[strings.ToLower(line[:i])] = strings.TrimSpace(line[i+1:])
	}
	return lines[0], hdr, nil
}

// completeBody appends whatever body bytes are still owed beyond those
// already captured alongside the header block.
func (r *Reader) completeBody(body []byte, hdr map[string]string) ([]byte, error) {
	v, ok := hdr["content-length"]
	if !ok {
		if len(body) == 0 {
			return body, nil
		}
		// Content arrived with no declared length: read until the
		// peer closes its write side. Acceptable only because
		// connections are one-shot.
		rest, err := io.ReadAll(r.Src)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		return append(body, rest...), nil
	}
	want, err := strconv.Atoi(v)
	if err != nil || want < 0 {
		return nil, fmt.Errorf("%w: content-length %q", ErrMalformedRequest, v)
	}
	remain := want - len(body)
	if remain <= 0 {
		return body, nil
	}
	rest := make([]byte, remain)
	if _, err := io.ReadFull(r.Src, rest); err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return append(body, rest...), nil
}
