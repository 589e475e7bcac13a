package httpd

import (
	"bytes"
	"fmt"
	"strconv"
)

const crlf = "\r\n"

// ResponseBuilder accumulates a status line, header lines and an
// optional body, then serializes them once into wire bytes.
//
// Header lines keep their insertion order and a repeated key appends a
// duplicate line; no validation or de-duplication is performed. If no
// content is ever set, zero body bytes follow the blank line, which is
// how HEAD responses omit their body.
type ResponseBuilder struct {
	status  string
	headers []string
	content []byte
}

func NewResponseBuilder() *ResponseBuilder { return &ResponseBuilder{} }

// SetStatus stores the status line "HTTP/1.1 <code> <reason>".
func (b *ResponseBuilder) SetStatus(code int, reason string) *ResponseBuilder {
	b.status = fmt.Sprintf("HTTP/1.1 %d %s", code, reason)
	return b
}

// AddHeader appends one header line.
func (b *ResponseBuilder) AddHeader(key, value string) *ResponseBuilder {
	b.headers = append(b.headers, key+": "+value)
	return b
}

// AddIntHeader appends one header line with a decimal-formatted value.
func (b *ResponseBuilder) AddIntHeader(key string, value int) *ResponseBuilder {
	return b.AddHeader(key, strconv.Itoa(value))
}

// SetContent stores the UTF-8 bytes of body.
func (b *ResponseBuilder) SetContent(body string) *ResponseBuilder {
	b.content = []byte(body)
	return b
}

// SetContentBytes stores body verbatim.
func (b *ResponseBuilder) SetContentBytes(body []byte) *ResponseBuilder {
	b.content = body
	return b
}

// Build serializes the response: status line, header lines, one blank
// line, then the body bytes. Building without a status set is an error;
// a malformed message is never produced.
func (b *ResponseBuilder) Build() ([]byte, error) {
	if b.status == "" {
		return nil, ErrNoStatus
	}
	var buf bytes.Buffer
	buf.WriteString(b.status)
	buf.WriteString(crlf)
	for _, h := range b.headers {
		buf.WriteString(h)
		buf.WriteString(crlf)
	}
	buf.WriteString(crlf)
	buf.Write(b.content)
	return buf.Bytes(), nil
}
