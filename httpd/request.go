package httpd

import (
	"strings"

	"github.com/acasas01/simple-app-server-project/httpd/internal/http1"
)

// Request holds the data a client sent in one message. It is built once
// per connection and read-only afterwards.
//
// Method is the verbatim token from the start line. Path is the request
// target with its leading "/" stripped, used as-is as a path relative to
// the server's working directory. Header maps lower-cased names to
// values. Content is the decoded body text, possibly empty.
type Request struct {
	Method  string
	Path    string
	Header  map[string]string
	Content string
}

func newRequest(pr *http1.ParsedRequest) *Request {
	return &Request{
		Method:  pr.Method,
		Path:    strings.TrimPrefix(pr.Target, "/"),
		Header:  pr.Header,
		Content: pr.Body,
	}
}
