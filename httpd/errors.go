package httpd

import "errors"

var (
	ErrNoStatus = errors.New("httpd: response status not set")
	ErrBadForm  = errors.New("httpd: malformed form body")
	ErrBadQuery = errors.New("httpd: unresolvable redirect query")
)
