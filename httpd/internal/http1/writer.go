package http1

import (
	"bufio"
	"fmt"
)

// WriteError writes a minimal response with no body, used when a request
// never made it through parsing. Best effort: the connection is closed
// immediately afterwards, so the error is not propagated beyond the
// caller's logging.
func WriteError(bw *bufio.Writer, code int, reason string) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", code, reason); err != nil {
		return err
	}
	if _, err := fmt.Fprint(bw, "Connection: close\r\n\r\n"); err != nil {
		return err
	}
	return bw.Flush()
}
