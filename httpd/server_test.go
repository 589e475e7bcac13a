package httpd

import (
	"io"
	"net"
	"strings"
	"testing"

	"github.com/acasas01/simple-app-server-project/internal/obs"
)

func startServer(t *testing.T, cfg func(*Server)) (*Server, string, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &Server{}
	if cfg != nil {
		cfg(s)
	}
	go func() { _ = s.Serve(ln) }()
	return s, ln.Addr().String(), func() { _ = ln.Close() }
}

// roundTrip writes one raw request and reads the whole response; the
// server closes the connection after answering.
func roundTrip(t *testing.T, addr, raw string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	if _, err := c.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := io.ReadAll(c)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(out)
}

func TestServer_ServesFile(t *testing.T) {
	h := newTestHandler(t)
	_, addr, stop := startServer(t, func(s *Server) { s.Dir = h.Dir })
	defer stop()

	res := roundTrip(t, addr, "GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response=%q", res)
	}
	if !strings.HasSuffix(res, indexPage) {
		t.Fatalf("response does not end with file content: %q", res)
	}
}

func TestServer_PostEcho(t *testing.T) {
	h := newTestHandler(t)
	_, addr, stop := startServer(t, func(s *Server) { s.Dir = h.Dir })
	defer stop()

	res := roundTrip(t, addr, "POST /form HTTP/1.1\r\nHost: x\r\nContent-Length: 7\r\n\r\na=1&b=2")
	if !strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response=%q", res)
	}
	if !strings.Contains(res, "<tr><td>a</td><td>1</td></tr>") {
		t.Fatalf("response missing table row: %q", res)
	}
}

func TestServer_MalformedRequestGets400(t *testing.T) {
	_, addr, stop := startServer(t, nil)
	defer stop()

	res := roundTrip(t, addr, "GARBAGE\r\n\r\n")
	if !strings.HasPrefix(res, "HTTP/1.1 400 BAD REQUEST\r\n") {
		t.Fatalf("response=%q", res)
	}
}

func TestServer_UnsupportedMethod(t *testing.T) {
	_, addr, stop := startServer(t, nil)
	defer stop()

	res := roundTrip(t, addr, "DELETE /index.html HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(res, "HTTP/1.1 405 METHOD NOT ALLOWED\r\n") {
		t.Fatalf("response=%q", res)
	}
}

func TestServer_CustomHandler(t *testing.T) {
	h := HandlerFunc(func(r *Request) ([]byte, error) {
		return NewResponseBuilder().
			SetStatus(200, "OK").
			AddHeader("Connection", "close").
			SetContent("custom: " + r.Path).
			Build()
	})
	_, addr, stop := startServer(t, func(s *Server) { s.Handler = h })
	defer stop()

	res := roundTrip(t, addr, "GET /anything HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasSuffix(res, "custom: anything") {
		t.Fatalf("response=%q", res)
	}
}

func TestServer_CountsRequestsAndResponses(t *testing.T) {
	h := newTestHandler(t)
	m := &obs.MemMeter{}
	_, addr, stop := startServer(t, func(s *Server) {
		s.Dir = h.Dir
		s.Metrics = m
	})
	defer stop()

	roundTrip(t, addr, "GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n")
	roundTrip(t, addr, "GET /nope.html HTTP/1.1\r\nHost: x\r\n\r\n")
	roundTrip(t, addr, "GARBAGE\r\n\r\n")

	if got := m.Count("httpd_requests_total", obs.Label{Key: "method", Value: "GET"}); got != 2 {
		t.Fatalf("requests counted=%v, want 2", got)
	}
	if got := m.Count("httpd_responses_total", obs.Label{Key: "status", Value: "200"}); got != 1 {
		t.Fatalf("200 responses counted=%v, want 1", got)
	}
	if got := m.Count("httpd_responses_total", obs.Label{Key: "status", Value: "404"}); got != 1 {
		t.Fatalf("404 responses counted=%v, want 1", got)
	}
	if got := m.Count("httpd_malformed_requests_total"); got != 1 {
		t.Fatalf("malformed requests counted=%v, want 1", got)
	}
}

func TestServer_PanickingHandlerDoesNotKillAcceptLoop(t *testing.T) {
	h := HandlerFunc(func(r *Request) ([]byte, error) {
		if r.Path == "boom" {
			panic("handler exploded")
		}
		return NewResponseBuilder().
			SetStatus(200, "OK").
			AddHeader("Connection", "close").
			SetContent("fine").
			Build()
	})
	_, addr, stop := startServer(t, func(s *Server) { s.Handler = h })
	defer stop()

	// The panic is confined to its connection: the client sees the
	// connection close with no response written.
	if res := roundTrip(t, addr, "GET /boom HTTP/1.1\r\nHost: x\r\n\r\n"); res != "" {
		t.Fatalf("response after panic=%q, want none", res)
	}

	// The server must still answer the next connection.
	res := roundTrip(t, addr, "GET /ok HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response=%q", res)
	}
	if !strings.HasSuffix(res, "fine") {
		t.Fatalf("response=%q", res)
	}
}

func TestServer_PeerClosingEarlyDoesNotKillAcceptLoop(t *testing.T) {
	h := newTestHandler(t)
	_, addr, stop := startServer(t, func(s *Server) { s.Dir = h.Dir })
	defer stop()

	// Connect and close without sending anything.
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_ = c.Close()

	// The server must still answer the next connection.
	res := roundTrip(t, addr, "GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response=%q", res)
	}
}
