package httpd

import (
	"bufio"
	"errors"
	"io"
	"net"

	"github.com/acasas01/simple-app-server-project/httpd/internal/http1"
	"github.com/acasas01/simple-app-server-project/internal/obs"
)

// Handler produces the full wire bytes of one response for one request.
type Handler interface {
	Respond(*Request) ([]byte, error)
}

type HandlerFunc func(*Request) ([]byte, error)

func (f HandlerFunc) Respond(r *Request) ([]byte, error) { return f(r) }

// Server accepts TCP connections and answers one request per
// connection. The accept loop runs sequentially and spawns one
// goroutine per connection; connections share no mutable state, so no
// locking is involved anywhere in the request path.
type Server struct {
	Addr    string  // listen address; defaults to "localhost:9001"
	Dir     string  // working directory for static files; defaults to "."
	Handler Handler // defaults to a FileHandler rooted at Dir
	BufSize int     // framer read chunk size; defaults to http1.DefaultBufSize
	Log     obs.Logger
	Metrics obs.Meter
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = "localhost:9001"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on l until l fails, typically by being
// closed.
func (s *Server) Serve(l net.Listener) error {
	defer l.Close()
	for {
		c, err := l.Accept()
		if err != nil {
			return err
		}
		go s.serveConn(c)
	}
}

func (s *Server) handler() Handler {
	if s.Handler != nil {
		return s.Handler
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return &FileHandler{Dir: dir}
}

func (s *Server) log() obs.Logger {
	if s.Log != nil {
		return s.Log
	}
	return obs.NopLogger{}
}

func (s *Server) meter() obs.Meter {
	if s.Metrics != nil {
		return s.Metrics
	}
	return obs.NopMeter{}
}

// serveConn owns one accepted connection: frame one request, dispatch
// it, write the response, close. A failure here is local to this
// connection; it never reaches the accept loop or sibling connections.
func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	id := genID()
	log := s.log()
	defer func() {
		if v := recover(); v != nil {
			log.Logf(obs.Error, "conn %s: handler panic: %v", id, v)
		}
	}()

	rr := &http1.Reader{Src: c, BufSize: s.BufSize}
	pr, err := rr.ReadRequest()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Peer closed without sending anything.
			return
		}
		log.Logf(obs.Warn, "conn %s: read request: %v", id, err)
		s.meter().Counter("httpd_malformed_requests_total", 1)
		_ = http1.WriteError(bufio.NewWriter(c), 400, "BAD REQUEST")
		return
	}
	r := newRequest(pr)
	log.Logf(obs.Info, "conn %s: %s /%s", id, r.Method, r.Path)
	s.meter().Counter("httpd_requests_total", 1, obs.Label{Key: "method", Value: r.Method})

	out, err := s.handler().Respond(r)
	if err != nil {
		log.Logf(obs.Error, "conn %s: respond: %v", id, err)
		return
	}
	if _, err := c.Write(out); err != nil {
		log.Logf(obs.Warn, "conn %s: write response: %v", id, err)
		return
	}
	s.meter().Counter("httpd_responses_total", 1, obs.Label{Key: "status", Value: statusOf(out)})
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
}

// statusOf extracts the status code from serialized response bytes, for
// metrics labels. Every response starts with "HTTP/1.1 NNN".
func statusOf(out []byte) string {
	const off = len("HTTP/1.1 ")
	if len(out) >= off+3 {
		return string(out[off : off+3])
	}
	return "unknown"
}
