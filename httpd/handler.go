package httpd

import (
	"path/filepath"
	"strings"
)

// FileHandler answers requests from the files under Dir. It holds no
// per-request state: two concurrent requests for the same path never
// share a buffer.
type FileHandler struct {
	Dir string
}

// Respond dispatches on the request method and builds one response.
func (h *FileHandler) Respond(r *Request) ([]byte, error) {
	switch r.Method {
	case "GET":
		return h.get(r)
	case "POST":
		return h.post(r)
	case "HEAD":
		return h.head(r)
	}
	return h.methodNotAllowed()
}

func (h *FileHandler) resolve(p string) string {
	return filepath.Join(h.Dir, p)
}

// missing reports whether the request path names nothing servable. The
// empty path (a request for "/") is always missing: there is no index
// document rewriting.
func (h *FileHandler) missing(p string) bool {
	return p == "" || !fileExists(h.resolve(p))
}

func (h *FileHandler) get(r *Request) ([]byte, error) {
	if strings.Contains(r.Path, "redirect") {
		return h.redirect(r)
	}
	if h.missing(r.Path) {
		return h.notFound()
	}
	full := h.resolve(r.Path)
	if !hasOtherReadPermission(full) {
		return h.forbidden()
	}

	ext := fileExt(r.Path)
	var content []byte
	var err error
	if shouldReturnBinary(ext) {
		content, err = readFileBinaryContents(full)
	} else {
		content, err = readFileContents(full)
	}
	if err != nil {
		return nil, err
	}

	b := NewResponseBuilder()
	b.SetStatus(200, "OK")
	b.AddHeader("Content-Type", mimeTypeFor(ext))
	b.AddHeader("Connection", "close")
	b.AddIntHeader("Content-Length", len(content))
	b.SetContentBytes(content)
	return b.Build()
}

func (h *FileHandler) redirect(r *Request) ([]byte, error) {
	url, err := buildRedirectURL(r.Path)
	if err != nil {
		// Never emit a 307 without a usable Location.
		return h.badRequest()
	}
	b := NewResponseBuilder()
	b.SetStatus(307, "Redirect")
	b.AddHeader("Location", url)
	return b.Build()
}

func (h *FileHandler) post(r *Request) ([]byte, error) {
	html, err := renderFormTable(r.Content)
	if err != nil {
		return h.badRequest()
	}
	b := NewResponseBuilder()
	b.SetStatus(200, "OK")
	b.AddHeader("Allow", "POST")
	b.AddHeader("Content-Type", "text/html")
	b.AddHeader("Connection", "close")
	b.AddIntHeader("Content-Length", len(html))
	b.SetContent(html)
	return b.Build()
}

// head runs the same existence and permission checks as get but only the
// status differs; content is never set, so the builder emits no body.
func (h *FileHandler) head(r *Request) ([]byte, error) {
	b := NewResponseBuilder()
	switch {
	case h.missing(r.Path):
		b.SetStatus(404, "NOT FOUND")
	case !hasOtherReadPermission(h.resolve(r.Path)):
		b.SetStatus(403, "FORBIDDEN")
	default:
		b.SetStatus(200, "OK")
	}
	b.AddHeader("Allow", "HEAD")
	b.AddHeader("Connection", "close")
	return b.Build()
}

// notFound serves the 404 page from the working directory. A missing or
// unreadable error page degrades to an empty body.
func (h *FileHandler) notFound() ([]byte, error) {
	content, _ := readFileContents(h.resolve("404.html"))
	b := NewResponseBuilder()
	b.SetStatus(404, "NOT FOUND")
	b.SetContentBytes(content)
	b.AddHeader("Connection", "close")
	return b.Build()
}

func (h *FileHandler) forbidden() ([]byte, error) {
	content, _ := readFileContents(h.resolve("403.html"))
	b := NewResponseBuilder()
	b.SetStatus(403, "FORBIDDEN")
	b.SetContentBytes(content)
	b.AddHeader("Connection", "close")
	return b.Build()
}

func (h *FileHandler) badRequest() ([]byte, error) {
	b := NewResponseBuilder()
	b.SetStatus(400, "BAD REQUEST")
	b.AddHeader("Connection", "close")
	return b.Build()
}

func (h *FileHandler) methodNotAllowed() ([]byte, error) {
	b := NewResponseBuilder()
	b.SetStatus(405, "METHOD NOT ALLOWED")
	b.AddHeader("Connection", "close")
	return b.Build()
}
