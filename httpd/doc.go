// Package httpd implements a minimal HTTP/1.1 server that serves static
// files from a working directory and echoes urlencoded form posts.
//
// The server handles GET, POST and HEAD; every other method receives a
// 405. Connections are one-shot: one request is read, one response is
// written, and the connection is closed. Keep-alive, chunked transfer
// encoding, TLS and request timeouts are deliberately out of scope.
//
// Quick start:
//
//	s := &httpd.Server{Addr: "localhost:9001", Dir: "./site"}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
//
// GET targets are resolved verbatim against the working directory. A
// request for "/" strips to an empty relative path and is answered 404;
// there is no index document rewriting. Files readable by the POSIX
// "other" class are served with a MIME type looked up by extension;
// files without that bit answer 403 with the contents of 403.html, and
// missing files answer 404 with 404.html. A target containing
// "redirect" is answered with a 307 whose Location points at a search
// engine chosen by the "selector" query parameter.
package httpd
