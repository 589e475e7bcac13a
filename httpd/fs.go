package httpd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Extensions whose files are read and transferred as raw binary.
var binaryExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "pdf": {},
	"mp3": {}, "wav": {}, "avi": {}, "mp4": {}, "mov": {},
}

var mimeTypes = map[string]string{
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pdf":  "application/pdf",
	"mp4":  "video/mp4",
	"ogg":  "audio/ogg",
	"wav":  "audio/wav",
	"txt":  "text/plain",
	"mp3":  "audio/mp3",
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// hasOtherReadPermission reports whether the POSIX "other" class may
// read the file. This stands in for real authorization: only
// world-readable files are served.
func hasOtherReadPermission(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return fi.Mode().Perm()&0o004 != 0
}

func shouldReturnBinary(ext string) bool {
	_, ok := binaryExts[ext]
	return ok
}

// mimeTypeFor returns the MIME type registered for ext, defaulting to
// text/plain.
func mimeTypeFor(ext string) string {
	if t, ok := mimeTypes[ext]; ok {
		return t
	}
	return "text/plain"
}

// fileExt returns everything after the last dot. A name with no dot is
// returned whole; it then misses every table and falls through to the
// text/plain defaults.
func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// readFileContents reads a text file, rejecting content that is not
// valid UTF-8.
func readFileContents(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: not valid UTF-8 text", name)
	}
	return data, nil
}

// readFileBinaryContents reads a file verbatim.
func readFileBinaryContents(name string) ([]byte, error) {
	return os.ReadFile(name)
}
