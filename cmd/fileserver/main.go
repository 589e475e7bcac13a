package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/acasas01/simple-app-server-project/httpd"
	"github.com/acasas01/simple-app-server-project/internal/obs"
)

var (
	addr    = flag.String("addr", "localhost:9001", "listen address")
	dir     = flag.String("dir", ".", "working directory served to clients")
	verbose = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		zl = zl.Level(zerolog.InfoLevel)
	}
	zl.Info().Str("addr", *addr).Str("dir", *dir).Msg("server starting")

	s := &httpd.Server{
		Addr: *addr,
		Dir:  *dir,
		Log:  obs.ZerologLogger{L: zl},
	}
	if err := s.ListenAndServe(); err != nil {
		zl.Fatal().Err(err).Msg("server exited")
	}
}
