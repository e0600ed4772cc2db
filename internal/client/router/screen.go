package router

import (
	"bytes"
	"net/http"
)

// screen is the http.ResponseWriter views render into. Nothing reaches the
// terminal until the final hop of a navigation is known.
type screen struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newScreen() *screen {
	return &screen{header: make(http.Header)}
}

func (s *screen) Header() http.Header { return s.header }

func (s *screen) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
}

func (s *screen) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.body.Write(p)
}

func (s *screen) statusCode() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *screen) redirect() (string, bool) {
	switch s.statusCode() {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		loc := s.header.Get("Location")
		return loc, loc != ""
	}
	return "", false
}
