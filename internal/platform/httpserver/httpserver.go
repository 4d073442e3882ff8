package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for callback traffic. Write
// timeout is generous because a submitted callback is handled synchronously
// and may render and dispatch several letters before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
}
