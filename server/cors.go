package server

import (
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/menmos/intervals-go/payload"
)

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost}, ", ")
	corsHeaders = "Content-Type"
)

type originSet struct {
	any     bool
	origins map[string]struct{}
}

func newOriginSet(origins []string) *originSet {
	set := &originSet{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o == "*" {
			set.any = true
		}
		set.origins[o] = struct{}{}
	}
	return set
}

func (o *originSet) allows(origin string) bool {
	if o.any {
		return true
	}
	_, ok := o.origins[origin]
	return ok
}

// cors reflects allowed origins back with credentials enabled and answers
// preflight requests itself. Requests without an Origin header are same-origin
// or non-browser and always pass.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin != "" {
			if !s.origins.Load().allows(origin) {
				s.writeJSON(w, http.StatusForbidden, payload.ErrorResponse{Error: "Not allowed by CORS", Details: origin})
				return
			}
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if req.Method == http.MethodOptions {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}

// limitBody rejects bodies over the configured size. Declared lengths are
// checked up front; chunked bodies are cut off while being read.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.ContentLength > s.sizeLimit {
			s.writeTooLarge(w, s.sizeLimit)
			return
		}
		req.Body = http.MaxBytesReader(w, req.Body, s.sizeLimit)
		next.ServeHTTP(w, req)
	})
}

func (s *Server) writeTooLarge(w http.ResponseWriter, limit int64) {
	s.writeJSON(w, http.StatusRequestEntityTooLarge, payload.ErrorResponse{
		Error:   "Payload Too Large",
		Details: "request body exceeds " + humanize.Bytes(uint64(limit)),
	})
}
