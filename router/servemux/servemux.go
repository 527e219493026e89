package servemux

import (
	"net/http"

	"github.com/caasmo/favicache/router"
)

// ServeMuxRouter implements router.Router using net/http ServeMux.
type ServeMuxRouter struct {
	*http.ServeMux
}

func (s *ServeMuxRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ServeMux.ServeHTTP(w, r)
}

// Handle registers the handler for GET requests on the given pattern.
// Brace parameters are native ServeMux syntax, no translation needed.
func (s *ServeMuxRouter) Handle(path string, handler http.Handler) {
	s.ServeMux.Handle("GET "+path, handler)
}

func (s *ServeMuxRouter) HandleFunc(path string, handler func(http.ResponseWriter, *http.Request)) {
	s.ServeMux.HandleFunc("GET "+path, handler)
}

func (s *ServeMuxRouter) Param(req *http.Request, key string) string {
	// Uses Go 1.22's PathValue which handles named parameters
	return req.PathValue(key)
}

func New() router.Router {
	return &ServeMuxRouter{ServeMux: http.NewServeMux()}
}
