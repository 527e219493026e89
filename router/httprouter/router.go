package httprouter

import (
	"net/http"
	"strings"

	"github.com/caasmo/favicache/router"
	jshttprouter "github.com/julienschmidt/httprouter"
)

// Router implements router.Router on top of julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(path string, handler http.Handler) {
	r.rt.Handler(http.MethodGet, toColonSyntax(path), handler)
}

func (r *Router) HandleFunc(path string, handler func(http.ResponseWriter, *http.Request)) {
	r.Handle(path, http.HandlerFunc(handler))
}

func (r *Router) Param(req *http.Request, key string) string {
	return jshttprouter.ParamsFromContext(req.Context()).ByName(key)
}

// toColonSyntax rewrites brace parameters to httprouter's colon syntax:
// "/api/favicon/{domain}" becomes "/api/favicon/:domain".
func toColonSyntax(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = ":" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}

func New() router.Router {
	return &Router{rt: jshttprouter.New()}
}
