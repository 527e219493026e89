package router

import "net/http"

// Router abstracts the HTTP mux so the app can run on either net/http
// ServeMux (Go 1.22 patterns) or julienschmidt/httprouter. All endpoints of
// this service are GETs, so registration does not take a method.
//
// Paths use brace syntax for parameters ("/api/favicon/{domain}");
// implementations translate to their native syntax.
type Router interface {
	http.Handler

	Handle(path string, handler http.Handler)
	HandleFunc(path string, handler func(http.ResponseWriter, *http.Request))

	// Param returns the value of a named path parameter for a request that
	// was dispatched through this router, or "" if absent.
	Param(req *http.Request, key string) string
}
