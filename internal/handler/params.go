package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds a simple-style path parameter the way generated
// oapi-codegen routers do, writing a 400 when it is missing or malformed.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil || v == "" {
		badRequest(w, "invalid path parameter "+name)
		return "", false
	}
	return v, true
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer so absence stays distinguishable.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		badRequest(w, "invalid query parameter "+name)
		return false
	}
	return true
}
