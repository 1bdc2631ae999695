package shared

import (
	"net/http"

	"github.com/go-playground/form"
)

var Decoder = form.NewDecoder()

// Redirect sends the browser to path. htmx requests get an Hx-Redirect header
// instead of a 302 so the whole page reloads.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if len(r.Header.Get("Hx-Request")) > 0 {
		w.Header().Set("Hx-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}
