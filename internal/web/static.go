package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Static returns the handler for the root route. By default it serves the
// embedded console assets; a non-empty dir overrides them with an on-disk
// directory.
func Static(dir string) http.Handler {
	if dir != "" {
		return http.FileServer(http.Dir(dir))
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the subtree exists
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
