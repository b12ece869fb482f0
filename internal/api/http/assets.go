// internal/api/http/assets.go
package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MountClient serves the built web client from dir at /*. Unknown paths fall
// back to index.html so client-side routes survive a reload.
func MountClient(r chi.Router, dir string) {
	root := os.DirFS(dir)
	files := http.FileServer(http.FS(root))

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
		if name == "" {
			name = "."
		}
		if _, err := fs.Stat(root, name); errors.Is(err, fs.ErrNotExist) {
			if strings.HasPrefix(name, "api/") {
				http.NotFound(w, r)
				return
			}
			http.ServeFileFS(w, r, root, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
}
