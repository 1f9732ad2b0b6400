// Package web embeds the static assets of the price scanning page and serves them
// as the origin the asset worker installs from.
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed static
var static embed.FS

const (
	indexFile = "index.html"
)

// Assets - the embedded asset tree rooted at the site root.
func Assets() fs.FS {
	assets, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return assets
}

// Handler - serves the embedded assets, the site root maps to index.html.
// Unlike http.FileServer it never redirects, so every manifest path answers 200.
func Handler() http.Handler {
	assets := Assets()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = indexFile
		}
		data, err := fs.ReadFile(assets, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	})
}
