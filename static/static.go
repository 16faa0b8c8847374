// Package static embeds the stylesheet, scripts and images the pages link
// to under /static/.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:assets
var assetsFS embed.FS

// Handler serves the embedded assets. Mount it with
// http.StripPrefix("/static/", static.Handler()).
func Handler() http.Handler {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
