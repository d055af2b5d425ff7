// Package web embeds the static glossary front end.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Assets returns the static files rooted at the site directory.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the static directory is compiled in
	}
	return sub
}

// Handler serves the front end; "/" falls through to index.html.
func Handler() http.Handler {
	return http.FileServerFS(Assets())
}
