// Package assets embeds the widget's icons, stylesheet and client script.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// FS is rooted at the static directory, so paths look like
// "icons/whatsapp.svg".
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
