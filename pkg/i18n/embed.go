package i18n

import (
	"embed"
	"io/fs"
)

// EmbeddedLocales holds locales/*.json, compiled into the binary.
//
//go:embed locales/*.json
var EmbeddedLocales embed.FS

// Locales returns the embedded locales directory as the root of an fs.FS.
func Locales() fs.FS {
	sub, err := fs.Sub(EmbeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}
