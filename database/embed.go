package database

import (
	"embed"
	"io/fs"
)

// EmbeddedMigrations holds migrations/*.sql inside the binary.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

// Migrations returns the embedded migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(EmbeddedMigrations, "migrations")
	if err != nil {
		// The directory is embedded at compile time, Sub cannot fail for it.
		panic(err)
	}
	return sub
}
