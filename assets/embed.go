// assets/embed.go
//
// Embedded files shipped inside the binary:
//   - templates/*.html: the single game page.
//   - sql/*.sql: schema migrations for the SQLite session store.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html sql/*.sql
var FS embed.FS

// Templates returns the page templates rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(FS, "templates")
	if err != nil {
		panic(err) // directory is embedded at build time
	}
	return sub
}

// Migrations returns the SQL migrations rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
