// assets/embed.go
//
// Files compiled into the binary:
//   - presets.yaml: the default game presets (see internal/presets).
//   - sql/*.sql:    database migrations applied at startup (see internal/db).

package assets

import (
	"embed"
	"io/fs"
)

//go:embed presets.yaml sql/*.sql
var FS embed.FS

// Presets returns the raw embedded presets file.
func Presets() ([]byte, error) {
	return FS.ReadFile("presets.yaml")
}

// Migrations returns the migration directory rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
