// internal/app/features/centers/templates.go
package centers

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "centers",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
