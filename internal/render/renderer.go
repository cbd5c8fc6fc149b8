// Package render adapts html/template to echo's Renderer interface. The
// templates themselves are a thin collaborator surface: every handler hands
// a name and a data map to Render and never touches markup.
package render

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

type Renderer struct {
	templates *template.Template
}

// New parses every template under dir
func New(dir string) (*Renderer, error) {
	funcs := template.FuncMap{
		// optional columns come through as pointers
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"num": func(i *int) interface{} {
			if i == nil {
				return ""
			}
			return *i
		},
		// the product form only shows the inputs the resolved edit
		// policy allows
		"allows": func(fields []string, name string) bool {
			for _, f := range fields {
				if f == name {
					return true
				}
			}
			return false
		},
	}
	templates, err := template.New("").Funcs(funcs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
