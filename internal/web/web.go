package web

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page together with the shared layout blocks.
// Pages are addressed by file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"rating": FormatRating,
	}).ParseFS(templateFS, "templates/*.html")
}

// FormatRating renders 7.5 as "7.5/10".
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64) + "/10"
}
