package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"wgdash/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// render executes the named template into a buffer first so a failing template does
// not leave a half-written page.
func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		logx.Error(err, "Failed to render view", "view", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
