package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ConfirmData describes a delete confirmation screen.
type ConfirmData struct {
	Prompt string
	Title  string
	Action string
}

// WriteHTML renders the full page. Task text is contextually escaped, so
// markup in titles and descriptions is shown as text.
func WriteHTML(w io.Writer, data PageData) error {
	return templates.ExecuteTemplate(w, "page.html", data)
}

// WriteConfirm renders a confirmation screen for a destructive action.
func WriteConfirm(w io.Writer, data ConfirmData) error {
	return templates.ExecuteTemplate(w, "confirm.html", data)
}
