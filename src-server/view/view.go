package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"evboard/src-server/page"
	"evboard/src-server/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{
			"titleCase": utils.TitleCase,
			"imageURL":  ImageURL,
			"card": func(pageID string, c page.EventCard) CardData {
				return CardData{PageID: pageID, Card: c}
			},
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// CardData feeds card.html; the register form posts back to the owning page.
type CardData struct {
	PageID string
	Card   page.EventCard
}

// ImageURL passes seed URLs and uploaded data URLs through unescaped.
// Anything else renders as an empty src.
func ImageURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

// LayoutData is everything the layout needs to render one page.
type LayoutData struct {
	page.View
	SidePanelLeft  string
	SidePanelRight string
}

func NewLayoutData(v page.View) LayoutData {
	return LayoutData{
		View:           v,
		SidePanelLeft:  "upcoming events",
		SidePanelRight: "your registrations",
	}
}

// Render writes the layout with status. The template is executed into a
// buffer first so a template error still yields a clean 500.
func Render(w http.ResponseWriter, status int, data LayoutData) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Can't render page", http.StatusInternalServerError)
		return fmt.Errorf("view.Render: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.Copy(w, &buf)
	return err
}
