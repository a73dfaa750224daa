// Package render executes the site's html/template pages inside a shared
// layout.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/diagnosis/elsabor-web/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, matching templates/{name}.html.
const (
	PageHome                 = "home"
	PageMenu                 = "carta"
	PageReservation          = "reserva"
	PageContact              = "contacto"
	PageGallery              = "galeria"
	PageReservationConfirmed = "reserva-confirmacion"
	PageContactSent          = "contacto-confirmacion"
)

var pages = []string{
	PageHome, PageMenu, PageReservation, PageContact, PageGallery,
	PageReservationConfirmed, PageContactSent,
}

// LangLink is an entry of the language switcher.
type LangLink struct {
	Code   string
	Href   string
	Active bool
}

// PageData is what every page template receives.
type PageData struct {
	Title       string
	Description string
	Page        string // nav marker; empty on home
	IsHome      bool
	Lang        string
	LangPath    string
	T           locale.Dictionary
	Langs       []LangLink
	Data        any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat("★", n)
	},
	"link": func(langPath, path string) string {
		if path == "/" && langPath != "" {
			return langPath + "/"
		}
		return langPath + path
	},
}

// New parses the layout together with each page.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into a buffer and writes it with status. Nothing is
// written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render: execute %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
