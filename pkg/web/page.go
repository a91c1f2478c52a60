package web

import (
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"github.com/aifirst/llmdemos/internal"
)

var log = internal.GetLogger()

var LayoutTemplates = []string{
	"templates/pages/layout.html",
	"templates/components/layout/*.html",
	"templates/components/content/*.html",
}

func NewPage(
	title, subTitle, path string,
	templates []string,
	data interface{},
) *Page {
	return &Page{
		Title:     title,
		SubTitle:  subTitle,
		MenuItems: menuItems,
		Templates: templates,
		Path:      path,
		Slug:      slugify(title),
		Data:      data,
	}
}

type Page struct {
	Title     string
	SubTitle  string
	MenuItems []MenuItem
	Templates []string
	Path      string
	Slug      string
	Data      interface{}
	// Warning is shown above the page content, e.g. a missing column.
	Warning string
	// Error is shown above the page content when an action failed.
	Error string
}

func (p *Page) Render(w http.ResponseWriter, r *http.Request) {
	p.RenderStatus(w, r, http.StatusOK)
}

// RenderStatus renders the page with the given status code.
func (p *Page) RenderStatus(w http.ResponseWriter, r *http.Request, status int) {
	// If HX-Request header is set, render content template only
	// If the page was loaded directly, render full layout
	if r.Header.Get("HX-Request") == "true" {
		p.render(w, status, "Content", p.Templates)
	} else {
		templates := append(LayoutTemplates, p.Templates...) //nolint:gocritic
		p.render(w, status, "Layout", templates)
	}
}

func (p *Page) render(w http.ResponseWriter, status int, name string, templates []string) {
	tmpl, err := template.New(p.Title).Funcs(TemplateFuncs()).ParseFS(
		TemplatesFS,
		templates...,
	)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, name, p); err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(sb.String()))
}

// slugify converts a string to an alpha-only lowercase string
func slugify(s string) string {
	reg := regexp.MustCompile("[^a-zA-Z]+")
	processedString := reg.ReplaceAllString(s, "")
	return strings.ToLower(processedString)
}
