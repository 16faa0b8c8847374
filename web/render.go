// Package web renders the server-side pages: the public site and the admin
// area. Every page is the shared layout plus one page template, parsed once
// at start-up from the embedded templates directory.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page template names.
const (
	PageHome         = "home"
	PageAbout        = "about"
	PageAchievements = "achievements"
	PageGallery      = "gallery"
	PageContact      = "contact"
	PageInquiry      = "inquiry"
	PageAdminLogin   = "admin_login"
	PageDashboard    = "dashboard"
	PageNotFound     = "not_found"
)

var pageNames = []string{
	PageHome, PageAbout, PageAchievements, PageGallery, PageContact,
	PageInquiry, PageAdminLogin, PageDashboard, PageNotFound,
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

func templateFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"date": func(t time.Time) string {
			return t.In(loc).Format("2 Jan 2006")
		},
		"lower":  strings.ToLower,
		"eqFold": strings.EqualFold,
		"navLinks": func() []NavLink {
			return NavLinks
		},
		"footerLinks": func() []NavLink {
			return FooterLinks
		},
		"year": func() int {
			return time.Now().In(loc).Year()
		},
	}
}

// NewRenderer parses the layout with every page. Dates are shown in loc
// (UTC when nil).
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := templateFuncs(loc)

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// Render writes page with view. The page is rendered to a buffer first so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, view *View) {
	tpl, ok := r.pages[page]
	if !ok {
		log.Printf("[web] unknown page %q", page)
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		log.Printf("[web] failed to render %s: %v", page, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
