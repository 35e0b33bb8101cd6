// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin interface
// and the public site. Admin pages support full-page and HTMX partial
// rendering, automatically detecting the request type via the HX-Request
// header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/middleware"
	"github.com/sandeshar/contentsolution-sub000/internal/session"
)

//go:embed templates/admin/*.html
var adminFS embed.FS

//go:embed templates/site/*.html
var siteFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar section (e.g., "dashboard", "services")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution for admin and site pages.
type Renderer struct {
	admin   map[string]*template.Template
	site    map[string]*template.Template
	funcMap template.FuncMap
}

// standaloneTemplates lists admin templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystems. Each page template is paired with its base layout.
// When devMode is true, templates use CDN-hosted assets (TailwindCSS,
// HTMX, AlpineJS); when false, they reference compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		admin: make(map[string]*template.Template),
		site:  make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "bg-gray-900 text-white"
				}
				return "text-gray-300 hover:bg-gray-700 hover:text-white"
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// uuidEq compares a *uuid.UUID pointer with a uuid.UUID value.
			// Returns true if the pointer is non-nil and points to the same value.
			"uuidEq": func(ptr *uuid.UUID, val uuid.UUID) bool {
				return ptr != nil && *ptr == val
			},
			// safeHTML marks pre-rendered HTML (e.g. Markdown output) as safe.
			"safeHTML": func(s string) template.HTML {
				return template.HTML(s)
			},
			// fmtDate formats a time (or *time.Time) for display.
			"fmtDate": func(v any) string {
				var t time.Time
				switch val := v.(type) {
				case time.Time:
					t = val
				case *time.Time:
					if val == nil {
						return ""
					}
					t = *val
				default:
					return ""
				}
				if t.IsZero() {
					return ""
				}
				return t.Format("Jan 2, 2006")
			},
			// fmtPrice formats an optional price for display.
			"fmtPrice": func(p *float64) string {
				if p == nil {
					return ""
				}
				return fmt.Sprintf("%.2f", *p)
			},
			// stars renders an n-of-5 rating string.
			"stars": func(n int) string {
				if n < 0 {
					n = 0
				}
				if n > 5 {
					n = 5
				}
				return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
			},
		},
	}

	if err := r.parseSet(adminFS, "templates/admin", r.admin, standaloneTemplates); err != nil {
		return nil, err
	}
	if err := r.parseSet(siteFS, "templates/site", r.site, nil); err != nil {
		return nil, err
	}

	return r, nil
}

// parseSet parses every page template in dir, pairing each with the set's
// base.html unless it is listed as standalone.
func (rn *Renderer) parseSet(fsys embed.FS, dir string, dst map[string]*template.Template, standalone map[string]bool) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read templates %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || e.Name() == "base.html" {
			continue
		}
		name := e.Name()
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standalone[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(rn.funcMap).ParseFS(fsys, dir+"/"+name)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(rn.funcMap).ParseFS(
				fsys, dir+"/base.html", dir+"/"+name,
			)
		}
		if parseErr != nil {
			return fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		dst[tmplName] = tmpl
	}
	return nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX request: render only the content fragment.
	if isHTMX(r) {
		if err := executeTemplate(w, tmpl, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	// Full page request: render the complete layout.
	execName := "base.html"
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Site renders a public page into the response.
func (rn *Renderer) Site(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	html, err := rn.SiteHTML(r, name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// SiteHTML renders a public page to a byte slice so callers can store the
// result in the page cache before writing it out.
func (rn *Renderer) SiteHTML(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.site[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, "base.html", data); err != nil {
		return nil, fmt.Errorf("render site page %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
