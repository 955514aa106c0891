package templates

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

//go:embed html/*.html
var files embed.FS

var sets = mustParse()

func mustParse() map[string]*template.Template {
	out := make(map[string]*template.Template, len(Pages))
	for _, page := range Pages {
		t := template.Must(template.New(page).Funcs(funcMap()).ParseFS(files,
			"html/layout.html",
			"html/partials.html",
			"html/"+page+".html",
		))
		out[page] = t
	}
	return out
}

// NewPageData builds the view model for one page of r.
func NewPageData(page string, r *domain.Report, period domain.Granularity, static bool) PageData {
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = r.Window.End
	}
	return PageData{
		Title:       pageTitles[page],
		Active:      page,
		Period:      period,
		Static:      static,
		Report:      r,
		GeneratedAt: generated.UTC().Truncate(time.Second),
	}
}

// Page renders a full dashboard page.
func Page(name string, data PageData) (templ.Component, error) {
	return lookup(name, "layout", data)
}

// Content renders only the body of a page, for partial swaps.
func Content(name string, data PageData) (templ.Component, error) {
	return lookup(name, "content", data)
}

func lookup(name, block string, data PageData) (templ.Component, error) {
	set, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	if data.Report == nil {
		return nil, fmt.Errorf("page %q: no report", name)
	}
	return templ.FromGoHTML(set.Lookup(block), data), nil
}
