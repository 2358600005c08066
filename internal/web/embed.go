// Package web renders the dashboard page from embedded templates and serves
// its static assets.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/machine-dashboard/backend/internal/models"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// PageTitle is the browser title of the dashboard.
const PageTitle = "Interactive Charts"

// Page is the data behind one render of the dashboard.
type Page struct {
	Title     string
	PlotlyURL string
	Options   models.FilterOptions
	Selection models.Selection
	Rows      int
	Empty     bool
	Timeline  any
	Durations any
	// Warnings are shown above the charts, e.g. unparseable timestamps.
	Warnings []string
}

var funcMap = template.FuncMap{
	// figure emits a value as a JSON literal inside a <script> block.
	"figure": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
}

var (
	pageOnce sync.Once
	pageTmpl *template.Template
)

func getPageTemplate() *template.Template {
	pageOnce.Do(func() {
		pageTmpl = template.Must(template.New("index.html.tmpl").
			Funcs(funcMap).
			ParseFS(templateFiles, "templates/index.html.tmpl"))
	})
	return pageTmpl
}

// Render writes the dashboard page.
func Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = PageTitle
	}
	return getPageTemplate().Execute(w, p)
}

// GetFileSystem returns the embedded static assets with the static folder as root.
func GetFileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

// RegisterStaticRoutes serves the embedded assets under /static/.
func RegisterStaticRoutes(e *echo.Echo) error {
	staticFS, err := GetFileSystem()
	if err != nil {
		return err
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	e.GET("/static/*", echo.WrapHandler(fileServer))
	return nil
}
