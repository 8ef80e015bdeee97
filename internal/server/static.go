package server

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

type indexData struct {
	Title  string
	Action string
	Field  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, indexData{
		Title:  s.opts.Title,
		Action: generatePath,
		Field:  s.opts.UploadField,
	})
	if err != nil {
		s.logger.Error("index.render", fieldsFor(r, zap.Error(err))...)
	}
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/style.css")
}
