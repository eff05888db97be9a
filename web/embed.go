package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates 解析内嵌的页面模板
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// GetFileSystem returns the embedded file system for the static directory
func GetFileSystem() (http.FileSystem, error) {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(subFS), nil
}
