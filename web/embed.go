// Package web embeds the HTML templates and static assets of the back-office.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

func sub(dir string) fs.FS {
	s, err := fs.Sub(content, dir)
	if err != nil {
		log.Fatalf("failed to create %s sub-filesystem: %v", dir, err)
	}
	return s
}

// StaticFS returns the stylesheet and other static files.
func StaticFS() fs.FS { return sub("static") }

// TemplatesFS returns the page templates.
func TemplatesFS() fs.FS { return sub("templates") }
