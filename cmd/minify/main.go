package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

type PageData struct {
	CSS string
	JS  string
	SVG string
}

func main() {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	cssMin, err := minifyFile(m, "text/css", "assets/style.css")
	if err != nil {
		log.Fatal(err)
	}

	jsMin, err := minifyFile(m, "text/javascript", "assets/script.js")
	if err != nil {
		log.Fatal(err)
	}

	// the page header and the favicon share one icon
	svgMin, err := minifyFile(m, "image/svg+xml", "assets/icon.svg")
	if err != nil {
		log.Fatal(err)
	}

	htmlRaw, err := os.ReadFile("assets/index.html.tpl")
	if err != nil {
		log.Fatal("error read HTML:", err)
	}

	tmpl, err := template.New("index").Parse(string(htmlRaw))
	if err != nil {
		log.Fatal("error read template:", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, PageData{
		CSS: cssMin,
		JS:  jsMin,
		SVG: svgMin,
	})
	if err != nil {
		log.Fatal("error parse template:", err)
	}

	finalHTML, err := m.String("text/html", buf.String())
	if err != nil {
		log.Fatal("error minify HTML:", err)
	}

	if err := os.WriteFile("assets/index.html", []byte(finalHTML), 0644); err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("assets/favicon.svg", []byte(svgMin), 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Println("minify done")
}

// minifyFile reads path and minifies it as mediatype.
func minifyFile(m *minify.M, mediatype, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error read %s: %w", path, err)
	}

	out, err := m.String(mediatype, string(raw))
	if err != nil {
		return "", fmt.Errorf("error minify %s: %w", path, err)
	}

	return out, nil
}
