// Package assets embeds the static files served by the web server.
package assets

import _ "embed"

// Index is the minified page produced by cmd/minify from index.html.tpl.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
