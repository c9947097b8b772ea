// Package web embeds the HTML templates served by the HTTP layer so the
// binary ships self-contained.
package web

import "embed"

// Templates holds the rendered page templates (landing page and error
// pages).
//
//go:embed templates/*.html
var Templates embed.FS
