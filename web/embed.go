// Package web holds the page templates and browser assets served by the
// HTTP handlers.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
