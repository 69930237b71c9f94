// Package templates exposes embedded static assets for the web UI.
package templates

import "embed"

//go:embed assets
var FS embed.FS
