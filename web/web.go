// Package web embeds the HTML templates rendered by the server.
package web

import "embed"

// Views holds the django templates under views/.
//
//go:embed views/*.html
var Views embed.FS
