package linkboard

import "embed"

// EmbeddedAssets contains static assets shipped with the service:
// embed.js, the host-page snippet that injects the widget iframe.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
