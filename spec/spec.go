// Package spec embeds the OpenAPI document for the travel operations API.
// The HTTP server serves it at /openapi.yaml and points the Swagger UI at
// /docs to it.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
