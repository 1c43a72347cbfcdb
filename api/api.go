// Package api holds the OpenAPI description of the prsnt HTTP surface.
package api

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3 document.
//
//go:embed prsnt.openapi.yaml
var OpenAPISpec []byte

// AnnounceRequestSchema names the component schema announce payloads are validated against.
const AnnounceRequestSchema = "AnnounceRequest"
