package api

import _ "embed"

// OpenAPISpec is the HTTP API description served at /openapi.yml.
//
//go:embed openapi.yml
var OpenAPISpec []byte
