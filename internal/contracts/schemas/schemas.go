package schemas

import "embed"

// SchemasFS - встроенные JSON-схемы событий сервиса.
//
//go:embed events
var SchemasFS embed.FS
