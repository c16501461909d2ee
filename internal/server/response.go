package server

import "time"

// SchemaDate versions the partner-facing response shape. Bump it whenever
// the envelope or report shape changes incompatibly.
const SchemaDate = "2025-06-01"

// Meta is the versioned metadata envelope on successful partner responses.
type Meta struct {
	SchemaDate  string    `json:"schemaDate"`
	GeneratedAt time.Time `json:"generatedAt"`
	Truncated   bool      `json:"truncated"`
}

// Envelope wraps successful partner API payloads.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}
