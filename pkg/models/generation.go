package models

// Diagnostic describes one way a generated document fails to satisfy the
// config schema. Field is a path into the document ("tests.0.assert"), or
// "yaml" when the document could not be parsed at all.
type Diagnostic struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// GenerationResult is the outcome of a single config generation call.
// An invalid config is a normal, reportable outcome, not an error: Config
// always carries the backend's output verbatim and Diagnostics explains any
// schema violations.
type GenerationResult struct {
	Config      string       `json:"config"`
	IsValid     bool         `json:"is_valid"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ChatResponse is returned to the transport for every chat message. Config,
// IsValid and Diagnostics are only populated when the message triggered a
// generation.
type ChatResponse struct {
	Response    string       `json:"response"`
	Config      string       `json:"config,omitempty"`
	IsValid     *bool        `json:"is_valid,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
