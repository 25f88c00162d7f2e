package models

// ProcessResult is the success envelope returned by the process endpoints.
// Everything is request-scoped; nothing here outlives the response.
type ProcessResult struct {
	Success       bool   `json:"success"`
	Type          string `json:"type"` // "chat" or "call"
	OriginalText  string `json:"original_text,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	Summary       string `json:"summary"`
	Timestamp     string `json:"timestamp"`
}
