package domain

import "errors"

var (
	// ErrNotConfigured marks an engine skipped for a missing credential.
	// It is never surfaced to the caller and never logged as a failure.
	ErrNotConfigured = errors.New("engine not configured")

	// ErrTranscriptionExhausted is the only transcription error a caller sees.
	ErrTranscriptionExhausted = errors.New("all transcription engines failed or are not configured")

	// ErrDistillationExhausted is the only summarization error a caller sees.
	ErrDistillationExhausted = errors.New("all distillation engines failed or are not configured")
)
