package ports

import (
	"context"

	"github.com/Vovarama1992/signalhub/internal/models"
)

// Transcriber is one speech-to-text engine in the fallback chain.
type Transcriber interface {
	Name() string

	// Configured reports whether a credential is present. Unconfigured
	// engines are skipped entirely, not counted as failed attempts.
	Configured() bool

	Transcribe(ctx context.Context, audio []byte) (models.Transcript, error)
}

// TranscriptionService is the chain surface consumed by delivery.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
