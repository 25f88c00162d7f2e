package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Vovarama1992/signalhub/internal/models"
	"github.com/Vovarama1992/signalhub/internal/ports"
)

// TranscribeChain tries speech-to-text engines in priority order and stops
// at the first usable transcript. Each engine is attempted at most once per
// request; there is no retry and no backoff. An attempt failure is absorbed
// here and control falls through to the next engine.
type TranscribeChain struct {
	engines []ports.Transcriber
}

func NewTranscribeChain(engines ...ports.Transcriber) *TranscribeChain {
	return &TranscribeChain{engines: engines}
}

func (c *TranscribeChain) Transcribe(ctx context.Context, audio []byte) (string, error) {
	for _, e := range c.engines {
		if !e.Configured() {
			continue
		}

		tag := strings.ToUpper(e.Name())
		log.Printf("[TRANSCRIBE][%s][START] audio_bytes=%d", tag, len(audio))

		tr, err := e.Transcribe(ctx, audio)
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				continue
			}
			log.Printf("[TRANSCRIBE][%s][ERR] %v", tag, err)
			continue
		}

		text := FormatTranscript(tr)
		if text == "" {
			log.Printf("[TRANSCRIBE][%s][ERR] empty transcript", tag)
			continue
		}

		log.Printf("[TRANSCRIBE][%s][OK] chars=%d", tag, len(text))
		return text, nil
	}

	return "", ErrTranscriptionExhausted
}

// FormatTranscript flattens an engine result into plain text. Speaker
// segments win over the plain transcript; segment order is preserved.
func FormatTranscript(tr models.Transcript) string {
	if len(tr.Segments) == 0 {
		return strings.TrimSpace(tr.Text)
	}

	lines := make([]string, 0, len(tr.Segments))
	for _, seg := range tr.Segments {
		if seg.Speaker == "" {
			lines = append(lines, "Speaker: "+seg.Text)
			continue
		}
		lines = append(lines, fmt.Sprintf("Speaker %s: %s", seg.Speaker, seg.Text))
	}
	return strings.Join(lines, "\n\n")
}
